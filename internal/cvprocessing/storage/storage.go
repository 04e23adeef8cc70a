package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

// JobStore provides in-memory storage for extraction jobs while they
// run. Completed results are persisted separately; the store only
// serves polling clients and is cleaned up after a TTL.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.ExtractionJob
	ttl  time.Duration
}

// NewJobStore creates an in-memory job store with the given TTL
func NewJobStore(ttl time.Duration) *JobStore {
	s := &JobStore{
		jobs: make(map[string]*domain.ExtractionJob),
		ttl:  ttl,
	}
	go s.cleanupLoop()
	return s
}

// GenerateJobID creates a random job ID
func GenerateJobID() string {
	return uuid.New().String()
}

// StoreJob stores an extraction job
func (s *JobStore) StoreJob(job *domain.ExtractionJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

// GetJob retrieves an extraction job by ID
func (s *JobStore) GetJob(jobID string) *domain.ExtractionJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs[jobID]
}

// UpdateJob updates an existing extraction job
func (s *JobStore) UpdateJob(jobID string, update func(*domain.ExtractionJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		update(job)
	}
}

// DeleteJob removes a job from storage
func (s *JobStore) DeleteJob(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
}

// cleanupLoop periodically removes expired jobs
func (s *JobStore) cleanupLoop() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		s.cleanup()
	}
}

func (s *JobStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, job := range s.jobs {
		if job.CreatedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
}
