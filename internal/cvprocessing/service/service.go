package service

import (
	"context"
	"fmt"
	"time"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/events"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/processor"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/repository"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/storage"
	"github.com/talentflow/talentflow-backend/pkg/actor"
	"github.com/talentflow/talentflow-backend/pkg/errors"
	"github.com/talentflow/talentflow-backend/pkg/logger"
	"github.com/talentflow/talentflow-backend/pkg/tenant"
)

// Service orchestrates CV extraction: dispatch → persist → publish
type Service struct {
	registry  *processor.Registry
	jobs      *storage.JobStore
	repo      *repository.Repository
	publisher *events.CVEventPublisher
	log       *logger.Logger
}

// NewService creates a new CV processing service.
// repo and publisher may be nil; extraction still completes, results are
// then only available through the job store.
func NewService(registry *processor.Registry, jobs *storage.JobStore, repo *repository.Repository, publisher *events.CVEventPublisher, log *logger.Logger) *Service {
	return &Service{
		registry:  registry,
		jobs:      jobs,
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// StartExtraction creates a new extraction job and processes the text asynchronously.
// Returns the job immediately so the caller can poll for results.
func (s *Service) StartExtraction(ctx context.Context, text string, docType domain.DocumentType) (*domain.ExtractionJob, error) {
	jobID := storage.GenerateJobID()

	act := actor.FromContext(ctx)
	if act == nil {
		act = actor.SystemActor()
	}

	job := &domain.ExtractionJob{
		ID:           jobID,
		Status:       domain.JobStatusProcessing,
		DocumentType: docType,
		CreatedAt:    time.Now(),
	}
	s.jobs.StoreJob(job)

	// Find all processors that can handle this document type (supports fallback)
	processors := s.registry.FindProcessors(docType)
	if len(processors) == 0 {
		s.jobs.UpdateJob(jobID, func(j *domain.ExtractionJob) {
			j.Status = domain.JobStatusFailed
			j.Error = fmt.Sprintf("no processor available for document type: %s", docType)
		})
		return s.jobs.GetJob(jobID), nil
	}

	s.publisher.PublishExtractionStarted(ctx, jobID, docType, len(text))

	// Process asynchronously so the caller gets the job ID right away
	go s.processAsync(detachTenant(ctx), jobID, text, docType, processors, act.ID)

	return s.jobs.GetJob(jobID), nil
}

// processAsync runs extraction in a background goroutine.
func (s *Service) processAsync(ctx context.Context, jobID, text string, docType domain.DocumentType, processors []processor.Processor, actorID string) {
	started := time.Now()
	log := s.log.WithJob(jobID)

	var profile *domain.CandidateProfile
	var lastErr error
	var usedProcessor string
	for _, proc := range processors {
		log.Info().
			Str("processor", proc.Name()).
			Str("doc_type", string(docType)).
			Msg("trying cv extraction")

		profile, lastErr = proc.Process(ctx, text, docType)
		if lastErr == nil {
			usedProcessor = proc.Name()
			break
		}
		log.Warn().Err(lastErr).
			Str("processor", proc.Name()).
			Msg("processor failed, trying next")
	}

	durationMs := time.Since(started).Milliseconds()

	if lastErr != nil {
		s.jobs.UpdateJob(jobID, func(j *domain.ExtractionJob) {
			j.Status = domain.JobStatusFailed
			j.Error = lastErr.Error()
		})
		s.publisher.PublishExtractionFailed(ctx, jobID, docType, lastErr.Error(), actorID, durationMs)
		log.Error().Err(lastErr).Msg("all processors failed")
		return
	}

	extractionID := s.persist(ctx, jobID, profile)

	now := time.Now()
	s.jobs.UpdateJob(jobID, func(j *domain.ExtractionJob) {
		j.Status = domain.JobStatusCompleted
		j.Profile = profile
		j.CompletedAt = &now
	})

	// The audit consumer picks this up and records the outcome
	s.publisher.PublishExtractionCompleted(ctx, jobID, extractionID, docType, usedProcessor, actorID, durationMs, profile)

	log.Info().
		Str("candidate", profile.PersonalInfo.FullName).
		Str("language", profile.Metadata.DetectedLanguage).
		Float64("confidence", profile.ConfidenceScore).
		Int64("duration_ms", durationMs).
		Msg("cv extraction completed")
}

// persist stores the profile in the tenant's schema. Failures are logged but
// do not fail the job: the profile stays available through the job store.
func (s *Service) persist(ctx context.Context, jobID string, profile *domain.CandidateProfile) string {
	if s.repo == nil {
		return ""
	}

	extractionID, err := s.repo.Create(ctx, profile, domain.JobStatusCompleted)
	if err != nil {
		s.log.Error().Err(err).Str("job_id", jobID).Msg("failed to persist extraction")
		return ""
	}
	return extractionID
}

// GetJob retrieves an extraction job by ID
func (s *Service) GetJob(jobID string) *domain.ExtractionJob {
	return s.jobs.GetJob(jobID)
}

// GetHistory lists the tenant's past extractions, newest first
func (s *Service) GetHistory(ctx context.Context, limit, offset int) ([]domain.ExtractionRecord, int64, error) {
	if s.repo == nil {
		return []domain.ExtractionRecord{}, 0, nil
	}
	return s.repo.List(ctx, limit, offset)
}

// GetExtraction fetches one persisted extraction with its profile
func (s *Service) GetExtraction(ctx context.Context, id string) (*domain.ExtractionRecord, *domain.CandidateProfile, error) {
	if s.repo == nil {
		return nil, nil, errors.NotFound("extraction")
	}
	return s.repo.GetByID(ctx, id)
}

// GetStats tallies the tenant's extractions per detected language
func (s *Service) GetStats(ctx context.Context) ([]domain.LanguageCount, error) {
	if s.repo == nil {
		return []domain.LanguageCount{}, nil
	}
	return s.repo.CountByLanguage(ctx)
}

// detachTenant builds a fresh context that keeps only tenant identity, so
// background processing survives request cancellation.
func detachTenant(ctx context.Context) context.Context {
	bgCtx := context.Background()
	if id, err := tenant.TenantID(ctx); err == nil {
		bgCtx = tenant.WithTenantID(bgCtx, id)
	}
	if slug, err := tenant.TenantSlug(ctx); err == nil {
		bgCtx = tenant.WithTenantSlug(bgCtx, slug)
	}
	if schema, err := tenant.TenantSchema(ctx); err == nil {
		bgCtx = tenant.WithTenantSchema(bgCtx, schema)
	}
	return bgCtx
}
