package processor

import (
	"context"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
)

// Processor defines the interface for resume text extraction.
// Implementations can be swapped in without changing the service or
// handler layer.
type Processor interface {
	// CanProcess returns true if this processor handles the given document type
	CanProcess(docType domain.DocumentType) bool

	// Process extracts a candidate profile from resume text
	Process(ctx context.Context, text string, docType domain.DocumentType) (*domain.CandidateProfile, error)

	// Name returns the processor name for logging/audit
	Name() string
}

// Registry holds all registered processors and dispatches to the right one
type Registry struct {
	processors []Processor
}

// NewRegistry creates a new processor registry
func NewRegistry(processors ...Processor) *Registry {
	return &Registry{processors: processors}
}

// FindProcessor returns the first processor that can handle the given document type
func (r *Registry) FindProcessor(docType domain.DocumentType) Processor {
	for _, p := range r.processors {
		if p.CanProcess(docType) {
			return p
		}
	}
	return nil
}

// FindProcessors returns all processors that can handle the given document type,
// in registration order. This supports fallback: if the first processor fails,
// the next one can try.
func (r *Registry) FindProcessors(docType domain.DocumentType) []Processor {
	var result []Processor
	for _, p := range r.processors {
		if p.CanProcess(docType) {
			result = append(result, p)
		}
	}
	return result
}
