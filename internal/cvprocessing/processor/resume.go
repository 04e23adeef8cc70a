package processor

import (
	"context"
	"errors"
	"strings"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/engine"
)

// ErrEmptyDocument is returned when the submitted text is blank.
var ErrEmptyDocument = errors.New("document text is empty")

// ResumeProcessor runs the heuristic extraction engine over resume
// text. It handles both the resume type and unknown documents, since
// unknown text is most likely a resume on this platform.
type ResumeProcessor struct {
	engine *engine.Engine
}

// NewResumeProcessor creates the rule-based resume processor.
func NewResumeProcessor() *ResumeProcessor {
	return &ResumeProcessor{engine: engine.New()}
}

// NewResumeProcessorWithEngine injects a preconfigured engine, used by
// tests that pin the clock.
func NewResumeProcessorWithEngine(e *engine.Engine) *ResumeProcessor {
	return &ResumeProcessor{engine: e}
}

// CanProcess accepts resumes and unknown documents.
func (p *ResumeProcessor) CanProcess(docType domain.DocumentType) bool {
	return docType == domain.DocumentTypeResume || docType == domain.DocumentTypeUnknown
}

// Process extracts a candidate profile. The engine itself never fails;
// only blank input is an error so the job can be marked failed instead
// of storing an empty profile.
func (p *ResumeProcessor) Process(ctx context.Context, text string, docType domain.DocumentType) (*domain.CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	profile := p.engine.Extract(text)
	return &profile, nil
}

// Name identifies the processor in logs and audit entries.
func (p *ResumeProcessor) Name() string {
	return "heuristic-resume"
}
