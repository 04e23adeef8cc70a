package events

import (
	"context"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
	"github.com/talentflow/talentflow-backend/pkg/logger"
	"github.com/talentflow/talentflow-backend/pkg/messaging"
	"github.com/talentflow/talentflow-backend/pkg/tenant"
)

// CVEventPublisher publishes extraction lifecycle events
type CVEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewCVEventPublisher creates a new CV event publisher
func NewCVEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*CVEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeCVEvents, "cv-service", log)
	if err != nil {
		return nil, err
	}

	return &CVEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishExtractionStarted publishes an extraction started event
func (p *CVEventPublisher) PublishExtractionStarted(ctx context.Context, jobID string, docType domain.DocumentType, textBytes int) {
	if p == nil {
		return
	}

	tenantID, _ := tenant.TenantID(ctx)
	tenantSlug, _ := tenant.TenantSlug(ctx)
	tenantSchema, _ := tenant.TenantSchema(ctx)

	data := messaging.ExtractionStartedEvent{
		JobID:        jobID,
		DocumentType: string(docType),
		TextBytes:    textBytes,
		TenantID:     tenantID,
		TenantSlug:   tenantSlug,
		TenantSchema: tenantSchema,
	}

	if err := p.publisher.Publish(ctx, messaging.EventExtractionStarted, data); err != nil {
		p.logger.Error().Err(err).Str("job_id", jobID).Msg("failed to publish extraction started event")
	}
}

// PublishExtractionCompleted publishes an extraction completed event.
// The event carries everything the audit consumer needs to write its row.
func (p *CVEventPublisher) PublishExtractionCompleted(ctx context.Context, jobID, extractionID string, docType domain.DocumentType, processorName, actorID string, durationMs int64, profile *domain.CandidateProfile) {
	if p == nil {
		return
	}

	tenantID, _ := tenant.TenantID(ctx)
	tenantSlug, _ := tenant.TenantSlug(ctx)
	tenantSchema, _ := tenant.TenantSchema(ctx)

	data := messaging.ExtractionCompletedEvent{
		JobID:            jobID,
		ExtractionID:     extractionID,
		DocumentType:     string(docType),
		CandidateName:    profile.PersonalInfo.FullName,
		DetectedLanguage: profile.Metadata.DetectedLanguage,
		ConfidenceScore:  profile.ConfidenceScore,
		ProcessorName:    processorName,
		ActorID:          actorID,
		DurationMs:       durationMs,
		TenantID:         tenantID,
		TenantSlug:       tenantSlug,
		TenantSchema:     tenantSchema,
	}

	if err := p.publisher.Publish(ctx, messaging.EventExtractionCompleted, data); err != nil {
		p.logger.Error().Err(err).Str("job_id", jobID).Msg("failed to publish extraction completed event")
	}
}

// PublishExtractionFailed publishes an extraction failed event
func (p *CVEventPublisher) PublishExtractionFailed(ctx context.Context, jobID string, docType domain.DocumentType, reason, actorID string, durationMs int64) {
	if p == nil {
		return
	}

	tenantID, _ := tenant.TenantID(ctx)
	tenantSlug, _ := tenant.TenantSlug(ctx)
	tenantSchema, _ := tenant.TenantSchema(ctx)

	data := messaging.ExtractionFailedEvent{
		JobID:        jobID,
		DocumentType: string(docType),
		Reason:       reason,
		ActorID:      actorID,
		DurationMs:   durationMs,
		TenantID:     tenantID,
		TenantSlug:   tenantSlug,
		TenantSchema: tenantSchema,
	}

	if err := p.publisher.Publish(ctx, messaging.EventExtractionFailed, data); err != nil {
		p.logger.Error().Err(err).Str("job_id", jobID).Msg("failed to publish extraction failed event")
	}
}
