package events

import (
	"context"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
	"github.com/talentflow/talentflow-backend/pkg/logger"
	"github.com/talentflow/talentflow-backend/pkg/messaging"
	"github.com/talentflow/talentflow-backend/pkg/tenant"
)


// AuditLog records extraction outcomes in the tenant's audit table.
type AuditLog interface {
	WriteAuditLog(ctx context.Context, jobID, actorID string, docType domain.DocumentType, processorName, outcome string, durationMs int64) error
}

// AuditConsumer writes one audit row per finished extraction. It feeds off
// the cv.events exchange, so the audit trail stays consistent no matter
// which service instance processed the job.
type AuditConsumer struct {
	consumer *messaging.Consumer
	audit    AuditLog
}

// NewAuditConsumer creates a consumer bound to the extraction event stream.
func NewAuditConsumer(rmq *messaging.RabbitMQ, audit AuditLog, log *logger.Logger) (*AuditConsumer, error) {
	consumer, err := messaging.NewConsumer(rmq, "cv-service.audit", log)
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(messaging.ExchangeCVEvents, "cv.extraction.*"); err != nil {
		return nil, err
	}

	ac := &AuditConsumer{
		consumer: consumer,
		audit:    audit,
	}

	consumer.RegisterHandler(messaging.EventExtractionCompleted, ac.handleCompleted)
	consumer.RegisterHandler(messaging.EventExtractionFailed, ac.handleFailed)

	return ac, nil
}

// Start begins consuming in the background until ctx is cancelled.
func (c *AuditConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

func (c *AuditConsumer) handleCompleted(ctx context.Context, event *messaging.Event) error {
	var data messaging.ExtractionCompletedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	// The event carries the tenant context of the original request
	ctx = tenant.WithTenantContext(ctx, data.TenantID, data.TenantSlug, data.TenantSchema)

	return c.audit.WriteAuditLog(ctx, data.JobID, data.ActorID,
		domain.DocumentType(data.DocumentType), data.ProcessorName, "completed", data.DurationMs)
}

func (c *AuditConsumer) handleFailed(ctx context.Context, event *messaging.Event) error {
	var data messaging.ExtractionFailedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	ctx = tenant.WithTenantContext(ctx, data.TenantID, data.TenantSlug, data.TenantSchema)

	return c.audit.WriteAuditLog(ctx, data.JobID, data.ActorID,
		domain.DocumentType(data.DocumentType), "", "failed", data.DurationMs)
}
