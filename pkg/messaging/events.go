package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// CV processing events
	EventExtractionStarted   = "cv.extraction.started"
	EventExtractionCompleted = "cv.extraction.completed"
	EventExtractionFailed    = "cv.extraction.failed"
)

// Exchange names
const (
	ExchangeCVEvents = "cv.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// CV Processing Events

// ExtractionStartedEvent is published when an extraction job is accepted
type ExtractionStartedEvent struct {
	JobID        string `json:"job_id"`
	DocumentType string `json:"document_type"`
	TextBytes    int    `json:"text_bytes"`

	// Tenant context for downstream consumers
	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// ExtractionCompletedEvent is published when a candidate profile was extracted
type ExtractionCompletedEvent struct {
	JobID            string  `json:"job_id"`
	ExtractionID     string  `json:"extraction_id"`
	DocumentType     string  `json:"document_type"`
	CandidateName    string  `json:"candidate_name"`
	DetectedLanguage string  `json:"detected_language"`
	ConfidenceScore  float64 `json:"confidence_score"`
	ProcessorName    string  `json:"processor_name"`
	ActorID          string  `json:"actor_id"`
	DurationMs       int64   `json:"duration_ms"`

	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// ExtractionFailedEvent is published when no processor produced a profile
type ExtractionFailedEvent struct {
	JobID        string `json:"job_id"`
	DocumentType string `json:"document_type"`
	Reason       string `json:"reason"`
	ActorID      string `json:"actor_id"`
	DurationMs   int64  `json:"duration_ms"`

	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return uuid.New().String()
}
