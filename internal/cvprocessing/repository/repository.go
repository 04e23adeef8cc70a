package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
	"github.com/talentflow/talentflow-backend/pkg/database"
	"github.com/talentflow/talentflow-backend/pkg/errors"
	"github.com/talentflow/talentflow-backend/pkg/tenant"
)

// Repository handles extraction result persistence
type Repository struct {
	db *database.DB
}

// New creates a new extraction repository
func New(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a completed extraction and returns its ID
// TENANT-ISOLATED: Inserts into the tenant's schema
func (r *Repository) Create(ctx context.Context, profile *domain.CandidateProfile, status string) (string, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return "", errors.Wrap(err, "INTERNAL_ERROR", "failed to encode profile", http.StatusInternalServerError)
	}

	rec := domain.ExtractionRecord{
		ID:               uuid.New().String(),
		CandidateName:    profile.PersonalInfo.FullName,
		DetectedLanguage: profile.Metadata.DetectedLanguage,
		ConfidenceScore:  profile.ConfidenceScore,
		Profile:          payload,
		Status:           status,
		CreatedAt:        time.Now().UTC(),
	}

	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO cv_extractions (
				id, candidate_name, detected_language, confidence_score,
				profile, status, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := r.db.ExecContext(ctx, query,
			rec.ID, rec.CandidateName, rec.DetectedLanguage,
			rec.ConfidenceScore, rec.Profile, rec.Status, rec.CreatedAt,
		)
		return err
	})
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return "", appErr
		}
		return "", err
	}

	return rec.ID, nil
}

// GetByID gets an extraction record with its stored profile
// TENANT-ISOLATED: Queries only the tenant's schema
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ExtractionRecord, *domain.CandidateProfile, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, nil, err
	}

	var rec domain.ExtractionRecord

	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT id, candidate_name, detected_language, confidence_score,
			       profile, status, created_at
			FROM cv_extractions
			WHERE id = $1
		`
		return r.db.GetContext(ctx, &rec, query, id)
	})

	if err == sql.ErrNoRows {
		return nil, nil, errors.NotFound("extraction")
	}
	if err != nil {
		return nil, nil, err
	}

	var profile domain.CandidateProfile
	if err := json.Unmarshal(rec.Profile, &profile); err != nil {
		return nil, nil, errors.Wrap(err, "INTERNAL_ERROR", "failed to decode stored profile", http.StatusInternalServerError)
	}

	return &rec, &profile, nil
}

// List lists the tenant's extractions, newest first
// TENANT-ISOLATED: Queries only the tenant's schema
func (r *Repository) List(ctx context.Context, limit, offset int) ([]domain.ExtractionRecord, int64, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	records := []domain.ExtractionRecord{}

	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		countQuery := `SELECT COUNT(*) FROM cv_extractions`
		if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
			return err
		}

		query := `
			SELECT id, candidate_name, detected_language, confidence_score,
			       profile, status, created_at
			FROM cv_extractions
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`
		return r.db.SelectContext(ctx, &records, query, limit, offset)
	})
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// CountByLanguage tallies stored extractions per detected language
// TENANT-ISOLATED: Queries only the tenant's schema
func (r *Repository) CountByLanguage(ctx context.Context) ([]domain.LanguageCount, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	counts := []domain.LanguageCount{}

	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT detected_language, COUNT(*) AS count
			FROM cv_extractions
			GROUP BY detected_language
			ORDER BY detected_language
		`
		return r.db.SelectContext(ctx, &counts, query)
	})
	if err != nil {
		return nil, err
	}

	return counts, nil
}

// WriteAuditLog records an extraction attempt for traceability
// TENANT-ISOLATED: Inserts into the tenant's schema
func (r *Repository) WriteAuditLog(ctx context.Context, jobID, actorID string, docType domain.DocumentType, processorName, outcome string, durationMs int64) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO extraction_audit_log (
				id, job_id, actor_id, document_type, processor_name,
				outcome, duration_ms, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := r.db.ExecContext(ctx, query,
			uuid.New().String(), jobID, actorID, string(docType),
			processorName, outcome, durationMs, time.Now().UTC(),
		)
		return err
	})
}
