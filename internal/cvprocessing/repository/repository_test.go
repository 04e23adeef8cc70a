package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/repository"
	apperrors "github.com/talentflow/talentflow-backend/pkg/errors"
	"github.com/talentflow/talentflow-backend/pkg/tenant"
	"github.com/talentflow/talentflow-backend/pkg/testutil"
)

const testSchema = "tenant_acme_recruiting"

func tenantCtx() context.Context {
	return tenant.WithTenantContext(context.Background(),
		"tenant-1", "acme-recruiting", testSchema)
}

func sampleProfile() *domain.CandidateProfile {
	profile := domain.NewCandidateProfile()
	profile.PersonalInfo.FullName = "Jane Doe"
	profile.PersonalInfo.Email = "jane.doe@example.com"
	profile.Metadata.DetectedLanguage = domain.LanguageEnglish
	profile.ConfidenceScore = 0.75
	return &profile
}

func TestCreate_InsertsIntoTenantSchema(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := repository.New(mockDB.DB)

	mockDB.ExpectTenantSearchPath(testSchema)
	mockDB.ExpectExec("INSERT INTO cv_extractions").
		WithArgs(testutil.AnyUUID{}, "Jane Doe", "en", 0.75,
			sqlmock.AnyArg(), "completed", testutil.AnyTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	id, err := repo.Create(tenantCtx(), sampleProfile(), domain.JobStatusCompleted)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	mockDB.ExpectationsWereMet(t)
}

func TestCreate_RequiresTenantContext(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := repository.New(mockDB.DB)

	_, err := repo.Create(context.Background(), sampleProfile(), domain.JobStatusCompleted)
	assert.ErrorIs(t, err, tenant.ErrNoTenantInContext)
}

func TestGetByID_ReturnsRecordAndProfile(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := repository.New(mockDB.DB)

	payload, err := json.Marshal(sampleProfile())
	require.NoError(t, err)

	rows := testutil.MockRows(
		"id", "candidate_name", "detected_language", "confidence_score",
		"profile", "status", "created_at",
	).AddRow("ext-1", "Jane Doe", "en", 0.75, payload, "completed", time.Now())

	mockDB.ExpectTenantQuery(testSchema, "SELECT id, candidate_name, detected_language, confidence_score", rows)

	rec, profile, err := repo.GetByID(tenantCtx(), "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "ext-1", rec.ID)
	assert.Equal(t, "Jane Doe", rec.CandidateName)
	require.NotNil(t, profile)
	assert.Equal(t, "jane.doe@example.com", profile.PersonalInfo.Email)
	assert.Equal(t, "en", profile.Metadata.DetectedLanguage)

	mockDB.ExpectationsWereMet(t)
}

func TestGetByID_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := repository.New(mockDB.DB)

	mockDB.ExpectTenantSearchPath(testSchema)
	mockDB.ExpectQuery("SELECT id, candidate_name").
		WillReturnRows(testutil.MockRows("id"))
	mockDB.ExpectRollback()

	_, _, err := repo.GetByID(tenantCtx(), "missing")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestList_PaginatesNewestFirst(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := repository.New(mockDB.DB)

	payload, err := json.Marshal(sampleProfile())
	require.NoError(t, err)

	mockDB.ExpectTenantSearchPath(testSchema)
	mockDB.ExpectQuery("SELECT COUNT(*) FROM cv_extractions").
		WillReturnRows(testutil.MockRows("count").AddRow(int64(2)))
	mockDB.ExpectQuery("ORDER BY created_at DESC").
		WithArgs(20, 0).
		WillReturnRows(testutil.MockRows(
			"id", "candidate_name", "detected_language", "confidence_score",
			"profile", "status", "created_at",
		).
			AddRow("ext-2", "Marie Dupont", "fr", 0.6, payload, "completed", time.Now()).
			AddRow("ext-1", "Jane Doe", "en", 0.75, payload, "completed", time.Now().Add(-time.Hour)))
	mockDB.ExpectCommit()

	records, total, err := repo.List(tenantCtx(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, records, 2)
	assert.Equal(t, "Marie Dupont", records[0].CandidateName)
	assert.Equal(t, "Jane Doe", records[1].CandidateName)

	mockDB.ExpectationsWereMet(t)
}

func TestCountByLanguage(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := repository.New(mockDB.DB)

	rows := testutil.MockRows("detected_language", "count").
		AddRow("en", 3).
		AddRow("fr", 2).
		AddRow("mixed", 1)

	mockDB.ExpectTenantQuery(testSchema, "GROUP BY detected_language", rows)

	counts, err := repo.CountByLanguage(tenantCtx())
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, domain.LanguageCount{Language: "en", Count: 3}, counts[0])
	assert.Equal(t, domain.LanguageCount{Language: "fr", Count: 2}, counts[1])

	mockDB.ExpectationsWereMet(t)
}

func TestWriteAuditLog(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := repository.New(mockDB.DB)

	mockDB.ExpectTenantSearchPath(testSchema)
	mockDB.ExpectExec("INSERT INTO extraction_audit_log").
		WithArgs(testutil.AnyUUID{}, "job-1", "user-1", "resume",
			"heuristic-resume", "completed", int64(42), testutil.AnyTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	err := repo.WriteAuditLog(tenantCtx(), "job-1", "user-1",
		domain.DocumentTypeResume, "heuristic-resume", "completed", 42)
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}
