package repository_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/processor"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/repository"
	"github.com/talentflow/talentflow-backend/pkg/testutil"
)

var suite *testutil.IntegrationSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	suite, err = testutil.NewIntegrationSuite(ctx)
	if err != nil {
		log.Printf("integration suite unavailable, integration tests will be skipped: %v", err)
	}

	code := m.Run()

	if suite != nil {
		suite.Cleanup(ctx)
		testutil.TerminateContainer(ctx)
	}
	os.Exit(code)
}

func requireSuite(t *testing.T) {
	t.Helper()
	testutil.SkipIfShort(t)
	if suite == nil {
		t.Skip("integration suite unavailable")
	}
}

func TestRepository_CreateAndGetByID(t *testing.T) {
	requireSuite(t)
	ctx := context.Background()

	tn := suite.SetupCVTenant(t, ctx, "create-get")
	repo := repository.New(suite.DB)
	tenantCtx := suite.TenantContext(tn)

	profile := suite.Fixtures.Profile(
		testutil.WithCandidateName("Marie Dupont"),
		testutil.WithLanguage(domain.LanguageFrench),
		testutil.WithConfidence(0.82),
	)

	id, err := repo.Create(tenantCtx, &profile, domain.JobStatusCompleted)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, got, err := repo.GetByID(tenantCtx, id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, got)

	assert.Equal(t, "Marie Dupont", rec.CandidateName)
	assert.Equal(t, domain.LanguageFrench, rec.DetectedLanguage)
	assert.InDelta(t, 0.82, rec.ConfidenceScore, 0.001)
	assert.Equal(t, "Marie Dupont", got.PersonalInfo.FullName)
}

func TestRepository_List_Pagination(t *testing.T) {
	requireSuite(t)
	ctx := context.Background()

	tn := suite.SetupCVTenant(t, ctx, "list-pagination")
	repo := repository.New(suite.DB)
	tenantCtx := suite.TenantContext(tn)

	for i := 0; i < 3; i++ {
		profile := suite.Fixtures.Profile()
		_, err := repo.Create(tenantCtx, &profile, domain.JobStatusCompleted)
		require.NoError(t, err)
	}

	records, total, err := repo.List(tenantCtx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 2)

	records, total, err = repo.List(tenantCtx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 1)
}

func TestRepository_CountByLanguage(t *testing.T) {
	requireSuite(t)
	ctx := context.Background()

	tn := suite.SetupCVTenant(t, ctx, "count-language")
	repo := repository.New(suite.DB)
	tenantCtx := suite.TenantContext(tn)

	for _, lang := range []string{domain.LanguageEnglish, domain.LanguageEnglish, domain.LanguageFrench} {
		profile := suite.Fixtures.Profile(testutil.WithLanguage(lang))
		_, err := repo.Create(tenantCtx, &profile, domain.JobStatusCompleted)
		require.NoError(t, err)
	}

	counts, err := repo.CountByLanguage(tenantCtx)
	require.NoError(t, err)

	byLang := make(map[string]int)
	for _, c := range counts {
		byLang[c.Language] = c.Count
	}
	assert.Equal(t, 2, byLang[domain.LanguageEnglish])
	assert.Equal(t, 1, byLang[domain.LanguageFrench])
}

func TestRepository_TenantIsolation(t *testing.T) {
	requireSuite(t)
	ctx := context.Background()

	tenantA := suite.SetupCVTenant(t, ctx, "isolation-a")
	tenantB := suite.SetupCVTenant(t, ctx, "isolation-b")
	repo := repository.New(suite.DB)

	profile := suite.Fixtures.Profile(testutil.WithCandidateName("Only In A"))
	_, err := repo.Create(suite.TenantContext(tenantA), &profile, domain.JobStatusCompleted)
	require.NoError(t, err)

	records, total, err := repo.List(suite.TenantContext(tenantB), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, records)
}

func TestRepository_WriteAuditLog(t *testing.T) {
	requireSuite(t)
	ctx := context.Background()

	tn := suite.SetupCVTenant(t, ctx, "audit-log")
	repo := repository.New(suite.DB)
	tenantCtx := suite.TenantContext(tn)

	jobID := uuid.New().String()
	err := repo.WriteAuditLog(tenantCtx, jobID, "user-1", domain.DocumentTypeResume, "heuristic-resume", "completed", 42)
	require.NoError(t, err)

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s.extraction_audit_log WHERE job_id = $1", tn.SchemaName)
	err = suite.RawDB.GetContext(ctx, &count, query, jobID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepository_PersistsEngineOutput(t *testing.T) {
	requireSuite(t)
	ctx := context.Background()

	tn := suite.SetupCVTenant(t, ctx, "engine-output")
	repo := repository.New(suite.DB)
	tenantCtx := suite.TenantContext(tn)

	proc := processor.NewResumeProcessor()

	english, err := proc.Process(ctx, testutil.EnglishResumeText(), domain.DocumentTypeResume)
	require.NoError(t, err)
	french, err := proc.Process(ctx, testutil.FrenchResumeText(), domain.DocumentTypeResume)
	require.NoError(t, err)

	englishID, err := repo.Create(tenantCtx, english, domain.JobStatusCompleted)
	require.NoError(t, err)
	frenchID, err := repo.Create(tenantCtx, french, domain.JobStatusCompleted)
	require.NoError(t, err)

	rec, _, err := repo.GetByID(tenantCtx, englishID)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", rec.CandidateName)
	assert.Equal(t, domain.LanguageEnglish, rec.DetectedLanguage)

	rec, _, err = repo.GetByID(tenantCtx, frenchID)
	require.NoError(t, err)
	assert.Equal(t, "Marie Dupont", rec.CandidateName)
	assert.Equal(t, domain.LanguageFrench, rec.DetectedLanguage)
}
