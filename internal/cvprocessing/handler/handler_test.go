package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/handler"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/processor"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/service"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/storage"
	"github.com/talentflow/talentflow-backend/pkg/config"
	"github.com/talentflow/talentflow-backend/pkg/httputil"
	"github.com/talentflow/talentflow-backend/pkg/logger"
)

const sampleResume = `JOHN SMITH
Senior Software Engineer
john.smith@example.com | +1 (617) 555-0142

WORK EXPERIENCE
Jan 2019 - Present
Senior Software Engineer | Acme Corp
- Led the migration of services to Kubernetes

SKILLS
Python, Go, Docker, Kubernetes
`

func newTestRouter() chi.Router {
	registry := processor.NewRegistry(processor.NewResumeProcessor())
	jobs := storage.NewJobStore(time.Minute)
	log := logger.New("test", "test")
	svc := service.NewService(registry, jobs, nil, nil, log)
	cfg := &config.ExtractionConfig{
		JobTTL:          time.Minute,
		MaxTextBytes:    1 << 20,
		HistoryPageSize: 20,
	}
	h := handler.NewHandler(svc, cfg, log)

	r := chi.NewRouter()
	r.Route("/api/v1/cv", func(r chi.Router) {
		r.Use(httputil.TenantMiddleware)
		r.Route("/extractions", func(r chi.Router) {
			r.Post("/", h.Extract)
			r.Get("/{jobID}", h.GetJob)
			r.Get("/{jobID}/profile", h.GetProfile)
		})
		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.History)
			r.Get("/{id}", h.GetExtraction)
		})
		r.Get("/stats", h.Stats)
	})
	return r
}

func doRequest(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", "tenant-1")
	req.Header.Set("X-Tenant-Slug", "acme-recruiting")
	req.Header.Set("X-Tenant-Schema", "tenant_acme_recruiting")
	req.Header.Set("X-User-ID", "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func startExtraction(t *testing.T, router chi.Router, text string) string {
	t.Helper()
	body, err := json.Marshal(map[string]string{"text": text})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cv/extractions", string(body))
	require.Equal(t, http.StatusAccepted, rec.Code)

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	jobID, _ := data["job_id"].(string)
	require.NotEmpty(t, jobID)
	return jobID
}

func TestExtract_ReturnsAccepted(t *testing.T) {
	router := newTestRouter()

	jobID := startExtraction(t, router, sampleResume)
	assert.NotEmpty(t, jobID)
}

func TestExtract_MissingTenantContext(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/extractions",
		strings.NewReader(`{"text":"hello"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExtract_InvalidJSON(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cv/extractions", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
}

func TestExtract_MissingText(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cv/extractions", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtract_RejectsOversizeText(t *testing.T) {
	router := newTestRouter()

	payload, err := json.Marshal(map[string]string{
		"text": strings.Repeat("a", (1<<20)+1),
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cv/extractions", string(payload))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtract_RejectsUnknownDocumentType(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cv/extractions",
		`{"text":"some resume text","document_type":"invoice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJob_CompletesWithProfile(t *testing.T) {
	router := newTestRouter()

	jobID := startExtraction(t, router, sampleResume)

	var data map[string]interface{}
	require.Eventually(t, func() bool {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/cv/extractions/"+jobID, "")
		if rec.Code != http.StatusOK {
			return false
		}
		resp := decodeResponse(t, rec)
		var ok bool
		data, ok = resp.Data.(map[string]interface{})
		return ok && data["status"] == "completed"
	}, 5*time.Second, 10*time.Millisecond, "job did not complete")

	profile, ok := data["profile"].(map[string]interface{})
	require.True(t, ok)
	personal, ok := profile["personal_info"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "John Smith", personal["full_name"])
}

func TestGetJob_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cv/extractions/no-such-job", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProfile_NotAvailableUntilCompleted(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cv/extractions/no-such-job/profile", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProfile_ReturnsProfileOnly(t *testing.T) {
	router := newTestRouter()

	jobID := startExtraction(t, router, sampleResume)

	require.Eventually(t, func() bool {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/cv/extractions/"+jobID+"/profile", "")
		return rec.Code == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond, "profile never became available")

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cv/extractions/"+jobID+"/profile", "")
	resp := decodeResponse(t, rec)
	profile, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, profile, "personal_info")
	assert.Contains(t, profile, "metadata")
	assert.Contains(t, profile, "confidence_score")
}

func TestHistory_EmptyWithoutPersistence(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cv/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(0), resp.Meta.Total)
}

func TestStats_EmptyWithoutPersistence(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cv/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), data["total"])
}
