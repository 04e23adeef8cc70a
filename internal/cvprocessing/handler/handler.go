package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/service"
	"github.com/talentflow/talentflow-backend/pkg/actor"
	"github.com/talentflow/talentflow-backend/pkg/config"
	"github.com/talentflow/talentflow-backend/pkg/errors"
	"github.com/talentflow/talentflow-backend/pkg/httputil"
	"github.com/talentflow/talentflow-backend/pkg/logger"
)

// requestSlack covers JSON framing and escaping on top of the raw text cap
const requestSlack = 64 << 10

// Handler handles HTTP requests for CV extraction
type Handler struct {
	service *service.Service
	cfg     *config.ExtractionConfig
	log     *logger.Logger
}

// NewHandler creates a new CV extraction handler
func NewHandler(svc *service.Service, cfg *config.ExtractionConfig, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		cfg:     cfg,
		log:     log,
	}
}

// Extract handles POST /api/v1/cv/extractions
// Accepts raw resume text and starts an asynchronous extraction job.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.cfg.MaxTextBytes)+requestSlack)

	var req domain.ExtractionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	if len(req.Text) > h.cfg.MaxTextBytes {
		httputil.Error(w, errors.BadRequest(fmt.Sprintf("text exceeds maximum size of %d bytes", h.cfg.MaxTextBytes)))
		return
	}

	docType := domain.DocumentType(req.DocumentType)
	if docType == "" {
		docType = domain.DocumentTypeResume
	}

	ctx := r.Context()
	if act := actor.FromRequest(r); act != nil {
		ctx = actor.WithActor(ctx, act)
	}

	job, err := h.service.StartExtraction(ctx, req.Text, docType)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":     job.ID,
		"status":     job.Status,
		"created_at": job.CreatedAt,
	})
}

// GetJob handles GET /api/v1/cv/extractions/{jobID}
// Returns the job status; the profile is included once completed.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if jobID == "" {
		httputil.JSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing jobID parameter",
		})
		return
	}

	job := h.service.GetJob(jobID)
	if job == nil {
		httputil.JSON(w, http.StatusNotFound, map[string]string{
			"error": "Job not found",
		})
		return
	}

	httputil.JSON(w, http.StatusOK, job)
}

// GetProfile handles GET /api/v1/cv/extractions/{jobID}/profile
// Returns only the extracted candidate profile, 404 until the job completes.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job := h.service.GetJob(jobID)
	if job == nil || job.Status != domain.JobStatusCompleted || job.Profile == nil {
		httputil.JSON(w, http.StatusNotFound, map[string]string{
			"error": "Profile not available",
		})
		return
	}

	httputil.JSON(w, http.StatusOK, job.Profile)
}

// History handles GET /api/v1/cv/history
// Lists the tenant's persisted extractions, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = h.cfg.HistoryPageSize
		if perPage < 1 {
			perPage = 20
		}
	}

	records, total, err := h.service.GetHistory(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	httputil.JSONWithMeta(w, http.StatusOK, records, &httputil.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// GetExtraction handles GET /api/v1/cv/history/{id}
// Returns one persisted extraction with its full profile.
func (h *Handler) GetExtraction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, profile, err := h.service.GetExtraction(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"record":  rec,
		"profile": profile,
	})
}

// Stats handles GET /api/v1/cv/stats
// Tallies the tenant's extractions per detected language.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.GetStats(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"total":       total,
		"by_language": counts,
	})
}
