package handler

import (
	"log/slog"
	"net/http"

	"shepherd/internal/domain/models"
	"shepherd/internal/domain/services"
	"shepherd/internal/httputil"
)

// BibleStudyHandler handles bible study HTTP requests
type BibleStudyHandler struct {
	service services.BibleStudyService
	logger  *slog.Logger
}

// NewBibleStudyHandler creates a new bible study handler
func NewBibleStudyHandler(service services.BibleStudyService, logger *slog.Logger) *BibleStudyHandler {
	return &BibleStudyHandler{
		service: service,
		logger:  logger,
	}
}

// List returns bible studies, optionally filtered by status
// GET /api/bible-studies?status=published
func (h *BibleStudyHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	status := models.BibleStudyStatus(r.URL.Query().Get("status"))
	studies, err := h.service.ListBibleStudies(r.Context(), actor, status)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, studies)
}

// Get retrieves one bible study and records the view
// GET /api/bible-studies/{id}
func (h *BibleStudyHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	study, err := h.service.GetBibleStudy(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, study)
}

// Create creates a bible study authored by the actor
// POST /api/bible-studies
func (h *BibleStudyHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.CreateBibleStudyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	study, err := h.service.CreateBibleStudy(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, study)
}

// Update applies a partial update
// PATCH /api/bible-studies/{id}
func (h *BibleStudyHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.UpdateBibleStudyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	study, err := h.service.UpdateBibleStudy(r.Context(), actor, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, study)
}

// UpdateStatus transitions a bible study through its lifecycle
// PATCH /api/bible-studies/{id}/status
func (h *BibleStudyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	study, err := h.service.UpdateBibleStudyStatus(r.Context(), actor, r.PathValue("id"), models.BibleStudyStatus(req.Status))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, study)
}

// Delete removes a bible study
// DELETE /api/bible-studies/{id}
func (h *BibleStudyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBibleStudy(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GenerateExplanations adds AI verse explanations to a study
// POST /api/bible-studies/{id}/explanations
func (h *BibleStudyHandler) GenerateExplanations(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.GenerateExplanationsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	study, err := h.service.GenerateExplanations(r.Context(), actor, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, study)
}
