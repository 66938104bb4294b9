package handler

import (
	"log/slog"
	"net/http"

	"shepherd/internal/domain/models"
	"shepherd/internal/domain/services"
	"shepherd/internal/httputil"
)

// SermonHandler handles sermon HTTP requests, including AI generation
// and audio synthesis.
type SermonHandler struct {
	service services.SermonService
	logger  *slog.Logger
}

// NewSermonHandler creates a new sermon handler
func NewSermonHandler(service services.SermonService, logger *slog.Logger) *SermonHandler {
	return &SermonHandler{
		service: service,
		logger:  logger,
	}
}

// List returns sermons visible to the actor, optionally filtered by status
// GET /api/sermons?status=published
func (h *SermonHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	status := models.SermonStatus(r.URL.Query().Get("status"))
	sermons, err := h.service.ListSermons(r.Context(), actor, status)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sermons)
}

// Get retrieves one sermon
// GET /api/sermons/{id}
func (h *SermonHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	sermon, err := h.service.GetSermon(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sermon)
}

// Create creates a sermon authored by the actor
// POST /api/sermons
func (h *SermonHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.CreateSermonRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sermon, err := h.service.CreateSermon(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, sermon)
}

// Update applies a partial update
// PATCH /api/sermons/{id}
func (h *SermonHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.UpdateSermonRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sermon, err := h.service.UpdateSermon(r.Context(), actor, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sermon)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus transitions a sermon through its lifecycle
// PATCH /api/sermons/{id}/status
func (h *SermonHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sermon, err := h.service.UpdateSermonStatus(r.Context(), actor, r.PathValue("id"), models.SermonStatus(req.Status))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sermon)
}

// Delete removes a sermon
// DELETE /api/sermons/{id}
func (h *SermonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSermon(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Generate creates a sermon draft with AI assistance
// POST /api/sermons/generate
func (h *SermonHandler) Generate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.GenerateSermonRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sermon, err := h.service.GenerateSermon(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, sermon)
}

// SynthesizeAudio renders a sermon to speech
// POST /api/sermons/{id}/audio
func (h *SermonHandler) SynthesizeAudio(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.SynthesizeAudioRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sermon, err := h.service.SynthesizeAudio(r.Context(), actor, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sermon)
}
