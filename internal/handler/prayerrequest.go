package handler

import (
	"log/slog"
	"net/http"

	"shepherd/internal/domain/models"
	"shepherd/internal/domain/services"
	"shepherd/internal/httputil"
)

// PrayerRequestHandler handles prayer request HTTP endpoints.
// Visibility rules are enforced in the service layer, so a request the
// actor may not see simply returns 404 here.
type PrayerRequestHandler struct {
	service services.PrayerRequestService
	logger  *slog.Logger
}

// NewPrayerRequestHandler creates a new prayer request handler
func NewPrayerRequestHandler(service services.PrayerRequestService, logger *slog.Logger) *PrayerRequestHandler {
	return &PrayerRequestHandler{
		service: service,
		logger:  logger,
	}
}

// List returns the prayer requests visible to the actor
// GET /api/prayer-requests?status=active
func (h *PrayerRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	status := models.PrayerRequestStatus(r.URL.Query().Get("status"))
	requests, err := h.service.ListPrayerRequests(r.Context(), actor, status)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, requests)
}

// Get retrieves one prayer request
// GET /api/prayer-requests/{id}
func (h *PrayerRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	request, err := h.service.GetPrayerRequest(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, request)
}

// Create submits a new prayer request
// POST /api/prayer-requests
func (h *PrayerRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.CreatePrayerRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.service.CreatePrayerRequest(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, request)
}

// Update applies a partial update
// PATCH /api/prayer-requests/{id}
func (h *PrayerRequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.UpdatePrayerRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.service.UpdatePrayerRequest(r.Context(), actor, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, request)
}

// UpdateStatus transitions a prayer request through its lifecycle
// PATCH /api/prayer-requests/{id}/status
func (h *PrayerRequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.service.UpdatePrayerRequestStatus(r.Context(), actor, r.PathValue("id"), models.PrayerRequestStatus(req.Status))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, request)
}

// Delete removes a prayer request
// DELETE /api/prayer-requests/{id}
func (h *PrayerRequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePrayerRequest(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Pray records that the actor prayed for a request
// POST /api/prayer-requests/{id}/pray
func (h *PrayerRequestHandler) Pray(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	request, err := h.service.Pray(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, request)
}

// GenerateResponse attaches an AI pastoral response to a request
// POST /api/prayer-requests/{id}/ai-response
func (h *PrayerRequestHandler) GenerateResponse(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	request, err := h.service.GenerateResponse(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, request)
}
