package handler

import (
	"log/slog"
	"net/http"

	"shepherd/internal/domain/services"
	"shepherd/internal/httputil"
)

// ChurchHandler handles church management HTTP requests
type ChurchHandler struct {
	service services.ChurchService
	logger  *slog.Logger
}

// NewChurchHandler creates a new church handler
func NewChurchHandler(service services.ChurchService, logger *slog.Logger) *ChurchHandler {
	return &ChurchHandler{
		service: service,
		logger:  logger,
	}
}

// List returns every church (admin only)
// GET /api/churches
func (h *ChurchHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	churches, err := h.service.ListChurches(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, churches)
}

// Get retrieves one church
// GET /api/churches/{id}
func (h *ChurchHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	church, err := h.service.GetChurch(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, church)
}

// Create provisions a new tenant (admin only)
// POST /api/churches
func (h *ChurchHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.CreateChurchRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	church, err := h.service.CreateChurch(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, church)
}

// Update applies a partial update
// PATCH /api/churches/{id}
func (h *ChurchHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.UpdateChurchRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	church, err := h.service.UpdateChurch(r.Context(), actor, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, church)
}

// Delete removes a tenant (admin only)
// DELETE /api/churches/{id}
func (h *ChurchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteChurch(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
