package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
	"shepherd/internal/domain/services"
	"shepherd/internal/httputil"
)

// ModerationHandler exposes the flagged content review queue
type ModerationHandler struct {
	service services.ModerationService
	logger  *slog.Logger
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(service services.ModerationService, logger *slog.Logger) *ModerationHandler {
	return &ModerationHandler{
		service: service,
		logger:  logger,
	}
}

// List returns flagged content matching the query filters
// GET /api/moderation/flags?resolved=false&severity=HIGH&content_type=sermon
func (h *ModerationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	filter := repositories.FlaggedContentFilter{
		Severity:    models.FlagSeverity(r.URL.Query().Get("severity")),
		ContentType: r.URL.Query().Get("content_type"),
	}
	if raw := r.URL.Query().Get("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid resolved filter")
			return
		}
		filter.Resolved = &resolved
	}

	flags, err := h.service.ListFlags(r.Context(), actor, filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, flags)
}

// Get retrieves one flag
// GET /api/moderation/flags/{id}
func (h *ModerationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	flag, err := h.service.GetFlag(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, flag)
}

// Review resolves or annotates a flag
// PATCH /api/moderation/flags/{id}
func (h *ModerationHandler) Review(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.ReviewFlagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flag, err := h.service.ReviewFlag(r.Context(), actor, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, flag)
}

type checkContentRequest struct {
	Content string `json:"content"`
}

// Check screens text before submission
// POST /api/moderation/check
func (h *ModerationHandler) Check(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}

	var req checkContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CheckContent(r.Context(), req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// Flag files a manual content report
// POST /api/moderation/flag
func (h *ModerationHandler) Flag(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.FlagContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flag, err := h.service.FlagContent(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, flag)
}

// Stats summarizes the moderation queue
// GET /api/moderation/stats
func (h *ModerationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
