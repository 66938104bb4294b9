package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"shepherd/internal/authz"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
	"shepherd/internal/domain/services"
)

// prayerRequestService implements the PrayerRequestService interface
type prayerRequestService struct {
	prayerRepo repositories.PrayerRequestRepository
	churchRepo repositories.ChurchRepository
	responder  services.PrayerResponder
	scanner    services.ContentScanner
	logger     *slog.Logger
}

// NewPrayerRequestService creates a new prayer request service
func NewPrayerRequestService(
	prayerRepo repositories.PrayerRequestRepository,
	churchRepo repositories.ChurchRepository,
	responder services.PrayerResponder,
	scanner services.ContentScanner,
	logger *slog.Logger,
) services.PrayerRequestService {
	return &prayerRequestService{
		prayerRepo: prayerRepo,
		churchRepo: churchRepo,
		responder:  responder,
		scanner:    scanner,
		logger:     logger,
	}
}

// CreatePrayerRequest submits a request owned by the actor
func (s *prayerRequestService) CreatePrayerRequest(ctx context.Context, actor authz.Actor, req *services.CreatePrayerRequest) (*models.PrayerRequest, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := authz.Authorize(actor, authz.KindPrayerRequest, authz.OpCreate, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}

	if err := scanBlocked(ctx, s.scanner, req.Title+"\n"+req.Content); err != nil {
		return nil, err
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	now := time.Now()
	request := &models.PrayerRequest{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Content:    req.Content,
		Status:     models.PrayerOpen,
		Visibility: visibility,
		UserID:     actor.ID,
		ChurchID:   actor.ChurchID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.prayerRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("prayer request created",
		"id", request.ID,
		"visibility", visibility,
		"church_id", request.ChurchID,
	)

	return request, nil
}

// GetPrayerRequest retrieves one request if the actor may see it. Hidden
// requests look exactly like missing ones.
func (s *prayerRequestService) GetPrayerRequest(ctx context.Context, actor authz.Actor, id string) (*models.PrayerRequest, error) {
	request, err := s.prayerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.CheckReadPrayerRequest(actor, request); err != nil {
		return nil, denied(err)
	}

	return request, nil
}

// ListPrayerRequests returns the requests the actor may see, newest first
func (s *prayerRequestService) ListPrayerRequests(ctx context.Context, actor authz.Actor, status models.PrayerRequestStatus) ([]models.PrayerRequest, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	if err := authz.Authorize(actor, authz.KindPrayerRequest, authz.OpList, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}

	requests, err := s.prayerRepo.ListByChurch(ctx, actor.ChurchID, status)
	if err != nil {
		return nil, err
	}

	return authz.FilterPrayerRequests(actor, requests), nil
}

// UpdatePrayerRequest applies a partial update
func (s *prayerRequestService) UpdatePrayerRequest(ctx context.Context, actor authz.Actor, id string, req *services.UpdatePrayerRequest) (*models.PrayerRequest, error) {
	request, err := s.prayerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Visibility gating first so a hidden request never reveals itself
	// through a mutation error.
	if err := authz.CheckReadPrayerRequest(actor, request); err != nil {
		return nil, denied(err)
	}
	if err := authz.Authorize(actor, authz.KindPrayerRequest, authz.OpUpdate, authz.Target{ChurchID: request.ChurchID, OwnerID: request.UserID}); err != nil {
		return nil, denied(err)
	}

	if req.Title != nil {
		request.Title = *req.Title
	}
	if req.Content != nil {
		request.Content = *req.Content
	}
	if req.Visibility != nil {
		if !req.Visibility.Valid() {
			return nil, fmt.Errorf("%w: invalid visibility %q", domain.ErrValidation, *req.Visibility)
		}
		request.Visibility = *req.Visibility
	}

	if request.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}

	if err := scanBlocked(ctx, s.scanner, request.Title+"\n"+request.Content); err != nil {
		return nil, err
	}

	request.UpdatedAt = time.Now()
	if err := s.prayerRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// UpdatePrayerRequestStatus transitions lifecycle state
func (s *prayerRequestService) UpdatePrayerRequestStatus(ctx context.Context, actor authz.Actor, id string, status models.PrayerRequestStatus) (*models.PrayerRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	request, err := s.prayerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.CheckReadPrayerRequest(actor, request); err != nil {
		return nil, denied(err)
	}
	if err := authz.Authorize(actor, authz.KindPrayerRequest, authz.OpUpdateStatus, authz.Target{ChurchID: request.ChurchID, OwnerID: request.UserID}); err != nil {
		return nil, denied(err)
	}

	request.Status = status
	request.UpdatedAt = time.Now()
	if err := s.prayerRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// DeletePrayerRequest removes a request permanently
func (s *prayerRequestService) DeletePrayerRequest(ctx context.Context, actor authz.Actor, id string) error {
	request, err := s.prayerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.CheckReadPrayerRequest(actor, request); err != nil {
		return denied(err)
	}
	if err := authz.Authorize(actor, authz.KindPrayerRequest, authz.OpDelete, authz.Target{ChurchID: request.ChurchID, OwnerID: request.UserID}); err != nil {
		return denied(err)
	}

	return s.prayerRepo.Delete(ctx, id)
}

// Pray records that the actor prayed for a request they can see
func (s *prayerRequestService) Pray(ctx context.Context, actor authz.Actor, id string) (*models.PrayerRequest, error) {
	request, err := s.prayerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.CheckReadPrayerRequest(actor, request); err != nil {
		return nil, denied(err)
	}

	if err := s.prayerRepo.IncrementPrayerCount(ctx, id); err != nil {
		return nil, err
	}
	request.PrayerCount++

	return request, nil
}

// GenerateResponse produces an AI pastoral response. Gated on role and
// subscription plan.
func (s *prayerRequestService) GenerateResponse(ctx context.Context, actor authz.Actor, id string) (*models.PrayerRequest, error) {
	request, err := s.prayerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.CheckReadPrayerRequest(actor, request); err != nil {
		return nil, denied(err)
	}
	if err := authz.Authorize(actor, authz.KindPrayerRequest, authz.OpGenerateAI, authz.Target{ChurchID: request.ChurchID, OwnerID: request.UserID}); err != nil {
		return nil, denied(err)
	}
	if err := requirePaidPlan(ctx, actor, s.churchRepo); err != nil {
		return nil, err
	}

	response, verses, err := s.responder.RespondToPrayer(ctx, request.Title, request.Content)
	if err != nil {
		return nil, err
	}

	request.AIResponse = response
	request.RelatedBibleVerses = verses
	request.UpdatedAt = time.Now()
	if err := s.prayerRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("prayer response generated",
		"id", request.ID,
		"verse_count", len(verses),
	)

	return request, nil
}

func (s *prayerRequestService) validateCreateRequest(req *services.CreatePrayerRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.Visibility, validation.In(
			models.PrayerVisibility(""),
			models.VisibilityPublic,
			models.VisibilityPrivate,
			models.VisibilityPastoral,
		)),
	)
}
