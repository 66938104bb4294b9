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

// churchService implements the ChurchService interface
type churchService struct {
	churchRepo repositories.ChurchRepository
	logger     *slog.Logger
}

// NewChurchService creates a new church service
func NewChurchService(churchRepo repositories.ChurchRepository, logger *slog.Logger) services.ChurchService {
	return &churchService{
		churchRepo: churchRepo,
		logger:     logger,
	}
}

// ListChurches returns every church. Admin only.
func (s *churchService) ListChurches(ctx context.Context, actor authz.Actor) ([]models.Church, error) {
	if actor.Role != models.RoleAdmin {
		return nil, denied(authz.CheckRole(actor.Role, models.RoleAdmin))
	}
	return s.churchRepo.List(ctx)
}

// GetChurch retrieves a church the actor belongs to, or any church for
// admins
func (s *churchService) GetChurch(ctx context.Context, actor authz.Actor, id string) (*models.Church, error) {
	if err := authz.CheckChurchRead(actor, id); err != nil {
		return nil, denied(err)
	}
	return s.churchRepo.GetByID(ctx, id)
}

// CreateChurch provisions a new tenant. Admin only.
func (s *churchService) CreateChurch(ctx context.Context, actor authz.Actor, req *services.CreateChurchRequest) (*models.Church, error) {
	if actor.Role != models.RoleAdmin {
		return nil, denied(authz.CheckRole(actor.Role, models.RoleAdmin))
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	plan := req.SubscriptionPlan
	if plan == "" {
		plan = models.PlanFree
	}
	if !plan.Valid() {
		return nil, fmt.Errorf("%w: invalid subscription plan %q", domain.ErrValidation, plan)
	}

	now := time.Now()
	church := &models.Church{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Description:      req.Description,
		WebsiteURL:       req.WebsiteURL,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		Country:          req.Country,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		SubscriptionPlan: plan,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.churchRepo.Create(ctx, church); err != nil {
		return nil, err
	}

	s.logger.Info("church created", "id", church.ID, "name", church.Name)
	return church, nil
}

// UpdateChurch applies a partial update
func (s *churchService) UpdateChurch(ctx context.Context, actor authz.Actor, id string, req *services.UpdateChurchRequest) (*models.Church, error) {
	if err := authz.CheckChurchUpdate(actor, id); err != nil {
		return nil, denied(err)
	}

	church, err := s.churchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Billing and verification fields stay under platform control.
	if actor.Role != models.RoleAdmin && (req.SubscriptionPlan != nil || req.IsActive != nil || req.IsVerified != nil) {
		return nil, denied(authz.CheckRole(actor.Role, models.RoleAdmin))
	}

	if req.Name != nil {
		church.Name = *req.Name
	}
	if req.Description != nil {
		church.Description = *req.Description
	}
	if req.LogoURL != nil {
		church.LogoURL = *req.LogoURL
	}
	if req.WebsiteURL != nil {
		church.WebsiteURL = *req.WebsiteURL
	}
	if req.Address != nil {
		church.Address = *req.Address
	}
	if req.City != nil {
		church.City = *req.City
	}
	if req.State != nil {
		church.State = *req.State
	}
	if req.ZipCode != nil {
		church.ZipCode = *req.ZipCode
	}
	if req.Country != nil {
		church.Country = *req.Country
	}
	if req.PhoneNumber != nil {
		church.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		church.Email = *req.Email
	}
	if req.SubscriptionPlan != nil {
		if !req.SubscriptionPlan.Valid() {
			return nil, fmt.Errorf("%w: invalid subscription plan %q", domain.ErrValidation, *req.SubscriptionPlan)
		}
		church.SubscriptionPlan = *req.SubscriptionPlan
	}
	if req.IsActive != nil {
		church.IsActive = *req.IsActive
	}
	if req.IsVerified != nil {
		church.IsVerified = *req.IsVerified
	}

	if church.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}

	church.UpdatedAt = time.Now()
	if err := s.churchRepo.Update(ctx, church); err != nil {
		return nil, err
	}

	return church, nil
}

// DeleteChurch removes a tenant. Admin only.
func (s *churchService) DeleteChurch(ctx context.Context, actor authz.Actor, id string) error {
	if actor.Role != models.RoleAdmin {
		return denied(authz.CheckRole(actor.Role, models.RoleAdmin))
	}

	if err := s.churchRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("church deleted", "id", id, "deleted_by", actor.ID)
	return nil
}

func (s *churchService) validateCreateRequest(req *services.CreateChurchRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	)
}
