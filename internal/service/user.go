package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"shepherd/internal/auth"
	"shepherd/internal/authz"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
	"shepherd/internal/domain/services"
)

// userService implements the UserService interface
type userService struct {
	userRepo   repositories.UserRepository
	churchRepo repositories.ChurchRepository
	logger     *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	churchRepo repositories.ChurchRepository,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		userRepo:   userRepo,
		churchRepo: churchRepo,
		logger:     logger,
	}
}

// ListUsers returns the whole platform for admins, the actor's church for
// pastors
func (s *userService) ListUsers(ctx context.Context, actor authz.Actor) ([]models.User, error) {
	if err := authz.CheckUserList(actor); err != nil {
		return nil, denied(err)
	}

	if actor.Role == models.RoleAdmin {
		return s.userRepo.List(ctx)
	}
	return s.userRepo.ListByChurch(ctx, actor.ChurchID)
}

// GetUser retrieves one user
func (s *userService) GetUser(ctx context.Context, actor authz.Actor, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.CheckUserRead(actor, user); err != nil {
		return nil, denied(err)
	}

	return user, nil
}

// CreateUser provisions an account on someone's behalf
func (s *userService) CreateUser(ctx context.Context, actor authz.Actor, req *services.CreateUserRequest) (*models.User, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	churchID := req.ChurchID
	if churchID == "" {
		churchID = actor.ChurchID
	}

	if err := authz.CheckUserCreate(actor, churchID, req.Role); err != nil {
		return nil, denied(err)
	}

	// The church must exist before the account references it.
	if _, err := s.churchRepo.GetByID(ctx, churchID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		ChurchID:     churchID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		"id", user.ID,
		"role", user.Role,
		"church_id", user.ChurchID,
		"created_by", actor.ID,
	)

	return user, nil
}

// UpdateUser applies a partial update
func (s *userService) UpdateUser(ctx context.Context, actor authz.Actor, id string, req *services.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil && !req.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrValidation, *req.Role)
	}

	if err := authz.CheckUserUpdate(actor, user, req.Role); err != nil {
		return nil, denied(err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes an account. Self-deletion is never permitted.
func (s *userService) DeleteUser(ctx context.Context, actor authz.Actor, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.CheckUserDelete(actor, user); err != nil {
		return denied(err)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", "id", id, "deleted_by", actor.ID)
	return nil
}

func (s *userService) validateCreateRequest(req *services.CreateUserRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&req.Role, validation.Required, validation.In(
			models.RoleAdmin, models.RolePastor, models.RoleMember, models.RoleGuest,
		)),
	)
}
