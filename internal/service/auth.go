package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"shepherd/internal/auth"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
	"shepherd/internal/domain/services"
)

// authService implements the AuthService interface
type authService struct {
	userRepo   repositories.UserRepository
	churchRepo repositories.ChurchRepository
	tokens     *auth.TokenManager
	logger     *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	churchRepo repositories.ChurchRepository,
	tokens *auth.TokenManager,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		userRepo:   userRepo,
		churchRepo: churchRepo,
		tokens:     tokens,
		logger:     logger,
	}
}

// Register creates a member account in an existing church
func (s *authService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, string, error) {
	if err := s.validateRegisterRequest(req); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.churchRepo.GetByID(ctx, req.ChurchID); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		// Self-service registration always yields a member; privileged
		// roles are granted through user management.
		Role:      models.RoleMember,
		ChurchID:  req.ChurchID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", "id", user.ID, "church_id", user.ChurchID)
	return user, token, nil
}

// Login verifies credentials and returns a signed token. Bad email and bad
// password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*models.User, string, error) {
	if err := s.validateLoginRequest(req); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", &domain.UnauthorizedError{Message: "invalid email or password"}
		}
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", &domain.UnauthorizedError{Message: "account is deactivated"}
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, "", &domain.UnauthorizedError{Message: "invalid email or password"}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", "id", user.ID)
	return user, token, nil
}

func (s *authService) validateRegisterRequest(req *services.RegisterRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&req.ChurchID, validation.Required, is.UUID),
	)
}

func (s *authService) validateLoginRequest(req *services.LoginRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
