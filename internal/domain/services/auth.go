package services

import (
	"context"

	"shepherd/internal/domain/models"
)

// AuthService handles registration and credential login.
type AuthService interface {
	// Register creates a member account in an existing church and returns
	// the user plus a signed token.
	Register(ctx context.Context, req *RegisterRequest) (*models.User, string, error)

	// Login verifies credentials and returns the user plus a signed token.
	Login(ctx context.Context, req *LoginRequest) (*models.User, string, error)
}

// RegisterRequest represents a self-service registration.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ChurchID  string `json:"church_id"`
}

// LoginRequest represents a credential login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
