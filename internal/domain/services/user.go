package services

import (
	"context"

	"shepherd/internal/authz"
	"shepherd/internal/domain/models"
)

// UserService handles user management. Every method takes the acting
// user; authorization decisions are delegated to the authz package.
type UserService interface {
	// ListUsers returns users visible to the actor: the whole platform
	// for admins, the actor's church for pastors.
	ListUsers(ctx context.Context, actor authz.Actor) ([]models.User, error)

	// GetUser retrieves one user (self, or a privileged view).
	GetUser(ctx context.Context, actor authz.Actor, id string) (*models.User, error)

	// CreateUser provisions an account on someone's behalf.
	CreateUser(ctx context.Context, actor authz.Actor, req *CreateUserRequest) (*models.User, error)

	// UpdateUser applies a partial update. Nil fields are left untouched.
	UpdateUser(ctx context.Context, actor authz.Actor, id string, req *UpdateUserRequest) (*models.User, error)

	// DeleteUser removes an account. Self-deletion is never permitted.
	DeleteUser(ctx context.Context, actor authz.Actor, id string) error
}

// CreateUserRequest represents privileged account provisioning.
type CreateUserRequest struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Role      models.UserRole `json:"role"`
	ChurchID  string          `json:"church_id"`
}

// UpdateUserRequest represents a partial user update.
type UpdateUserRequest struct {
	FirstName *string          `json:"first_name,omitempty"`
	LastName  *string          `json:"last_name,omitempty"`
	Email     *string          `json:"email,omitempty"`
	Password  *string          `json:"password,omitempty"`
	Role      *models.UserRole `json:"role,omitempty"`
	AvatarURL *string          `json:"avatar_url,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}
