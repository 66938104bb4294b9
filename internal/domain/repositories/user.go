package repositories

import (
	"context"

	"shepherd/internal/domain/models"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error

	// GetByID fetches a user without tenant filtering; tenant isolation is
	// the authorization engine's job, applied to the fetched record.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail fetches a user including the password hash, for
	// credential verification.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns every user on the platform (admin listing).
	List(ctx context.Context) ([]models.User, error)

	// ListByChurch returns the users of one church.
	ListByChurch(ctx context.Context, churchID string) ([]models.User, error)

	Update(ctx context.Context, user *models.User) error

	Delete(ctx context.Context, id string) error
}
