package repositories

import (
	"context"

	"shepherd/internal/domain/models"
)

// ChurchRepository defines persistence operations for churches (tenants).
type ChurchRepository interface {
	Create(ctx context.Context, church *models.Church) error

	GetByID(ctx context.Context, id string) (*models.Church, error)

	GetByName(ctx context.Context, name string) (*models.Church, error)

	// List returns every church on the platform (admin listing).
	List(ctx context.Context) ([]models.Church, error)

	Update(ctx context.Context, church *models.Church) error

	Delete(ctx context.Context, id string) error
}
