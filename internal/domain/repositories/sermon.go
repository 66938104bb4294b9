package repositories

import (
	"context"
	"time"

	"shepherd/internal/domain/models"
)

// SermonRepository defines persistence operations for sermons.
type SermonRepository interface {
	Create(ctx context.Context, sermon *models.Sermon) error

	GetByID(ctx context.Context, id string) (*models.Sermon, error)

	// ListByChurch returns a church's sermons ordered by creation time,
	// newest first. An empty status lists every status.
	ListByChurch(ctx context.Context, churchID string, status models.SermonStatus) ([]models.Sermon, error)

	Update(ctx context.Context, sermon *models.Sermon) error

	Delete(ctx context.Context, id string) error

	// ListUnscanned returns sermons updated since the cutoff that have not
	// been moderation-scanned since their last update.
	ListUnscanned(ctx context.Context, updatedSince time.Time) ([]models.Sermon, error)

	UpdateLastScanned(ctx context.Context, id string, scannedAt time.Time) error
}
