package repositories

import (
	"context"
	"time"

	"shepherd/internal/domain/models"
)

// PrayerRequestRepository defines persistence operations for prayer
// requests. Visibility filtering is intentionally NOT done here; the
// service fetches the tenant's set and lets the authorization engine
// filter it per actor.
type PrayerRequestRepository interface {
	Create(ctx context.Context, request *models.PrayerRequest) error

	GetByID(ctx context.Context, id string) (*models.PrayerRequest, error)

	// ListByChurch returns a church's prayer requests ordered by creation
	// time, newest first. An empty status lists every status.
	ListByChurch(ctx context.Context, churchID string, status models.PrayerRequestStatus) ([]models.PrayerRequest, error)

	Update(ctx context.Context, request *models.PrayerRequest) error

	Delete(ctx context.Context, id string) error

	// IncrementPrayerCount bumps the prayed-for counter without touching
	// updated_at.
	IncrementPrayerCount(ctx context.Context, id string) error

	// ListUnscanned returns prayer requests updated since the cutoff that
	// have not been moderation-scanned since their last update.
	ListUnscanned(ctx context.Context, updatedSince time.Time) ([]models.PrayerRequest, error)

	UpdateLastScanned(ctx context.Context, id string, scannedAt time.Time) error
}
