package repositories

import (
	"context"

	"shepherd/internal/domain/models"
)

// BibleStudyRepository defines persistence operations for bible studies.
type BibleStudyRepository interface {
	Create(ctx context.Context, study *models.BibleStudy) error

	GetByID(ctx context.Context, id string) (*models.BibleStudy, error)

	// ListByChurch returns a church's bible studies ordered by creation
	// time, newest first. An empty status lists every status.
	ListByChurch(ctx context.Context, churchID string, status models.BibleStudyStatus) ([]models.BibleStudy, error)

	Update(ctx context.Context, study *models.BibleStudy) error

	Delete(ctx context.Context, id string) error

	// IncrementViewCount bumps the view counter without touching
	// updated_at.
	IncrementViewCount(ctx context.Context, id string) error
}
