package repositories

import (
	"context"

	"shepherd/internal/domain/models"
)

// FlaggedContentFilter narrows flagged-content listings.
type FlaggedContentFilter struct {
	Resolved    *bool
	Severity    models.FlagSeverity
	ContentType string
}

// ModerationStats summarizes a church's moderation queue.
type ModerationStats struct {
	Total      int64 `json:"total"`
	Unresolved int64 `json:"unresolved"`
	High       int64 `json:"high"`
	Medium     int64 `json:"medium"`
	Low        int64 `json:"low"`
}

// FlaggedContentRepository defines persistence operations for moderation
// records.
type FlaggedContentRepository interface {
	Create(ctx context.Context, flag *models.FlaggedContent) error

	GetByID(ctx context.Context, id string) (*models.FlaggedContent, error)

	// ListByChurch returns a church's moderation records ordered by flag
	// time, newest first.
	ListByChurch(ctx context.Context, churchID string, filter FlaggedContentFilter) ([]models.FlaggedContent, error)

	Update(ctx context.Context, flag *models.FlaggedContent) error

	Stats(ctx context.Context, churchID string) (*ModerationStats, error)
}
