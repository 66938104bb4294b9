package services

import (
	"context"

	"shepherd/internal/authz"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
)

// ModerationService handles the moderation queue and scheduled content
// scanning. Queue access is pastor/admin only.
type ModerationService interface {
	// ListFlags returns the moderation records of the actor's church.
	ListFlags(ctx context.Context, actor authz.Actor, filter repositories.FlaggedContentFilter) ([]models.FlaggedContent, error)

	// GetFlag retrieves one moderation record.
	GetFlag(ctx context.Context, actor authz.Actor, id string) (*models.FlaggedContent, error)

	// ReviewFlag records a human review decision on a flag.
	ReviewFlag(ctx context.Context, actor authz.Actor, id string, req *ReviewFlagRequest) (*models.FlaggedContent, error)

	// Stats summarizes the actor's church's moderation queue.
	Stats(ctx context.Context, actor authz.Actor) (*repositories.ModerationStats, error)

	// CheckContent screens text before submission. Open to any
	// authenticated actor so clients can validate form input.
	CheckContent(ctx context.Context, content string) (*CheckContentResult, error)

	// FlagContent files a manual report against a piece of content.
	// Open to any authenticated actor; the record lands in the actor's
	// church's queue.
	FlagContent(ctx context.Context, actor authz.Actor, req *FlagContentRequest) (*models.FlaggedContent, error)

	// ScanSermons re-scans recently updated sermons and records flags.
	// Invoked by the scheduler, not by a request actor.
	ScanSermons(ctx context.Context) error

	// ScanPrayerRequests re-scans recently updated prayer requests and
	// records flags. Invoked by the scheduler.
	ScanPrayerRequests(ctx context.Context) error
}

// ReviewFlagRequest represents a human moderation decision.
type ReviewFlagRequest struct {
	Resolved bool   `json:"resolved"`
	Notes    string `json:"notes,omitempty"`
}

// CheckContentResult is the pre-submission screening verdict.
type CheckContentResult struct {
	Allowed bool                     `json:"allowed"`
	Result  *models.ModerationResult `json:"result"`
}

// FlagContentRequest is a manual content report.
type FlagContentRequest struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	Content     string `json:"content"`
}
