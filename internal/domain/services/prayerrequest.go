package services

import (
	"context"

	"shepherd/internal/authz"
	"shepherd/internal/domain/models"
)

// PrayerRequestService handles prayer request business logic. Read paths
// apply per-actor visibility filtering on top of tenant isolation.
type PrayerRequestService interface {
	// CreatePrayerRequest submits a request owned by the actor. Content is
	// screened before acceptance.
	CreatePrayerRequest(ctx context.Context, actor authz.Actor, req *CreatePrayerRequest) (*models.PrayerRequest, error)

	// GetPrayerRequest retrieves one request if the actor may see it. A
	// request hidden by visibility rules is indistinguishable from a
	// missing one.
	GetPrayerRequest(ctx context.Context, actor authz.Actor, id string) (*models.PrayerRequest, error)

	// ListPrayerRequests returns the requests the actor may see within
	// their church, newest first.
	ListPrayerRequests(ctx context.Context, actor authz.Actor, status models.PrayerRequestStatus) ([]models.PrayerRequest, error)

	// UpdatePrayerRequest applies a partial update. Nil fields are left untouched.
	UpdatePrayerRequest(ctx context.Context, actor authz.Actor, id string, req *UpdatePrayerRequest) (*models.PrayerRequest, error)

	// UpdatePrayerRequestStatus transitions lifecycle state.
	UpdatePrayerRequestStatus(ctx context.Context, actor authz.Actor, id string, status models.PrayerRequestStatus) (*models.PrayerRequest, error)

	// DeletePrayerRequest removes a request permanently.
	DeletePrayerRequest(ctx context.Context, actor authz.Actor, id string) error

	// Pray records that the actor prayed for a request they can see.
	Pray(ctx context.Context, actor authz.Actor, id string) (*models.PrayerRequest, error)

	// GenerateResponse produces an AI pastoral response with related
	// verses and stores it on the request. Requires a paid plan.
	GenerateResponse(ctx context.Context, actor authz.Actor, id string) (*models.PrayerRequest, error)
}

// CreatePrayerRequest represents prayer request submission.
type CreatePrayerRequest struct {
	Title      string                  `json:"title"`
	Content    string                  `json:"content"`
	Visibility models.PrayerVisibility `json:"visibility,omitempty"`
}

// UpdatePrayerRequest represents a partial prayer request update.
type UpdatePrayerRequest struct {
	Title      *string                  `json:"title,omitempty"`
	Content    *string                  `json:"content,omitempty"`
	Visibility *models.PrayerVisibility `json:"visibility,omitempty"`
}
