package services

import (
	"context"

	"shepherd/internal/authz"
	"shepherd/internal/domain/models"
)

// ChurchService handles church (tenant) management.
type ChurchService interface {
	// ListChurches returns every church. Admin only.
	ListChurches(ctx context.Context, actor authz.Actor) ([]models.Church, error)

	// GetChurch retrieves a church the actor belongs to, or any church
	// for admins.
	GetChurch(ctx context.Context, actor authz.Actor, id string) (*models.Church, error)

	// CreateChurch provisions a new tenant. Admin only.
	CreateChurch(ctx context.Context, actor authz.Actor, req *CreateChurchRequest) (*models.Church, error)

	// UpdateChurch applies a partial update to the actor's own church
	// (pastor) or any church (admin). Nil fields are left untouched.
	UpdateChurch(ctx context.Context, actor authz.Actor, id string, req *UpdateChurchRequest) (*models.Church, error)

	// DeleteChurch removes a tenant. Admin only.
	DeleteChurch(ctx context.Context, actor authz.Actor, id string) error
}

// CreateChurchRequest represents tenant provisioning.
type CreateChurchRequest struct {
	Name             string                  `json:"name"`
	Description      string                  `json:"description,omitempty"`
	WebsiteURL       string                  `json:"website_url,omitempty"`
	Address          string                  `json:"address,omitempty"`
	City             string                  `json:"city,omitempty"`
	State            string                  `json:"state,omitempty"`
	ZipCode          string                  `json:"zip_code,omitempty"`
	Country          string                  `json:"country,omitempty"`
	PhoneNumber      string                  `json:"phone_number,omitempty"`
	Email            string                  `json:"email,omitempty"`
	SubscriptionPlan models.SubscriptionPlan `json:"subscription_plan,omitempty"`
}

// UpdateChurchRequest represents a partial church update. Subscription
// fields are admin only; pastors edit profile fields of their own church.
type UpdateChurchRequest struct {
	Name             *string                  `json:"name,omitempty"`
	Description      *string                  `json:"description,omitempty"`
	LogoURL          *string                  `json:"logo_url,omitempty"`
	WebsiteURL       *string                  `json:"website_url,omitempty"`
	Address          *string                  `json:"address,omitempty"`
	City             *string                  `json:"city,omitempty"`
	State            *string                  `json:"state,omitempty"`
	ZipCode          *string                  `json:"zip_code,omitempty"`
	Country          *string                  `json:"country,omitempty"`
	PhoneNumber      *string                  `json:"phone_number,omitempty"`
	Email            *string                  `json:"email,omitempty"`
	SubscriptionPlan *models.SubscriptionPlan `json:"subscription_plan,omitempty"`
	IsActive         *bool                    `json:"is_active,omitempty"`
	IsVerified       *bool                    `json:"is_verified,omitempty"`
}
