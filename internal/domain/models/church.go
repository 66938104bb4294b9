package models

import "time"

// SubscriptionPlan is the billing tier of a church. AI-assisted features
// require any paid plan.
type SubscriptionPlan string

const (
	PlanFree     SubscriptionPlan = "free"
	PlanBasic    SubscriptionPlan = "basic"
	PlanStandard SubscriptionPlan = "standard"
	PlanPremium  SubscriptionPlan = "premium"
)

// Valid reports whether p is a known plan.
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanStandard, PlanPremium:
		return true
	}
	return false
}

// Church is a tenant. Every other resource carries exactly one church id,
// fixed at creation.
type Church struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description,omitempty"`
	LogoURL              string           `json:"logo_url,omitempty"`
	WebsiteURL           string           `json:"website_url,omitempty"`
	Address              string           `json:"address,omitempty"`
	City                 string           `json:"city,omitempty"`
	State                string           `json:"state,omitempty"`
	ZipCode              string           `json:"zip_code,omitempty"`
	Country              string           `json:"country,omitempty"`
	PhoneNumber          string           `json:"phone_number,omitempty"`
	Email                string           `json:"email,omitempty"`
	SubscriptionPlan     SubscriptionPlan `json:"subscription_plan"`
	StripeCustomerID     string           `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string           `json:"stripe_subscription_id,omitempty"`
	IsActive             bool             `json:"is_active"`
	IsVerified           bool             `json:"is_verified"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}
