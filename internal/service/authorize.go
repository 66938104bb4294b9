package service

import (
	"context"

	"shepherd/internal/authz"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
	"shepherd/internal/obs"
)

// denied records the denial metric and converts an authorization failure
// into its public domain error.
func denied(err error) error {
	if reason := authz.DeniedReason(err); reason != "" {
		obs.AuthzDenied(string(reason))
	}
	return authz.DomainError(err)
}

// requirePaidPlan enforces the subscription gate for AI-assisted
// operations. Admins pass without a church lookup; everyone else is
// checked against their church's actual plan.
func requirePaidPlan(ctx context.Context, actor authz.Actor, churches repositories.ChurchRepository) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}

	church, err := churches.GetByID(ctx, actor.ChurchID)
	if err != nil {
		return err
	}
	if err := authz.CheckSubscription(actor, church.SubscriptionPlan); err != nil {
		return denied(err)
	}
	return nil
}
