// Package authz is the authorization and tenant-visibility engine.
//
// Every decision function is pure: it looks only at the actor and resource
// snapshot it is given, holds no state, and returns either nil (allow) or a
// *Denial carrying a typed reason. Services translate denials into domain
// errors with DomainError; the pastoral-visibility denial is deliberately
// indistinguishable from "resource does not exist" so that unauthorized
// actors cannot enumerate hidden resources.
package authz

import (
	"errors"
	"fmt"

	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
)

// Actor is the authenticated identity attached to a request. It is
// constructed by the auth middleware and immutable for the request lifetime.
type Actor struct {
	ID       string
	Role     models.UserRole
	ChurchID string
}

// Reason is the typed cause of a denial.
type Reason string

const (
	ReasonCrossTenant          Reason = "cross_tenant"
	ReasonNotOwnerOrPrivileged Reason = "not_owner_or_privileged"
	ReasonInsufficientRole     Reason = "insufficient_role"
	ReasonNotVisible           Reason = "not_visible"
	ReasonSubscriptionRequired Reason = "subscription_required"
	ReasonSelfRoleEscalation   Reason = "self_role_escalation"
	ReasonSelfDeleteForbidden  Reason = "self_delete_forbidden"
)

// Denial is a typed authorization failure.
type Denial struct {
	Reason  Reason
	Message string
}

// Error implements the error interface.
func (d *Denial) Error() string {
	if d.Message != "" {
		return d.Message
	}
	return string(d.Reason)
}

// NotFoundShaped reports whether the denial must surface as "not found"
// rather than "forbidden" to avoid confirming the resource exists.
func (d *Denial) NotFoundShaped() bool {
	return d.Reason == ReasonNotVisible
}

func deny(reason Reason, format string, args ...interface{}) *Denial {
	return &Denial{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// DeniedReason extracts the denial reason from err, or "" if err is not a
// denial. Used by services to record denial metrics.
func DeniedReason(err error) Reason {
	var d *Denial
	if errors.As(err, &d) {
		return d.Reason
	}
	return ""
}

// DomainError converts an authz denial into the externally observable domain
// error. Visibility denials become not-found; everything else is forbidden.
// Non-denial errors pass through unchanged.
func DomainError(err error) error {
	var d *Denial
	if !errors.As(err, &d) {
		return err
	}
	if d.NotFoundShaped() {
		return &domain.NotFoundError{Message: "resource not found"}
	}
	return &domain.ForbiddenError{Message: d.Message}
}

// CheckTenant enforces tenant isolation: non-admin actors may only touch
// resources belonging to their own church. It must run before any ownership
// or visibility check so a cross-tenant probe learns nothing else.
func CheckTenant(actor Actor, resourceChurchID string) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if actor.ChurchID != resourceChurchID {
		return deny(ReasonCrossTenant, "you can only access resources from your own church")
	}
	return nil
}

// CheckOwnership allows only the resource owner. It is never the sole gate;
// callers combine it with a role override.
func CheckOwnership(actor Actor, resourceOwnerID string) error {
	if actor.ID != resourceOwnerID {
		return deny(ReasonNotOwnerOrPrivileged, "you do not own this resource")
	}
	return nil
}

// CheckRole allows actors whose role is in required. Admin always passes:
// the universal admin override is a deliberate, consistent design decision
// across every privileged check in the system. An empty required set allows
// every role.
func CheckRole(role models.UserRole, required ...models.UserRole) error {
	if len(required) == 0 || role == models.RoleAdmin {
		return nil
	}
	for _, r := range required {
		if role == r {
			return nil
		}
	}
	return deny(ReasonInsufficientRole, "insufficient permissions to access resource")
}

// CheckSubscription gates AI-assisted operations on the tenant's plan.
// Admins bypass the gate entirely (callers skip the tenant lookup for them);
// everyone else needs any paid plan. Ownership is irrelevant here.
func CheckSubscription(actor Actor, plan models.SubscriptionPlan) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if plan == models.PlanFree {
		return deny(ReasonSubscriptionRequired, "AI features require a paid subscription plan")
	}
	return nil
}
