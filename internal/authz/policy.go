package authz

import "shepherd/internal/domain/models"

// ResourceKind identifies a policy-governed resource type.
type ResourceKind string

const (
	KindSermon         ResourceKind = "sermon"
	KindBibleStudy     ResourceKind = "bible_study"
	KindPrayerRequest  ResourceKind = "prayer_request"
	KindFlaggedContent ResourceKind = "flagged_content"
)

// Operation identifies what the actor is trying to do. Status transitions
// into a published state are a distinct operation (OpPublish) because
// publishing is gatekept even for owners: self-service drafting, gatekept
// publishing.
type Operation string

const (
	OpList         Operation = "list"
	OpRead         Operation = "read"
	OpCreate       Operation = "create"
	OpUpdate       Operation = "update"
	OpUpdateStatus Operation = "update_status"
	OpPublish      Operation = "publish"
	OpDelete       Operation = "delete"
	OpGenerateAI   Operation = "generate_ai"
)

// Target carries the per-instance fields a policy decision needs. For
// create and list there is no instance; OwnerID is empty and ChurchID is
// the tenant the operation is scoped to.
type Target struct {
	ChurchID string
	OwnerID  string
}

// rule is one cell of the policy table.
type rule struct {
	// requiredRoles is the role set allowed outright (admin is always
	// implicitly included). Empty means any authenticated role.
	requiredRoles []models.UserRole
	// ownerOverride additionally allows the resource owner even without a
	// required role.
	ownerOverride bool
}

var pastorOnly = []models.UserRole{models.RolePastor}

// policyTable is the single source of truth for who may do what to which
// resource type. Visibility filtering for prayer requests and the
// subscription gate for AI operations compose with these rules; they do not
// replace them.
var policyTable = map[ResourceKind]map[Operation]rule{
	KindSermon: {
		OpList:         {},
		OpRead:         {},
		OpCreate:       {requiredRoles: pastorOnly}, // members cannot author sermons
		OpUpdate:       {requiredRoles: pastorOnly, ownerOverride: true},
		OpUpdateStatus: {requiredRoles: pastorOnly, ownerOverride: true},
		OpPublish:      {requiredRoles: pastorOnly}, // no owner override
		OpDelete:       {requiredRoles: pastorOnly, ownerOverride: true},
		OpGenerateAI:   {requiredRoles: pastorOnly},
	},
	KindBibleStudy: {
		OpList:         {},
		OpRead:         {},
		OpCreate:       {},
		OpUpdate:       {requiredRoles: pastorOnly, ownerOverride: true},
		OpUpdateStatus: {requiredRoles: pastorOnly, ownerOverride: true},
		OpPublish:      {requiredRoles: pastorOnly},
		OpDelete:       {requiredRoles: pastorOnly, ownerOverride: true},
		OpGenerateAI:   {requiredRoles: pastorOnly, ownerOverride: true},
	},
	KindPrayerRequest: {
		OpList:         {},
		OpRead:         {},
		OpCreate:       {},
		OpUpdate:       {requiredRoles: pastorOnly, ownerOverride: true},
		OpUpdateStatus: {requiredRoles: pastorOnly, ownerOverride: true},
		OpDelete:       {requiredRoles: pastorOnly, ownerOverride: true},
		OpGenerateAI:   {requiredRoles: pastorOnly, ownerOverride: true},
	},
	KindFlaggedContent: {
		OpList:   {requiredRoles: pastorOnly},
		OpRead:   {requiredRoles: pastorOnly},
		OpCreate: {}, // anyone may report content
		OpUpdate: {requiredRoles: pastorOnly}, // review/resolve
	},
}

// Authorize is the composed policy decision for sermons, Bible studies,
// prayer requests and flagged content:
//
//  1. Tenant isolation (short-circuits; admin bypasses).
//  2. Role rule from the policy table (admin always passes).
//  3. Owner override where the table grants it.
//
// Prayer-request reads additionally pass through CheckReadPrayerRequest and
// AI operations through CheckSubscription; those compose with, not replace,
// this decision.
func Authorize(actor Actor, kind ResourceKind, op Operation, t Target) error {
	if err := CheckTenant(actor, t.ChurchID); err != nil {
		return err
	}

	ops, ok := policyTable[kind]
	if !ok {
		return deny(ReasonInsufficientRole, "unknown resource type %q", kind)
	}
	r, ok := ops[op]
	if !ok {
		return deny(ReasonInsufficientRole, "operation %q not permitted on %s", op, kind)
	}

	if err := CheckRole(actor.Role, r.requiredRoles...); err == nil {
		return nil
	}
	if r.ownerOverride && t.OwnerID != "" {
		if err := CheckOwnership(actor, t.OwnerID); err == nil {
			return nil
		}
		return deny(ReasonNotOwnerOrPrivileged, "only the owner or a pastor may %s this %s", op, kind)
	}
	return deny(ReasonInsufficientRole, "insufficient permissions to %s this %s", op, kind)
}

// StatusOperation maps a requested status transition to the policy
// operation that governs it: transitions into a published state are
// OpPublish, everything else is OpUpdateStatus.
func StatusOperation(publishing bool) Operation {
	if publishing {
		return OpPublish
	}
	return OpUpdateStatus
}
