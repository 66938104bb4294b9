package authz

import "shepherd/internal/domain/models"

// User management has its own ruleset: targets are identities, not content,
// so ownership means "is my own account" and extra escalation guards apply.

// CheckUserList decides who may enumerate users. Admin sees every tenant;
// pastors see their own church (the repository applies the tenant scope);
// members and guests are denied entirely.
func CheckUserList(actor Actor) error {
	return CheckRole(actor.Role, models.RolePastor)
}

// CheckUserRead allows self always, admin for anyone, and pastors for
// same-church targets.
func CheckUserRead(actor Actor, target *models.User) error {
	if actor.ID == target.ID || actor.Role == models.RoleAdmin {
		return nil
	}
	if err := CheckTenant(actor, target.ChurchID); err != nil {
		return err
	}
	return CheckRole(actor.Role, models.RolePastor)
}

// CheckUserCreate requires pastor or admin. Pastors may only create within
// their own church and may not mint pastor/admin accounts (privilege
// escalation guard); admins are unrestricted.
func CheckUserCreate(actor Actor, churchID string, newRole models.UserRole) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if err := CheckRole(actor.Role, models.RolePastor); err != nil {
		return err
	}
	if err := CheckTenant(actor, churchID); err != nil {
		return err
	}
	if newRole.Privileged() {
		return deny(ReasonInsufficientRole, "pastors may not create %s accounts", newRole)
	}
	return nil
}

// CheckUserUpdate governs profile updates. Self-updates are allowed but may
// never change the role field, not even to a lower privilege and not even
// for admins. Pastors may update same-church member/guest targets and may
// not grant pastor/admin. newRole is nil when the request does not touch
// the role field.
func CheckUserUpdate(actor Actor, target *models.User, newRole *models.UserRole) error {
	if actor.ID == target.ID {
		if newRole != nil && *newRole != target.Role {
			return deny(ReasonSelfRoleEscalation, "you may not change your own role")
		}
		return nil
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if err := CheckTenant(actor, target.ChurchID); err != nil {
		return err
	}
	if err := CheckRole(actor.Role, models.RolePastor); err != nil {
		return err
	}
	if target.Role.Privileged() {
		return deny(ReasonInsufficientRole, "pastors may not modify %s accounts", target.Role)
	}
	if newRole != nil && newRole.Privileged() {
		return deny(ReasonInsufficientRole, "pastors may not grant the %s role", *newRole)
	}
	return nil
}

// CheckUserDelete forbids self-deletion unconditionally. Admins may delete
// anyone else; pastors only same-church member/guest targets.
func CheckUserDelete(actor Actor, target *models.User) error {
	if actor.ID == target.ID {
		return deny(ReasonSelfDeleteForbidden, "you may not delete your own account")
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if err := CheckTenant(actor, target.ChurchID); err != nil {
		return err
	}
	if err := CheckRole(actor.Role, models.RolePastor); err != nil {
		return err
	}
	if target.Role.Privileged() {
		return deny(ReasonInsufficientRole, "pastors may not delete %s accounts", target.Role)
	}
	return nil
}

// CheckChurchRead allows any actor to read their own church; admin any.
func CheckChurchRead(actor Actor, churchID string) error {
	return CheckTenant(actor, churchID)
}

// CheckChurchUpdate allows admins anywhere and pastors for their own church.
func CheckChurchUpdate(actor Actor, churchID string) error {
	if err := CheckTenant(actor, churchID); err != nil {
		return err
	}
	return CheckRole(actor.Role, models.RolePastor)
}
