package authz

import (
	"testing"

	"shepherd/internal/domain/models"
)

func user(id, churchID string, role models.UserRole) *models.User {
	return &models.User{ID: id, ChurchID: churchID, Role: role}
}

func rolePtr(r models.UserRole) *models.UserRole { return &r }

func TestCheckUserList(t *testing.T) {
	if err := CheckUserList(Actor{ID: "1", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if err := CheckUserList(Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"}); err != nil {
		t.Fatalf("pastor list: %v", err)
	}
	if err := CheckUserList(Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"}); DeniedReason(err) != ReasonInsufficientRole {
		t.Fatalf("member list should be denied, got %v", err)
	}
}

func TestCheckUserRead(t *testing.T) {
	tests := []struct {
		name       string
		actor      Actor
		target     *models.User
		wantReason Reason
	}{
		{
			name:   "self read always allowed",
			actor:  Actor{ID: "3", Role: models.RoleGuest, ChurchID: "1"},
			target: user("3", "1", models.RoleGuest),
		},
		{
			name:   "admin reads anyone",
			actor:  Actor{ID: "1", Role: models.RoleAdmin, ChurchID: "9"},
			target: user("4", "2", models.RoleMember),
		},
		{
			name:   "pastor reads same-church member",
			actor:  Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			target: user("3", "1", models.RoleMember),
		},
		{
			name:       "pastor cannot read cross-church target",
			actor:      Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			target:     user("4", "2", models.RoleMember),
			wantReason: ReasonCrossTenant,
		},
		{
			name:       "member cannot read someone else",
			actor:      Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"},
			target:     user("5", "1", models.RoleMember),
			wantReason: ReasonInsufficientRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUserRead(tt.actor, tt.target)
			if got := DeniedReason(err); got != tt.wantReason {
				t.Fatalf("reason = %q, want %q (err=%v)", got, tt.wantReason, err)
			}
		})
	}
}

func TestCheckUserCreate(t *testing.T) {
	pastor := Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"}

	if err := CheckUserCreate(pastor, "1", models.RoleMember); err != nil {
		t.Fatalf("pastor creates member in own church: %v", err)
	}
	if err := CheckUserCreate(pastor, "2", models.RoleMember); DeniedReason(err) != ReasonCrossTenant {
		t.Fatalf("pastor must not create outside own church, got %v", err)
	}
	if err := CheckUserCreate(pastor, "1", models.RolePastor); DeniedReason(err) != ReasonInsufficientRole {
		t.Fatalf("pastor must not mint pastor accounts, got %v", err)
	}
	if err := CheckUserCreate(Actor{ID: "1", Role: models.RoleAdmin}, "2", models.RoleAdmin); err != nil {
		t.Fatalf("admin create is unrestricted: %v", err)
	}
	if err := CheckUserCreate(Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"}, "1", models.RoleMember); DeniedReason(err) != ReasonInsufficientRole {
		t.Fatalf("member create should be denied, got %v", err)
	}
}

func TestCheckUserUpdate(t *testing.T) {
	tests := []struct {
		name       string
		actor      Actor
		target     *models.User
		newRole    *models.UserRole
		wantReason Reason
	}{
		{
			name:   "self profile update without role change",
			actor:  Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"},
			target: user("3", "1", models.RoleMember),
		},
		{
			name:       "self role escalation denied",
			actor:      Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"},
			target:     user("3", "1", models.RoleMember),
			newRole:    rolePtr(models.RolePastor),
			wantReason: ReasonSelfRoleEscalation,
		},
		{
			// Even a "lower" role is rejected: the role field is immutable to self.
			name:       "self role downgrade denied",
			actor:      Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			target:     user("2", "1", models.RolePastor),
			newRole:    rolePtr(models.RoleMember),
			wantReason: ReasonSelfRoleEscalation,
		},
		{
			name:    "self update with unchanged role field",
			actor:   Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"},
			target:  user("3", "1", models.RoleMember),
			newRole: rolePtr(models.RoleMember),
		},
		{
			name:   "pastor updates same-church member",
			actor:  Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			target: user("3", "1", models.RoleMember),
		},
		{
			name:       "pastor cannot touch another pastor",
			actor:      Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			target:     user("6", "1", models.RolePastor),
			wantReason: ReasonInsufficientRole,
		},
		{
			name:       "pastor cannot promote member to pastor",
			actor:      Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			target:     user("3", "1", models.RoleMember),
			newRole:    rolePtr(models.RolePastor),
			wantReason: ReasonInsufficientRole,
		},
		{
			name:    "admin promotes anyone",
			actor:   Actor{ID: "1", Role: models.RoleAdmin, ChurchID: "9"},
			target:  user("3", "1", models.RoleMember),
			newRole: rolePtr(models.RolePastor),
		},
		{
			// The admin bypass does not reach the actor's own role field.
			name:       "admin cannot change own role",
			actor:      Actor{ID: "1", Role: models.RoleAdmin, ChurchID: "1"},
			target:     user("1", "1", models.RoleAdmin),
			newRole:    rolePtr(models.RoleMember),
			wantReason: ReasonSelfRoleEscalation,
		},
		{
			name:    "admin self update with unchanged role field",
			actor:   Actor{ID: "1", Role: models.RoleAdmin, ChurchID: "1"},
			target:  user("1", "1", models.RoleAdmin),
			newRole: rolePtr(models.RoleAdmin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUserUpdate(tt.actor, tt.target, tt.newRole)
			if got := DeniedReason(err); got != tt.wantReason {
				t.Fatalf("reason = %q, want %q (err=%v)", got, tt.wantReason, err)
			}
		})
	}
}

func TestCheckUserDelete(t *testing.T) {
	tests := []struct {
		name       string
		actor      Actor
		target     *models.User
		wantReason Reason
	}{
		{
			name:       "self delete forbidden even for admin",
			actor:      Actor{ID: "1", Role: models.RoleAdmin, ChurchID: "1"},
			target:     user("1", "1", models.RoleAdmin),
			wantReason: ReasonSelfDeleteForbidden,
		},
		{
			name:   "admin deletes anyone else",
			actor:  Actor{ID: "1", Role: models.RoleAdmin, ChurchID: "9"},
			target: user("4", "2", models.RolePastor),
		},
		{
			name:   "pastor deletes same-church member",
			actor:  Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			target: user("3", "1", models.RoleMember),
		},
		{
			name:       "pastor cannot delete same-church pastor",
			actor:      Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			target:     user("6", "1", models.RolePastor),
			wantReason: ReasonInsufficientRole,
		},
		{
			name:       "pastor cannot delete cross-church member",
			actor:      Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			target:     user("4", "2", models.RoleMember),
			wantReason: ReasonCrossTenant,
		},
		{
			name:       "member cannot delete anyone",
			actor:      Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"},
			target:     user("5", "1", models.RoleGuest),
			wantReason: ReasonInsufficientRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUserDelete(tt.actor, tt.target)
			if got := DeniedReason(err); got != tt.wantReason {
				t.Fatalf("reason = %q, want %q (err=%v)", got, tt.wantReason, err)
			}
		})
	}
}
