package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shepherd/internal/authz"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/services"
)

func memberUser(id, churchID string) *models.User {
	return &models.User{
		ID:        id,
		FirstName: "Test",
		LastName:  "User",
		Email:     id + "@example.com",
		Role:      models.RoleMember,
		ChurchID:  churchID,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestListUsersScopedByRole(t *testing.T) {
	users := newFakeUserRepo(
		memberUser("u1", churchA),
		memberUser("u2", churchA),
		memberUser("u3", churchB),
	)
	svc := NewUserService(users, newFakeChurchRepo(paidChurch(churchA), paidChurch(churchB)), testLogger())

	// A pastor lists only their own church.
	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}
	own, err := svc.ListUsers(context.Background(), pastor)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(own) != 2 {
		t.Errorf("pastor sees %d users, want 2", len(own))
	}

	// An admin lists the whole platform.
	admin := authz.Actor{ID: "admin-1", Role: models.RoleAdmin}
	all, err := svc.ListUsers(context.Background(), admin)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin sees %d users, want 3", len(all))
	}

	// A member may not list at all.
	member := authz.Actor{ID: "u1", Role: models.RoleMember, ChurchID: churchA}
	if _, err := svc.ListUsers(context.Background(), member); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("member list error = %v, want forbidden", err)
	}
}

func TestPastorCannotCreatePrivilegedUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newFakeChurchRepo(paidChurch(churchA)), testLogger())
	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}

	_, err := svc.CreateUser(context.Background(), pastor, &services.CreateUserRequest{
		FirstName: "New",
		LastName:  "Pastor",
		Email:     "new.pastor@example.com",
		Password:  "supersecret",
		Role:      models.RolePastor,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestPastorCreatesMemberInOwnChurch(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newFakeChurchRepo(paidChurch(churchA)), testLogger())
	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}

	user, err := svc.CreateUser(context.Background(), pastor, &services.CreateUserRequest{
		FirstName: "New",
		LastName:  "Member",
		Email:     "new.member@example.com",
		Password:  "supersecret",
		Role:      models.RoleMember,
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ChurchID != churchA {
		t.Errorf("ChurchID = %q, want %q", user.ChurchID, churchA)
	}
	if user.PasswordHash == "" || user.PasswordHash == "supersecret" {
		t.Error("password was not hashed")
	}
}

func TestSelfRoleChangeDenied(t *testing.T) {
	users := newFakeUserRepo(memberUser("u1", churchA))
	svc := NewUserService(users, newFakeChurchRepo(paidChurch(churchA)), testLogger())
	self := authz.Actor{ID: "u1", Role: models.RoleMember, ChurchID: churchA}

	role := models.RolePastor
	_, err := svc.UpdateUser(context.Background(), self, "u1", &services.UpdateUserRequest{Role: &role})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestAdminSelfRoleChangeDenied(t *testing.T) {
	adminRec := memberUser("a1", churchA)
	adminRec.Role = models.RoleAdmin
	users := newFakeUserRepo(adminRec)
	svc := NewUserService(users, newFakeChurchRepo(paidChurch(churchA)), testLogger())
	admin := authz.Actor{ID: "a1", Role: models.RoleAdmin, ChurchID: churchA}

	// Even a downgrade of the actor's own role is rejected.
	role := models.RoleMember
	_, err := svc.UpdateUser(context.Background(), admin, "a1", &services.UpdateUserRequest{Role: &role})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestSelfProfileUpdateAllowed(t *testing.T) {
	users := newFakeUserRepo(memberUser("u1", churchA))
	svc := NewUserService(users, newFakeChurchRepo(paidChurch(churchA)), testLogger())
	self := authz.Actor{ID: "u1", Role: models.RoleMember, ChurchID: churchA}

	name := "Renamed"
	user, err := svc.UpdateUser(context.Background(), self, "u1", &services.UpdateUserRequest{FirstName: &name})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if user.FirstName != name {
		t.Errorf("FirstName = %q, want %q", user.FirstName, name)
	}
}

func TestSelfDeleteDeniedEvenForAdmin(t *testing.T) {
	admin := memberUser("a1", churchA)
	admin.Role = models.RoleAdmin
	users := newFakeUserRepo(admin)
	svc := NewUserService(users, newFakeChurchRepo(paidChurch(churchA)), testLogger())
	actor := authz.Actor{ID: "a1", Role: models.RoleAdmin, ChurchID: churchA}

	err := svc.DeleteUser(context.Background(), actor, "a1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestPastorDeletesMemberOfOwnChurch(t *testing.T) {
	users := newFakeUserRepo(memberUser("u1", churchA), memberUser("u2", churchB))
	svc := NewUserService(users, newFakeChurchRepo(paidChurch(churchA), paidChurch(churchB)), testLogger())
	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}

	if err := svc.DeleteUser(context.Background(), pastor, "u1"); err != nil {
		t.Errorf("delete own-church member error = %v", err)
	}
	if err := svc.DeleteUser(context.Background(), pastor, "u2"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("delete cross-church member error = %v, want forbidden", err)
	}
}

func TestGetUserSelfAndPrivileged(t *testing.T) {
	users := newFakeUserRepo(memberUser("u1", churchA), memberUser("u2", churchA))
	svc := NewUserService(users, newFakeChurchRepo(paidChurch(churchA)), testLogger())

	self := authz.Actor{ID: "u1", Role: models.RoleMember, ChurchID: churchA}
	if _, err := svc.GetUser(context.Background(), self, "u1"); err != nil {
		t.Errorf("self read error = %v", err)
	}
	if _, err := svc.GetUser(context.Background(), self, "u2"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("peer read error = %v, want forbidden", err)
	}

	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}
	if _, err := svc.GetUser(context.Background(), pastor, "u2"); err != nil {
		t.Errorf("pastor read error = %v", err)
	}
}
