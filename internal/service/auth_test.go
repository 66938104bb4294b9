package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shepherd/internal/auth"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/services"
)

func newTestAuthService(users *fakeUserRepo, churches *fakeChurchRepo) services.AuthService {
	tokens, err := auth.NewTokenManager("test-secret-test-secret", time.Hour)
	if err != nil {
		panic(err)
	}
	return NewAuthService(users, churches, tokens, testLogger())
}

func TestRegisterCreatesMember(t *testing.T) {
	users := newFakeUserRepo()
	church := paidChurch(churchA)
	church.ID = "3d7e4f1a-9b2c-4d5e-8f6a-1b2c3d4e5f6a"
	svc := newTestAuthService(users, newFakeChurchRepo(church))

	user, token, err := svc.Register(context.Background(), &services.RegisterRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "supersecret",
		ChurchID:  church.ID,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.Role != models.RoleMember {
		t.Errorf("Role = %q, want member", user.Role)
	}
	if token == "" {
		t.Error("token is empty")
	}
	if user.PasswordHash == "supersecret" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterUnknownChurch(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeChurchRepo())

	_, _, err := svc.Register(context.Background(), &services.RegisterRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "supersecret",
		ChurchID:  "3d7e4f1a-9b2c-4d5e-8f6a-1b2c3d4e5f6a",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("supersecret")
	if err != nil {
		t.Fatal(err)
	}

	active := memberUser("u1", churchA)
	active.Email = "jane@example.com"
	active.PasswordHash = hash

	inactive := memberUser("u2", churchA)
	inactive.Email = "gone@example.com"
	inactive.PasswordHash = hash
	inactive.IsActive = false

	svc := newTestAuthService(newFakeUserRepo(active, inactive), newFakeChurchRepo(paidChurch(churchA)))

	// Valid credentials.
	user, token, err := svc.Login(context.Background(), &services.LoginRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != "u1" || token == "" {
		t.Errorf("user = %q, token empty = %v", user.ID, token == "")
	}

	// Wrong password and unknown email produce the same error shape.
	_, _, badPass := svc.Login(context.Background(), &services.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	_, _, badEmail := svc.Login(context.Background(), &services.LoginRequest{
		Email:    "nobody@example.com",
		Password: "supersecret",
	})
	if !errors.Is(badPass, domain.ErrUnauthorized) || !errors.Is(badEmail, domain.ErrUnauthorized) {
		t.Errorf("badPass = %v, badEmail = %v, want unauthorized for both", badPass, badEmail)
	}

	// Deactivated accounts cannot log in.
	_, _, err = svc.Login(context.Background(), &services.LoginRequest{
		Email:    "gone@example.com",
		Password: "supersecret",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("inactive login error = %v, want unauthorized", err)
	}
}
