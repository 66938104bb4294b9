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

func prayerReq(id, userID, churchID string, vis models.PrayerVisibility) *models.PrayerRequest {
	return &models.PrayerRequest{
		ID:         id,
		Title:      "Please pray",
		Content:    "For my family",
		Status:     models.PrayerOpen,
		Visibility: vis,
		UserID:     userID,
		ChurchID:   churchID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func newPrayerService(prayers *fakePrayerRepo, churches *fakeChurchRepo) services.PrayerRequestService {
	return NewPrayerRequestService(prayers, churches, &fakeResponder{}, passScanner{}, testLogger())
}

func TestGetPastoralRequestHiddenFromOwner(t *testing.T) {
	prayers := newFakePrayerRepo(prayerReq("p1", "member-1", churchA, models.VisibilityPastoral))
	svc := newPrayerService(prayers, newFakeChurchRepo(paidChurch(churchA)))
	owner := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}

	// A pastoral request is invisible even to its own author, and the
	// denial is shaped like a missing resource.
	_, err := svc.GetPrayerRequest(context.Background(), owner, "p1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestGetPastoralRequestVisibleToPastor(t *testing.T) {
	prayers := newFakePrayerRepo(prayerReq("p1", "member-1", churchA, models.VisibilityPastoral))
	svc := newPrayerService(prayers, newFakeChurchRepo(paidChurch(churchA)))
	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}

	request, err := svc.GetPrayerRequest(context.Background(), pastor, "p1")
	if err != nil {
		t.Fatalf("GetPrayerRequest() error = %v", err)
	}
	if request.ID != "p1" {
		t.Errorf("ID = %q, want p1", request.ID)
	}
}

func TestGetPrivateRequestVisibleOnlyToOwnerAndPastors(t *testing.T) {
	prayers := newFakePrayerRepo(prayerReq("p1", "member-1", churchA, models.VisibilityPrivate))
	svc := newPrayerService(prayers, newFakeChurchRepo(paidChurch(churchA)))

	owner := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}
	if _, err := svc.GetPrayerRequest(context.Background(), owner, "p1"); err != nil {
		t.Errorf("owner read error = %v, want nil", err)
	}

	peer := authz.Actor{ID: "member-2", Role: models.RoleMember, ChurchID: churchA}
	if _, err := svc.GetPrayerRequest(context.Background(), peer, "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("peer read error = %v, want not found", err)
	}
}

func TestListFiltersPerActor(t *testing.T) {
	prayers := newFakePrayerRepo(
		prayerReq("p1", "member-1", churchA, models.VisibilityPublic),
		prayerReq("p2", "member-1", churchA, models.VisibilityPrivate),
		prayerReq("p3", "member-1", churchA, models.VisibilityPastoral),
		prayerReq("p4", "member-2", churchA, models.VisibilityPrivate),
	)
	svc := newPrayerService(prayers, newFakeChurchRepo(paidChurch(churchA)))

	// The author sees public plus their own private, never pastoral.
	owner := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}
	visible, err := svc.ListPrayerRequests(context.Background(), owner, "")
	if err != nil {
		t.Fatalf("ListPrayerRequests() error = %v", err)
	}
	if len(visible) != 2 {
		t.Errorf("owner sees %d requests, want 2", len(visible))
	}
	for _, r := range visible {
		if r.Visibility == models.VisibilityPastoral {
			t.Error("pastoral request leaked to its author")
		}
		if r.ID == "p4" {
			t.Error("another member's private request leaked")
		}
	}

	// A pastor sees everything in the church.
	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}
	all, err := svc.ListPrayerRequests(context.Background(), pastor, "")
	if err != nil {
		t.Fatalf("ListPrayerRequests() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("pastor sees %d requests, want 4", len(all))
	}
}

func TestCreateDefaultsToPublicVisibility(t *testing.T) {
	prayers := newFakePrayerRepo()
	svc := newPrayerService(prayers, newFakeChurchRepo(paidChurch(churchA)))
	member := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}

	created, err := svc.CreatePrayerRequest(context.Background(), member, &services.CreatePrayerRequest{
		Title:   "Healing",
		Content: "Please pray for healing",
	})
	if err != nil {
		t.Fatalf("CreatePrayerRequest() error = %v", err)
	}
	if created.Visibility != models.VisibilityPublic {
		t.Errorf("Visibility = %q, want public", created.Visibility)
	}
	if created.UserID != "member-1" || created.ChurchID != churchA {
		t.Errorf("ownership = %q/%q, want member-1/%s", created.UserID, created.ChurchID, churchA)
	}
}

func TestCreateBlockedByModeration(t *testing.T) {
	svc := NewPrayerRequestService(newFakePrayerRepo(), newFakeChurchRepo(paidChurch(churchA)), &fakeResponder{}, blockScanner{}, testLogger())
	member := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}

	_, err := svc.CreatePrayerRequest(context.Background(), member, &services.CreatePrayerRequest{
		Title:   "Bad",
		Content: "Bad content",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want validation", err)
	}
}

func TestUpdateByNonOwnerMemberDenied(t *testing.T) {
	prayers := newFakePrayerRepo(prayerReq("p1", "member-1", churchA, models.VisibilityPublic))
	svc := newPrayerService(prayers, newFakeChurchRepo(paidChurch(churchA)))
	peer := authz.Actor{ID: "member-2", Role: models.RoleMember, ChurchID: churchA}

	title := "hijack"
	_, err := svc.UpdatePrayerRequest(context.Background(), peer, "p1", &services.UpdatePrayerRequest{Title: &title})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestPrayIncrementsCount(t *testing.T) {
	prayers := newFakePrayerRepo(prayerReq("p1", "member-1", churchA, models.VisibilityPublic))
	svc := newPrayerService(prayers, newFakeChurchRepo(paidChurch(churchA)))
	peer := authz.Actor{ID: "member-2", Role: models.RoleMember, ChurchID: churchA}

	request, err := svc.Pray(context.Background(), peer, "p1")
	if err != nil {
		t.Fatalf("Pray() error = %v", err)
	}
	if request.PrayerCount != 1 {
		t.Errorf("PrayerCount = %d, want 1", request.PrayerCount)
	}
}

func TestGenerateResponseStoresResponseAndVerses(t *testing.T) {
	prayers := newFakePrayerRepo(prayerReq("p1", "member-1", churchA, models.VisibilityPublic))
	svc := newPrayerService(prayers, newFakeChurchRepo(paidChurch(churchA)))
	owner := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}

	request, err := svc.GenerateResponse(context.Background(), owner, "p1")
	if err != nil {
		t.Fatalf("GenerateResponse() error = %v", err)
	}
	if request.AIResponse == "" {
		t.Error("AIResponse is empty")
	}
	if len(request.RelatedBibleVerses) == 0 {
		t.Error("RelatedBibleVerses is empty")
	}
}

func TestGenerateResponseFreePlanDenied(t *testing.T) {
	prayers := newFakePrayerRepo(prayerReq("p1", "member-1", churchA, models.VisibilityPublic))
	svc := newPrayerService(prayers, newFakeChurchRepo(freeChurch(churchA)))
	owner := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}

	_, err := svc.GenerateResponse(context.Background(), owner, "p1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}
