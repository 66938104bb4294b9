package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"shepherd/internal/authz"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
	"shepherd/internal/domain/services"
	"shepherd/internal/moderation"
)

func newModerationService(flags *fakeFlagRepo, sermons *fakeSermonRepo, prayers *fakePrayerRepo) services.ModerationService {
	return NewModerationService(flags, sermons, prayers, moderation.NewScanner(testLogger()), testLogger())
}

func TestScanSermonsRecordsFlags(t *testing.T) {
	bad := draftSermon("s1", "pastor-1", churchA)
	bad.Content = "racist and violent attack"
	clean := draftSermon("s2", "pastor-1", churchA)

	flags := newFakeFlagRepo()
	sermons := newFakeSermonRepo(bad, clean)
	svc := newModerationService(flags, sermons, newFakePrayerRepo())

	if err := svc.ScanSermons(context.Background()); err != nil {
		t.Fatalf("ScanSermons() error = %v", err)
	}

	if len(flags.flags) != 1 {
		t.Fatalf("recorded %d flags, want 1", len(flags.flags))
	}
	for _, f := range flags.flags {
		if f.ContentID != "s1" {
			t.Errorf("ContentID = %q, want s1", f.ContentID)
		}
		if f.ContentType != "sermon" {
			t.Errorf("ContentType = %q, want sermon", f.ContentType)
		}
		if f.Severity != models.SeverityHigh {
			t.Errorf("Severity = %v, want HIGH", f.Severity)
		}
		if f.ChurchID != churchA {
			t.Errorf("ChurchID = %q, want %q", f.ChurchID, churchA)
		}
	}

	// Both sermons now carry a scan timestamp.
	for _, id := range []string{"s1", "s2"} {
		s, _ := sermons.GetByID(context.Background(), id)
		if s.LastScannedAt == nil {
			t.Errorf("sermon %s has no scan timestamp", id)
		}
	}
}

func TestScanSkipsAlreadyScanned(t *testing.T) {
	scanned := draftSermon("s1", "pastor-1", churchA)
	scanned.Content = "racist content"
	now := time.Now()
	scanned.LastScannedAt = &now

	flags := newFakeFlagRepo()
	svc := newModerationService(flags, newFakeSermonRepo(scanned), newFakePrayerRepo())

	if err := svc.ScanSermons(context.Background()); err != nil {
		t.Fatalf("ScanSermons() error = %v", err)
	}
	if len(flags.flags) != 0 {
		t.Errorf("recorded %d flags for already-scanned content, want 0", len(flags.flags))
	}
}

func TestScanPrayerRequestsRecordsFlags(t *testing.T) {
	bad := prayerReq("p1", "member-1", churchA, models.VisibilityPublic)
	bad.Content = "violent explicit threats with a weapon"

	flags := newFakeFlagRepo()
	prayers := newFakePrayerRepo(bad)
	svc := newModerationService(flags, newFakeSermonRepo(), prayers)

	if err := svc.ScanPrayerRequests(context.Background()); err != nil {
		t.Fatalf("ScanPrayerRequests() error = %v", err)
	}
	if len(flags.flags) != 1 {
		t.Fatalf("recorded %d flags, want 1", len(flags.flags))
	}
}

func TestModerationQueuePastorOnly(t *testing.T) {
	flags := newFakeFlagRepo()
	svc := newModerationService(flags, newFakeSermonRepo(), newFakePrayerRepo())

	member := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}
	if _, err := svc.ListFlags(context.Background(), member, repositories.FlaggedContentFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("member list error = %v, want forbidden", err)
	}
	if _, err := svc.Stats(context.Background(), member); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("member stats error = %v, want forbidden", err)
	}

	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}
	if _, err := svc.ListFlags(context.Background(), pastor, repositories.FlaggedContentFilter{}); err != nil {
		t.Errorf("pastor list error = %v", err)
	}
}

func TestReviewFlag(t *testing.T) {
	flags := newFakeFlagRepo()
	flags.flags["f1"] = &models.FlaggedContent{
		ID:       "f1",
		ChurchID: churchA,
		Severity: models.SeverityMedium,
	}
	svc := newModerationService(flags, newFakeSermonRepo(), newFakePrayerRepo())
	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}

	reviewed, err := svc.ReviewFlag(context.Background(), pastor, "f1", &services.ReviewFlagRequest{
		Resolved: true,
		Notes:    "false positive",
	})
	if err != nil {
		t.Fatalf("ReviewFlag() error = %v", err)
	}
	if !reviewed.Resolved {
		t.Error("Resolved = false, want true")
	}
	if reviewed.ReviewedBy != "pastor-1" {
		t.Errorf("ReviewedBy = %q, want pastor-1", reviewed.ReviewedBy)
	}
	if reviewed.ReviewedAt == nil {
		t.Error("ReviewedAt is nil")
	}
}

func TestReviewFlagCrossTenantDenied(t *testing.T) {
	flags := newFakeFlagRepo()
	flags.flags["f1"] = &models.FlaggedContent{ID: "f1", ChurchID: churchB}
	svc := newModerationService(flags, newFakeSermonRepo(), newFakePrayerRepo())
	pastor := authz.Actor{ID: "pastor-1", Role: models.RolePastor, ChurchID: churchA}

	_, err := svc.ReviewFlag(context.Background(), pastor, "f1", &services.ReviewFlagRequest{Resolved: true})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestCheckContent(t *testing.T) {
	svc := newModerationService(newFakeFlagRepo(), newFakeSermonRepo(), newFakePrayerRepo())

	clean, err := svc.CheckContent(context.Background(), "A reflection on Psalm 23 and quiet waters.")
	if err != nil {
		t.Fatalf("CheckContent() error = %v", err)
	}
	if !clean.Allowed {
		t.Error("clean content not allowed")
	}

	blocked, err := svc.CheckContent(context.Background(), "racist and violent attack")
	if err != nil {
		t.Fatalf("CheckContent() error = %v", err)
	}
	if blocked.Allowed {
		t.Error("blocked content allowed")
	}
	if blocked.Result == nil || !blocked.Result.IsFlagged {
		t.Error("blocked content not flagged in result")
	}

	if _, err := svc.CheckContent(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty content error = %v, want validation", err)
	}
}

func TestFlagContentRecordsReport(t *testing.T) {
	flags := newFakeFlagRepo()
	svc := newModerationService(flags, newFakeSermonRepo(), newFakePrayerRepo())
	member := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}

	flag, err := svc.FlagContent(context.Background(), member, &services.FlagContentRequest{
		ContentType: "sermon",
		ContentID:   "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa",
		Content:     "this sermon contains hate speech and slurs",
	})
	if err != nil {
		t.Fatalf("FlagContent() error = %v", err)
	}
	if flag.ChurchID != churchA {
		t.Errorf("ChurchID = %q, want %q", flag.ChurchID, churchA)
	}
	if flag.ContentType != "sermon" {
		t.Errorf("ContentType = %q, want sermon", flag.ContentType)
	}
	if len(flags.flags) != 1 {
		t.Errorf("stored %d flags, want 1", len(flags.flags))
	}
}

func TestFlagContentRejectsBadRequest(t *testing.T) {
	svc := newModerationService(newFakeFlagRepo(), newFakeSermonRepo(), newFakePrayerRepo())
	member := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}

	_, err := svc.FlagContent(context.Background(), member, &services.FlagContentRequest{
		ContentType: "comment",
		ContentID:   "not-a-uuid",
		Content:     "text",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want validation", err)
	}
}

func TestFlagContentSnippetSafeTruncation(t *testing.T) {
	flags := newFakeFlagRepo()
	svc := newModerationService(flags, newFakeSermonRepo(), newFakePrayerRepo())
	member := authz.Actor{ID: "member-1", Role: models.RoleMember, ChurchID: churchA}

	// Multi-byte runes positioned so a byte-index cut would land inside one.
	long := strings.Repeat("信", 120)
	flag, err := svc.FlagContent(context.Background(), member, &services.FlagContentRequest{
		ContentType: "sermon",
		ContentID:   "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa",
		Content:     long,
	})
	if err != nil {
		t.Fatalf("FlagContent() error = %v", err)
	}
	if !utf8.ValidString(flag.Snippet) {
		t.Error("snippet is not valid UTF-8")
	}
	if len(flag.Snippet) > 200 {
		t.Errorf("snippet length = %d bytes, want <= 200", len(flag.Snippet))
	}
	if !strings.HasSuffix(flag.Snippet, "...") {
		t.Errorf("snippet %q not marked as truncated", flag.Snippet)
	}
}
