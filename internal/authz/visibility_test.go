package authz

import (
	"testing"
	"time"

	"shepherd/internal/domain/models"
)

func pr(id, userID, churchID string, vis models.PrayerVisibility) models.PrayerRequest {
	return models.PrayerRequest{
		ID:         id,
		UserID:     userID,
		ChurchID:   churchID,
		Visibility: vis,
		CreatedAt:  time.Now(),
	}
}

func TestCanSeePrayerRequest(t *testing.T) {
	tests := []struct {
		name string
		actor Actor
		req   models.PrayerRequest
		want  bool
	}{
		{
			name:  "member sees public",
			actor: Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"},
			req:   pr("a", "9", "1", models.VisibilityPublic),
			want:  true,
		},
		{
			name:  "member sees own private",
			actor: Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"},
			req:   pr("a", "3", "1", models.VisibilityPrivate),
			want:  true,
		},
		{
			name:  "member cannot see another's private",
			actor: Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"},
			req:   pr("a", "9", "1", models.VisibilityPrivate),
			want:  false,
		},
		{
			name:  "guest cannot see another's private",
			actor: Actor{ID: "7", Role: models.RoleGuest, ChurchID: "1"},
			req:   pr("a", "9", "1", models.VisibilityPrivate),
			want:  false,
		},
		{
			// Scenario A: pastoral is hidden from members even when they own it.
			name:  "member cannot see own pastoral request",
			actor: Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"},
			req:   pr("3", "3", "1", models.VisibilityPastoral),
			want:  false,
		},
		{
			name:  "pastor sees pastoral",
			actor: Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"},
			req:   pr("a", "9", "1", models.VisibilityPastoral),
			want:  true,
		},
		{
			name:  "admin sees everything",
			actor: Actor{ID: "1", Role: models.RoleAdmin, ChurchID: "2"},
			req:   pr("a", "9", "1", models.VisibilityPastoral),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSeePrayerRequest(tt.actor, &tt.req); got != tt.want {
				t.Fatalf("CanSeePrayerRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckReadPrayerRequestHidesExistence(t *testing.T) {
	actor := Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"}
	hidden := pr("3", "3", "1", models.VisibilityPastoral)

	err := CheckReadPrayerRequest(actor, &hidden)
	reason := DeniedReason(err)
	if reason != ReasonNotVisible {
		t.Fatalf("expected not_visible denial, got %v", err)
	}
	var d *Denial = err.(*Denial)
	if !d.NotFoundShaped() {
		t.Fatal("visibility denial must surface as not found")
	}
}

func TestFilterPrayerRequests(t *testing.T) {
	list := []models.PrayerRequest{
		pr("pub", "9", "1", models.VisibilityPublic),
		pr("own-priv", "3", "1", models.VisibilityPrivate),
		pr("other-priv", "9", "1", models.VisibilityPrivate),
		pr("pastoral", "3", "1", models.VisibilityPastoral),
	}

	member := Actor{ID: "3", Role: models.RoleMember, ChurchID: "1"}
	got := FilterPrayerRequests(member, list)
	if len(got) != 2 || got[0].ID != "pub" || got[1].ID != "own-priv" {
		ids := make([]string, len(got))
		for i, p := range got {
			ids[i] = p.ID
		}
		t.Fatalf("member filter = %v, want [pub own-priv]", ids)
	}

	pastor := Actor{ID: "2", Role: models.RolePastor, ChurchID: "1"}
	if got := FilterPrayerRequests(pastor, list); len(got) != len(list) {
		t.Fatalf("pastor should see the full tenant set, got %d of %d", len(got), len(list))
	}
}
