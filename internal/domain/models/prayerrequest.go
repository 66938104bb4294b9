package models

import "time"

// PrayerRequestStatus tracks the lifecycle of a prayer request.
type PrayerRequestStatus string

const (
	PrayerOpen     PrayerRequestStatus = "open"
	PrayerAnswered PrayerRequestStatus = "answered"
	PrayerClosed   PrayerRequestStatus = "closed"
)

// Valid reports whether s is a known status.
func (s PrayerRequestStatus) Valid() bool {
	switch s {
	case PrayerOpen, PrayerAnswered, PrayerClosed:
		return true
	}
	return false
}

// PrayerVisibility controls who within a church may see a prayer request,
// ordered by exposure: public is widest, pastoral narrowest.
type PrayerVisibility string

const (
	// VisibilityPublic: visible to all church members.
	VisibilityPublic PrayerVisibility = "public"
	// VisibilityPrivate: visible only to the author and pastors.
	VisibilityPrivate PrayerVisibility = "private"
	// VisibilityPastoral: visible only to pastors, never to the author's
	// peers regardless of ownership.
	VisibilityPastoral PrayerVisibility = "pastoral"
)

// Valid reports whether v is a known visibility level.
func (v PrayerVisibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityPastoral:
		return true
	}
	return false
}

// PrayerRequest is a member-submitted request for prayer.
type PrayerRequest struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Content            string              `json:"content"`
	Status             PrayerRequestStatus `json:"status"`
	Visibility         PrayerVisibility    `json:"visibility"`
	UserID             string              `json:"user_id"`
	ChurchID           string              `json:"church_id"`
	RelatedBibleVerses []string            `json:"related_bible_verses,omitempty"`
	AIResponse         string              `json:"ai_response,omitempty"`
	PrayerCount        int                 `json:"prayer_count"`
	LastScannedAt      *time.Time          `json:"last_scanned_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}
