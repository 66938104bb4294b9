package models

import "time"

// FlagSeverity grades how problematic a piece of content is.
type FlagSeverity string

const (
	SeverityNone   FlagSeverity = "NONE"
	SeverityLow    FlagSeverity = "LOW"
	SeverityMedium FlagSeverity = "MEDIUM"
	SeverityHigh   FlagSeverity = "HIGH"
)

// FlagCategory classifies why content was flagged.
type FlagCategory string

const (
	CategoryHate            FlagCategory = "HATE"
	CategoryHarassment      FlagCategory = "HARASSMENT"
	CategorySexual          FlagCategory = "SEXUAL"
	CategoryViolence        FlagCategory = "VIOLENCE"
	CategorySelfHarm        FlagCategory = "SELF_HARM"
	CategoryIllegalActivity FlagCategory = "ILLEGAL_ACTIVITY"
	CategoryMisleading      FlagCategory = "MISLEADING"
	CategoryOther           FlagCategory = "OTHER"
)

// ModerationResult is the outcome of a content scan. The scanner is an
// opaque collaborator; callers only branch on IsFlagged and Severity.
type ModerationResult struct {
	IsFlagged  bool           `json:"is_flagged"`
	Severity   FlagSeverity   `json:"severity"`
	Categories []FlagCategory `json:"categories"`
	Reasons    []string       `json:"reasons"`
	Score      float64        `json:"score"`
}

// FlaggedContent is a moderation record for a piece of user-submitted text.
type FlaggedContent struct {
	ID          string         `json:"id"`
	ContentType string         `json:"content_type"` // "sermon", "prayer_request", ...
	ContentID   string         `json:"content_id"`
	Snippet     string         `json:"snippet"`
	IsFlagged   bool           `json:"is_flagged"`
	Severity    FlagSeverity   `json:"severity"`
	Categories  []FlagCategory `json:"categories"`
	Reasons     []string       `json:"reasons"`
	Score       float64        `json:"score"`
	ChurchID    string         `json:"church_id"`
	ReviewedBy  string         `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty"`
	ReviewNotes string         `json:"review_notes,omitempty"`
	Resolved    bool           `json:"resolved"`
	FlaggedAt   time.Time      `json:"flagged_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
