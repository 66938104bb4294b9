package models

import "time"

// BibleStudyStatus is the publication state of a Bible study.
type BibleStudyStatus string

const (
	BibleStudyDraft     BibleStudyStatus = "draft"
	BibleStudyPublished BibleStudyStatus = "published"
	BibleStudyArchived  BibleStudyStatus = "archived"
)

// Valid reports whether s is a known status.
func (s BibleStudyStatus) Valid() bool {
	switch s {
	case BibleStudyDraft, BibleStudyPublished, BibleStudyArchived:
		return true
	}
	return false
}

// BibleStudy is a study guide built around a set of verses.
type BibleStudy struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Content     string           `json:"content"`
	BibleVerses []string         `json:"bible_verses"`
	Status      BibleStudyStatus `json:"status"`
	AuthorID    string           `json:"author_id"`
	ChurchID    string           `json:"church_id"`
	IsAIGenerated bool           `json:"is_ai_generated"`
	// AIExplanations maps verse reference -> generated explanation text.
	AIExplanations map[string]string `json:"ai_explanations,omitempty"`
	ViewCount      int               `json:"view_count"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
