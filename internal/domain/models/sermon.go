package models

import "time"

// SermonStatus is the publication state of a sermon.
type SermonStatus string

const (
	SermonDraft     SermonStatus = "draft"
	SermonPublished SermonStatus = "published"
	SermonArchived  SermonStatus = "archived"
)

// Valid reports whether s is a known status.
func (s SermonStatus) Valid() bool {
	switch s {
	case SermonDraft, SermonPublished, SermonArchived:
		return true
	}
	return false
}

// Sermon is a message authored (or AI-drafted) by a pastor within a church.
type Sermon struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Content       string       `json:"content"`
	BibleVerses   []string     `json:"bible_verses,omitempty"`
	Theme         string       `json:"theme,omitempty"`
	Status        SermonStatus `json:"status"`
	AuthorID      string       `json:"author_id"`
	ChurchID      string       `json:"church_id"`
	IsAIGenerated bool         `json:"is_ai_generated"`
	// AIPrompt preserves the generation request for auditability.
	AIPrompt      map[string]interface{} `json:"ai_prompt,omitempty"`
	AudioURL      string                 `json:"audio_url,omitempty"`
	AudioDuration int                    `json:"audio_duration,omitempty"`
	LastScannedAt *time.Time             `json:"last_scanned_at,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}
