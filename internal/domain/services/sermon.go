package services

import (
	"context"

	"shepherd/internal/authz"
	"shepherd/internal/domain/models"
)

// SermonService handles sermon business logic.
type SermonService interface {
	// CreateSermon creates a draft sermon authored by the actor.
	CreateSermon(ctx context.Context, actor authz.Actor, req *CreateSermonRequest) (*models.Sermon, error)

	// GetSermon retrieves one sermon within the actor's tenant.
	GetSermon(ctx context.Context, actor authz.Actor, id string) (*models.Sermon, error)

	// ListSermons returns the actor's church's sermons, newest first.
	ListSermons(ctx context.Context, actor authz.Actor, status models.SermonStatus) ([]models.Sermon, error)

	// UpdateSermon applies a partial update. Nil fields are left untouched.
	UpdateSermon(ctx context.Context, actor authz.Actor, id string, req *UpdateSermonRequest) (*models.Sermon, error)

	// UpdateSermonStatus transitions publication state. Transitions into
	// published are gated harder than other transitions.
	UpdateSermonStatus(ctx context.Context, actor authz.Actor, id string, status models.SermonStatus) (*models.Sermon, error)

	// DeleteSermon removes a sermon permanently.
	DeleteSermon(ctx context.Context, actor authz.Actor, id string) error

	// GenerateSermon drafts a sermon with the AI generator and persists it
	// as a draft. Requires a paid plan.
	GenerateSermon(ctx context.Context, actor authz.Actor, req *GenerateSermonRequest) (*models.Sermon, error)

	// SynthesizeAudio renders a sermon's content to speech and stores the
	// audio URL on the sermon. Requires a paid plan.
	SynthesizeAudio(ctx context.Context, actor authz.Actor, id string, req *SynthesizeAudioRequest) (*models.Sermon, error)
}

// CreateSermonRequest represents manual sermon creation.
type CreateSermonRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content"`
	BibleVerses []string `json:"bible_verses,omitempty"`
	Theme       string   `json:"theme,omitempty"`
}

// UpdateSermonRequest represents a partial sermon update.
type UpdateSermonRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Content     *string   `json:"content,omitempty"`
	BibleVerses *[]string `json:"bible_verses,omitempty"`
	Theme       *string   `json:"theme,omitempty"`
}

// GenerateSermonRequest parameterizes AI sermon drafting.
type GenerateSermonRequest struct {
	Theme                    string   `json:"theme"`
	BibleVerses              []string `json:"bible_verses,omitempty"`
	Audience                 string   `json:"audience,omitempty"`
	Length                   string   `json:"length,omitempty"` // short, medium, long
	Style                    string   `json:"style,omitempty"`
	Denomination             string   `json:"denomination,omitempty"`
	TheologicalFramework     string   `json:"theological_framework,omitempty"`
	IncludeIllustrations     bool     `json:"include_illustrations"`
	IncludeApplicationPoints bool     `json:"include_application_points"`
	IncludeClosingPrayer     bool     `json:"include_closing_prayer"`
	AdditionalInstructions   string   `json:"additional_instructions,omitempty"`
}

// SynthesizeAudioRequest parameterizes text-to-speech rendering.
type SynthesizeAudioRequest struct {
	VoiceGender string `json:"voice_gender,omitempty"` // male, female
	VoiceAccent string `json:"voice_accent,omitempty"` // american, british
	VoiceStyle  string `json:"voice_style,omitempty"`  // conversational, narrative, preaching
}
