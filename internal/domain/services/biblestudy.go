package services

import (
	"context"

	"shepherd/internal/authz"
	"shepherd/internal/domain/models"
)

// BibleStudyService handles bible study business logic.
type BibleStudyService interface {
	// CreateBibleStudy creates a draft study authored by the actor.
	CreateBibleStudy(ctx context.Context, actor authz.Actor, req *CreateBibleStudyRequest) (*models.BibleStudy, error)

	// GetBibleStudy retrieves one study and records the view.
	GetBibleStudy(ctx context.Context, actor authz.Actor, id string) (*models.BibleStudy, error)

	// ListBibleStudies returns the actor's church's studies, newest first.
	ListBibleStudies(ctx context.Context, actor authz.Actor, status models.BibleStudyStatus) ([]models.BibleStudy, error)

	// UpdateBibleStudy applies a partial update. Nil fields are left untouched.
	UpdateBibleStudy(ctx context.Context, actor authz.Actor, id string, req *UpdateBibleStudyRequest) (*models.BibleStudy, error)

	// UpdateBibleStudyStatus transitions publication state.
	UpdateBibleStudyStatus(ctx context.Context, actor authz.Actor, id string, status models.BibleStudyStatus) (*models.BibleStudy, error)

	// DeleteBibleStudy removes a study permanently.
	DeleteBibleStudy(ctx context.Context, actor authz.Actor, id string) error

	// GenerateExplanations produces AI explanations for the study's verses
	// and stores them on the study. Requires a paid plan.
	GenerateExplanations(ctx context.Context, actor authz.Actor, id string, req *GenerateExplanationsRequest) (*models.BibleStudy, error)
}

// CreateBibleStudyRequest represents manual study creation.
type CreateBibleStudyRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content"`
	BibleVerses []string `json:"bible_verses"`
}

// UpdateBibleStudyRequest represents a partial study update.
type UpdateBibleStudyRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Content     *string   `json:"content,omitempty"`
	BibleVerses *[]string `json:"bible_verses,omitempty"`
}

// GenerateExplanationsRequest parameterizes AI verse explanation.
type GenerateExplanationsRequest struct {
	Depth          string `json:"depth,omitempty"` // basic, intermediate, scholarly
	Style          string `json:"style,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	Context        string `json:"context,omitempty"`
}
