package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"shepherd/internal/authz"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
	"shepherd/internal/domain/services"
	"shepherd/internal/moderation"
)

// sermonService implements the SermonService interface
type sermonService struct {
	sermonRepo  repositories.SermonRepository
	churchRepo  repositories.ChurchRepository
	generator   services.SermonGenerator
	synthesizer services.SpeechSynthesizer
	scanner     services.ContentScanner
	logger      *slog.Logger
}

// NewSermonService creates a new sermon service
func NewSermonService(
	sermonRepo repositories.SermonRepository,
	churchRepo repositories.ChurchRepository,
	generator services.SermonGenerator,
	synthesizer services.SpeechSynthesizer,
	scanner services.ContentScanner,
	logger *slog.Logger,
) services.SermonService {
	return &sermonService{
		sermonRepo:  sermonRepo,
		churchRepo:  churchRepo,
		generator:   generator,
		synthesizer: synthesizer,
		scanner:     scanner,
		logger:      logger,
	}
}

// CreateSermon creates a draft sermon authored by the actor
func (s *sermonService) CreateSermon(ctx context.Context, actor authz.Actor, req *services.CreateSermonRequest) (*models.Sermon, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := authz.Authorize(actor, authz.KindSermon, authz.OpCreate, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}

	if err := scanBlocked(ctx, s.scanner, req.Title+"\n"+req.Content); err != nil {
		return nil, err
	}

	now := time.Now()
	sermon := &models.Sermon{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		BibleVerses: req.BibleVerses,
		Theme:       req.Theme,
		Status:      models.SermonDraft,
		// Author and church always come from the authenticated actor, never
		// from the request body.
		AuthorID:  actor.ID,
		ChurchID:  actor.ChurchID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sermonRepo.Create(ctx, sermon); err != nil {
		return nil, err
	}

	s.logger.Info("sermon created",
		"id", sermon.ID,
		"author_id", actor.ID,
		"church_id", sermon.ChurchID,
	)

	return sermon, nil
}

// GetSermon retrieves one sermon within the actor's tenant
func (s *sermonService) GetSermon(ctx context.Context, actor authz.Actor, id string) (*models.Sermon, error) {
	sermon, err := s.sermonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.KindSermon, authz.OpRead, authz.Target{ChurchID: sermon.ChurchID}); err != nil {
		return nil, denied(err)
	}

	return sermon, nil
}

// ListSermons returns the actor's church's sermons, newest first
func (s *sermonService) ListSermons(ctx context.Context, actor authz.Actor, status models.SermonStatus) ([]models.Sermon, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	if err := authz.Authorize(actor, authz.KindSermon, authz.OpList, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}

	return s.sermonRepo.ListByChurch(ctx, actor.ChurchID, status)
}

// UpdateSermon applies a partial update
func (s *sermonService) UpdateSermon(ctx context.Context, actor authz.Actor, id string, req *services.UpdateSermonRequest) (*models.Sermon, error) {
	sermon, err := s.sermonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.KindSermon, authz.OpUpdate, authz.Target{ChurchID: sermon.ChurchID, OwnerID: sermon.AuthorID}); err != nil {
		return nil, denied(err)
	}

	if req.Title != nil {
		sermon.Title = *req.Title
	}
	if req.Description != nil {
		sermon.Description = *req.Description
	}
	if req.Content != nil {
		sermon.Content = *req.Content
	}
	if req.BibleVerses != nil {
		sermon.BibleVerses = *req.BibleVerses
	}
	if req.Theme != nil {
		sermon.Theme = *req.Theme
	}

	if sermon.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}

	if err := scanBlocked(ctx, s.scanner, sermon.Title+"\n"+sermon.Content); err != nil {
		return nil, err
	}

	sermon.UpdatedAt = time.Now()
	if err := s.sermonRepo.Update(ctx, sermon); err != nil {
		return nil, err
	}

	return sermon, nil
}

// UpdateSermonStatus transitions publication state. Publishing is a
// stricter operation than other transitions.
func (s *sermonService) UpdateSermonStatus(ctx context.Context, actor authz.Actor, id string, status models.SermonStatus) (*models.Sermon, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	sermon, err := s.sermonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	op := authz.StatusOperation(status == models.SermonPublished)
	if err := authz.Authorize(actor, authz.KindSermon, op, authz.Target{ChurchID: sermon.ChurchID, OwnerID: sermon.AuthorID}); err != nil {
		return nil, denied(err)
	}

	sermon.Status = status
	sermon.UpdatedAt = time.Now()
	if err := s.sermonRepo.Update(ctx, sermon); err != nil {
		return nil, err
	}

	s.logger.Info("sermon status changed",
		"id", sermon.ID,
		"status", status,
		"actor_id", actor.ID,
	)

	return sermon, nil
}

// DeleteSermon removes a sermon permanently
func (s *sermonService) DeleteSermon(ctx context.Context, actor authz.Actor, id string) error {
	sermon, err := s.sermonRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(actor, authz.KindSermon, authz.OpDelete, authz.Target{ChurchID: sermon.ChurchID, OwnerID: sermon.AuthorID}); err != nil {
		return denied(err)
	}

	return s.sermonRepo.Delete(ctx, id)
}

// GenerateSermon drafts a sermon with the AI generator. Gated on role and
// subscription plan.
func (s *sermonService) GenerateSermon(ctx context.Context, actor authz.Actor, req *services.GenerateSermonRequest) (*models.Sermon, error) {
	if err := s.validateGenerateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := authz.Authorize(actor, authz.KindSermon, authz.OpGenerateAI, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}
	if err := requirePaidPlan(ctx, actor, s.churchRepo); err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateSermon(ctx, &services.SermonPrompt{
		Theme:                    req.Theme,
		BibleVerses:              req.BibleVerses,
		Audience:                 req.Audience,
		Length:                   req.Length,
		Style:                    req.Style,
		Denomination:             req.Denomination,
		TheologicalFramework:     req.TheologicalFramework,
		IncludeIllustrations:     req.IncludeIllustrations,
		IncludeApplicationPoints: req.IncludeApplicationPoints,
		IncludeClosingPrayer:     req.IncludeClosingPrayer,
		AdditionalInstructions:   req.AdditionalInstructions,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sermon := &models.Sermon{
		ID:            uuid.NewString(),
		Title:         generated.Title,
		Content:       generated.Content,
		BibleVerses:   req.BibleVerses,
		Theme:         req.Theme,
		Status:        models.SermonDraft,
		AuthorID:      actor.ID,
		ChurchID:      actor.ChurchID,
		IsAIGenerated: true,
		AIPrompt: map[string]interface{}{
			"theme":                 req.Theme,
			"bible_verses":          req.BibleVerses,
			"audience":              req.Audience,
			"length":                req.Length,
			"style":                 req.Style,
			"denomination":          req.Denomination,
			"theological_framework": req.TheologicalFramework,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sermonRepo.Create(ctx, sermon); err != nil {
		return nil, err
	}

	s.logger.Info("sermon generated",
		"id", sermon.ID,
		"theme", req.Theme,
		"author_id", actor.ID,
	)

	return sermon, nil
}

// SynthesizeAudio renders a sermon's content to speech. Gated on role and
// subscription plan.
func (s *sermonService) SynthesizeAudio(ctx context.Context, actor authz.Actor, id string, req *services.SynthesizeAudioRequest) (*models.Sermon, error) {
	sermon, err := s.sermonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.KindSermon, authz.OpGenerateAI, authz.Target{ChurchID: sermon.ChurchID, OwnerID: sermon.AuthorID}); err != nil {
		return nil, denied(err)
	}
	if err := requirePaidPlan(ctx, actor, s.churchRepo); err != nil {
		return nil, err
	}

	if sermon.Content == "" {
		return nil, fmt.Errorf("%w: sermon has no content to synthesize", domain.ErrValidation)
	}

	result, err := s.synthesizer.Synthesize(ctx, sermon.Content, &services.TTSOptions{
		Gender: req.VoiceGender,
		Accent: req.VoiceAccent,
		Style:  req.VoiceStyle,
	})
	if err != nil {
		return nil, err
	}

	sermon.AudioURL = result.AudioURL
	sermon.AudioDuration = result.DurationSeconds
	sermon.UpdatedAt = time.Now()
	if err := s.sermonRepo.Update(ctx, sermon); err != nil {
		return nil, err
	}

	s.logger.Info("sermon audio synthesized",
		"id", sermon.ID,
		"duration_seconds", result.DurationSeconds,
		"word_count", result.WordCount,
	)

	return sermon, nil
}

func (s *sermonService) validateCreateRequest(req *services.CreateSermonRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.Theme, validation.Length(0, 200)),
	)
}

func (s *sermonService) validateGenerateRequest(req *services.GenerateSermonRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Theme, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Length, validation.In("", "short", "medium", "long")),
	)
}

// scanBlocked screens submitted text, returning a validation error when
// moderation blocks it. Unused scanner means screening is disabled.
func scanBlocked(ctx context.Context, scanner services.ContentScanner, text string) error {
	if scanner == nil {
		return nil
	}
	result, err := scanner.Scan(ctx, text)
	if err != nil {
		return err
	}
	if moderation.Blocks(result) {
		return fmt.Errorf("%w: content violates community guidelines", domain.ErrValidation)
	}
	return nil
}
