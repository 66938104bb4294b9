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
)

// bibleStudyService implements the BibleStudyService interface
type bibleStudyService struct {
	studyRepo  repositories.BibleStudyRepository
	churchRepo repositories.ChurchRepository
	explainer  services.VerseExplainer
	scanner    services.ContentScanner
	logger     *slog.Logger
}

// NewBibleStudyService creates a new bible study service
func NewBibleStudyService(
	studyRepo repositories.BibleStudyRepository,
	churchRepo repositories.ChurchRepository,
	explainer services.VerseExplainer,
	scanner services.ContentScanner,
	logger *slog.Logger,
) services.BibleStudyService {
	return &bibleStudyService{
		studyRepo:  studyRepo,
		churchRepo: churchRepo,
		explainer:  explainer,
		scanner:    scanner,
		logger:     logger,
	}
}

// CreateBibleStudy creates a draft study authored by the actor
func (s *bibleStudyService) CreateBibleStudy(ctx context.Context, actor authz.Actor, req *services.CreateBibleStudyRequest) (*models.BibleStudy, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := authz.Authorize(actor, authz.KindBibleStudy, authz.OpCreate, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}

	if err := scanBlocked(ctx, s.scanner, req.Title+"\n"+req.Content); err != nil {
		return nil, err
	}

	now := time.Now()
	study := &models.BibleStudy{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		BibleVerses: req.BibleVerses,
		Status:      models.BibleStudyDraft,
		AuthorID:    actor.ID,
		ChurchID:    actor.ChurchID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.studyRepo.Create(ctx, study); err != nil {
		return nil, err
	}

	s.logger.Info("bible study created",
		"id", study.ID,
		"author_id", actor.ID,
		"church_id", study.ChurchID,
	)

	return study, nil
}

// GetBibleStudy retrieves one study and records the view
func (s *bibleStudyService) GetBibleStudy(ctx context.Context, actor authz.Actor, id string) (*models.BibleStudy, error) {
	study, err := s.studyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.KindBibleStudy, authz.OpRead, authz.Target{ChurchID: study.ChurchID}); err != nil {
		return nil, denied(err)
	}

	if err := s.studyRepo.IncrementViewCount(ctx, id); err != nil {
		// A lost view is not worth failing the read.
		s.logger.Warn("failed to record view", "id", id, "error", err)
	} else {
		study.ViewCount++
	}

	return study, nil
}

// ListBibleStudies returns the actor's church's studies, newest first
func (s *bibleStudyService) ListBibleStudies(ctx context.Context, actor authz.Actor, status models.BibleStudyStatus) ([]models.BibleStudy, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	if err := authz.Authorize(actor, authz.KindBibleStudy, authz.OpList, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}

	return s.studyRepo.ListByChurch(ctx, actor.ChurchID, status)
}

// UpdateBibleStudy applies a partial update
func (s *bibleStudyService) UpdateBibleStudy(ctx context.Context, actor authz.Actor, id string, req *services.UpdateBibleStudyRequest) (*models.BibleStudy, error) {
	study, err := s.studyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.KindBibleStudy, authz.OpUpdate, authz.Target{ChurchID: study.ChurchID, OwnerID: study.AuthorID}); err != nil {
		return nil, denied(err)
	}

	if req.Title != nil {
		study.Title = *req.Title
	}
	if req.Description != nil {
		study.Description = *req.Description
	}
	if req.Content != nil {
		study.Content = *req.Content
	}
	if req.BibleVerses != nil {
		study.BibleVerses = *req.BibleVerses
	}

	if study.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}

	if err := scanBlocked(ctx, s.scanner, study.Title+"\n"+study.Content); err != nil {
		return nil, err
	}

	study.UpdatedAt = time.Now()
	if err := s.studyRepo.Update(ctx, study); err != nil {
		return nil, err
	}

	return study, nil
}

// UpdateBibleStudyStatus transitions publication state
func (s *bibleStudyService) UpdateBibleStudyStatus(ctx context.Context, actor authz.Actor, id string, status models.BibleStudyStatus) (*models.BibleStudy, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	study, err := s.studyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	op := authz.StatusOperation(status == models.BibleStudyPublished)
	if err := authz.Authorize(actor, authz.KindBibleStudy, op, authz.Target{ChurchID: study.ChurchID, OwnerID: study.AuthorID}); err != nil {
		return nil, denied(err)
	}

	study.Status = status
	study.UpdatedAt = time.Now()
	if err := s.studyRepo.Update(ctx, study); err != nil {
		return nil, err
	}

	s.logger.Info("bible study status changed",
		"id", study.ID,
		"status", status,
		"actor_id", actor.ID,
	)

	return study, nil
}

// DeleteBibleStudy removes a study permanently
func (s *bibleStudyService) DeleteBibleStudy(ctx context.Context, actor authz.Actor, id string) error {
	study, err := s.studyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(actor, authz.KindBibleStudy, authz.OpDelete, authz.Target{ChurchID: study.ChurchID, OwnerID: study.AuthorID}); err != nil {
		return denied(err)
	}

	return s.studyRepo.Delete(ctx, id)
}

// GenerateExplanations produces AI explanations for the study's verses.
// Gated on role and subscription plan.
func (s *bibleStudyService) GenerateExplanations(ctx context.Context, actor authz.Actor, id string, req *services.GenerateExplanationsRequest) (*models.BibleStudy, error) {
	study, err := s.studyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.KindBibleStudy, authz.OpGenerateAI, authz.Target{ChurchID: study.ChurchID, OwnerID: study.AuthorID}); err != nil {
		return nil, denied(err)
	}
	if err := requirePaidPlan(ctx, actor, s.churchRepo); err != nil {
		return nil, err
	}

	if len(study.BibleVerses) == 0 {
		return nil, fmt.Errorf("%w: study has no verses to explain", domain.ErrValidation)
	}

	if req == nil {
		req = &services.GenerateExplanationsRequest{}
	}
	explanations, err := s.explainer.ExplainVerses(ctx, study.BibleVerses, &services.ExplanationOptions{
		Depth:          req.Depth,
		Style:          req.Style,
		TargetAudience: req.TargetAudience,
		Context:        req.Context,
	})
	if err != nil {
		return nil, err
	}

	study.AIExplanations = explanations
	study.IsAIGenerated = true
	study.UpdatedAt = time.Now()
	if err := s.studyRepo.Update(ctx, study); err != nil {
		return nil, err
	}

	s.logger.Info("bible study explanations generated",
		"id", study.ID,
		"verse_count", len(study.BibleVerses),
	)

	return study, nil
}

func (s *bibleStudyService) validateCreateRequest(req *services.CreateBibleStudyRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.BibleVerses, validation.Required),
	)
}
