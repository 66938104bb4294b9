package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"shepherd/internal/authz"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
	"shepherd/internal/domain/services"
	"shepherd/internal/moderation"
	"shepherd/internal/obs"
)

// rescanWindow bounds how far back scheduled scans look for updated
// content.
const rescanWindow = 24 * time.Hour

// snippetLength caps how much flagged text is stored on the record.
const snippetLength = 200

// moderationService implements the ModerationService interface
type moderationService struct {
	flagRepo   repositories.FlaggedContentRepository
	sermonRepo repositories.SermonRepository
	prayerRepo repositories.PrayerRequestRepository
	scanner    services.ContentScanner
	logger     *slog.Logger
}

// NewModerationService creates a new moderation service
func NewModerationService(
	flagRepo repositories.FlaggedContentRepository,
	sermonRepo repositories.SermonRepository,
	prayerRepo repositories.PrayerRequestRepository,
	scanner services.ContentScanner,
	logger *slog.Logger,
) services.ModerationService {
	return &moderationService{
		flagRepo:   flagRepo,
		sermonRepo: sermonRepo,
		prayerRepo: prayerRepo,
		scanner:    scanner,
		logger:     logger,
	}
}

// ListFlags returns the moderation records of the actor's church
func (s *moderationService) ListFlags(ctx context.Context, actor authz.Actor, filter repositories.FlaggedContentFilter) ([]models.FlaggedContent, error) {
	if err := authz.Authorize(actor, authz.KindFlaggedContent, authz.OpList, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}
	return s.flagRepo.ListByChurch(ctx, actor.ChurchID, filter)
}

// GetFlag retrieves one moderation record
func (s *moderationService) GetFlag(ctx context.Context, actor authz.Actor, id string) (*models.FlaggedContent, error) {
	flag, err := s.flagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.KindFlaggedContent, authz.OpRead, authz.Target{ChurchID: flag.ChurchID}); err != nil {
		return nil, denied(err)
	}

	return flag, nil
}

// ReviewFlag records a human review decision on a flag
func (s *moderationService) ReviewFlag(ctx context.Context, actor authz.Actor, id string, req *services.ReviewFlagRequest) (*models.FlaggedContent, error) {
	flag, err := s.flagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.KindFlaggedContent, authz.OpUpdate, authz.Target{ChurchID: flag.ChurchID}); err != nil {
		return nil, denied(err)
	}

	now := time.Now()
	flag.ReviewedBy = actor.ID
	flag.ReviewedAt = &now
	flag.ReviewNotes = req.Notes
	flag.Resolved = req.Resolved
	flag.UpdatedAt = now

	if err := s.flagRepo.Update(ctx, flag); err != nil {
		return nil, err
	}

	s.logger.Info("flag reviewed",
		"id", flag.ID,
		"resolved", flag.Resolved,
		"reviewed_by", actor.ID,
	)

	return flag, nil
}

// Stats summarizes the actor's church's moderation queue
func (s *moderationService) Stats(ctx context.Context, actor authz.Actor) (*repositories.ModerationStats, error) {
	if err := authz.Authorize(actor, authz.KindFlaggedContent, authz.OpList, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}
	return s.flagRepo.Stats(ctx, actor.ChurchID)
}

// CheckContent screens text before submission so clients can validate
// form input up front
func (s *moderationService) CheckContent(ctx context.Context, content string) (*services.CheckContentResult, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}

	result, err := s.scanner.Scan(ctx, content)
	if err != nil {
		return nil, err
	}

	return &services.CheckContentResult{
		Allowed: !moderation.Blocks(result),
		Result:  result,
	}, nil
}

// FlagContent files a manual report in the actor's church's queue. The
// reported text is scanned so the record carries severity and categories.
func (s *moderationService) FlagContent(ctx context.Context, actor authz.Actor, req *services.FlagContentRequest) (*models.FlaggedContent, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ContentType, validation.Required, validation.In("sermon", "bible_study", "prayer_request")),
		validation.Field(&req.ContentID, validation.Required, is.UUID),
		validation.Field(&req.Content, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := authz.Authorize(actor, authz.KindFlaggedContent, authz.OpCreate, authz.Target{ChurchID: actor.ChurchID}); err != nil {
		return nil, denied(err)
	}

	result, err := s.scanner.Scan(ctx, req.Content)
	if err != nil {
		return nil, err
	}

	snippet := truncateSnippet(req.Content)

	now := time.Now()
	flag := &models.FlaggedContent{
		ID:          uuid.NewString(),
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Snippet:     snippet,
		IsFlagged:   result.IsFlagged,
		Severity:    result.Severity,
		Categories:  result.Categories,
		Reasons:     result.Reasons,
		Score:       result.Score,
		ChurchID:    actor.ChurchID,
		FlaggedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return nil, err
	}

	obs.ContentFlagged(string(result.Severity))
	s.logger.Info("content reported",
		"content_type", req.ContentType,
		"content_id", req.ContentID,
		"severity", result.Severity,
		"reported_by", actor.ID,
	)

	return flag, nil
}

// ScanSermons re-scans sermons updated in the rescan window that have not
// been scanned since their last update
func (s *moderationService) ScanSermons(ctx context.Context) error {
	sermons, err := s.sermonRepo.ListUnscanned(ctx, time.Now().Add(-rescanWindow))
	if err != nil {
		return fmt.Errorf("list sermons to scan: %w", err)
	}

	scanned := 0
	flagged := 0
	for _, sermon := range sermons {
		result, err := s.scanner.Scan(ctx, sermon.Title+"\n"+sermon.Content)
		if err != nil {
			s.logger.Error("sermon scan failed", "id", sermon.ID, "error", err)
			continue
		}
		scanned++

		if result.IsFlagged {
			flagged++
			if err := s.recordFlag(ctx, "sermon", sermon.ID, sermon.ChurchID, sermon.Content, result); err != nil {
				s.logger.Error("record sermon flag failed", "id", sermon.ID, "error", err)
				continue
			}
		}

		if err := s.sermonRepo.UpdateLastScanned(ctx, sermon.ID, time.Now()); err != nil {
			s.logger.Error("mark sermon scanned failed", "id", sermon.ID, "error", err)
		}
	}

	if scanned > 0 {
		s.logger.Info("sermon scan complete", "scanned", scanned, "flagged", flagged)
	}
	return nil
}

// ScanPrayerRequests re-scans prayer requests updated in the rescan window
// that have not been scanned since their last update
func (s *moderationService) ScanPrayerRequests(ctx context.Context) error {
	requests, err := s.prayerRepo.ListUnscanned(ctx, time.Now().Add(-rescanWindow))
	if err != nil {
		return fmt.Errorf("list prayer requests to scan: %w", err)
	}

	scanned := 0
	flagged := 0
	for _, request := range requests {
		result, err := s.scanner.Scan(ctx, request.Title+"\n"+request.Content)
		if err != nil {
			s.logger.Error("prayer request scan failed", "id", request.ID, "error", err)
			continue
		}
		scanned++

		if result.IsFlagged {
			flagged++
			if err := s.recordFlag(ctx, "prayer_request", request.ID, request.ChurchID, request.Content, result); err != nil {
				s.logger.Error("record prayer request flag failed", "id", request.ID, "error", err)
				continue
			}
		}

		if err := s.prayerRepo.UpdateLastScanned(ctx, request.ID, time.Now()); err != nil {
			s.logger.Error("mark prayer request scanned failed", "id", request.ID, "error", err)
		}
	}

	if scanned > 0 {
		s.logger.Info("prayer request scan complete", "scanned", scanned, "flagged", flagged)
	}
	return nil
}

// truncateSnippet caps the stored excerpt, cutting on a rune boundary so a
// multi-byte character straddling the limit is never split.
func truncateSnippet(content string) string {
	if len(content) <= snippetLength {
		return content
	}
	cut := snippetLength - 3
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}

func (s *moderationService) recordFlag(ctx context.Context, contentType, contentID, churchID, content string, result *models.ModerationResult) error {
	snippet := truncateSnippet(content)

	now := time.Now()
	flag := &models.FlaggedContent{
		ID:          uuid.NewString(),
		ContentType: contentType,
		ContentID:   contentID,
		Snippet:     snippet,
		IsFlagged:   true,
		Severity:    result.Severity,
		Categories:  result.Categories,
		Reasons:     result.Reasons,
		Score:       result.Score,
		ChurchID:    churchID,
		FlaggedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return err
	}

	obs.ContentFlagged(string(result.Severity))
	return nil
}
