// Package moderation screens user-submitted text for policy violations
// using keyword pattern matching. Matching is substring based so word
// stems ("discriminat") catch inflected forms.
package moderation

import (
	"context"
	"log/slog"
	"strings"

	"shepherd/internal/domain/models"
)

var hateSpeechPatterns = []string{
	"hate", "racist", "bigot", "nazi", "antisemit",
	"discriminat", "supremac",
}

var violencePatterns = []string{
	"kill", "murder", "attack", "hurt", "destroy",
	"violent", "weapon", "gun", "bomb",
}

var sexualPatterns = []string{
	"explicit", "porn", "sexual", "xxx", "nude",
}

// Scanner implements the ContentScanner interface with local keyword
// analysis. Scoring is additive per detected category, capped at 1.
type Scanner struct {
	logger *slog.Logger
}

// NewScanner creates a scanner.
func NewScanner(logger *slog.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// Scan analyzes content and grades it.
func (s *Scanner) Scan(ctx context.Context, content string) (*models.ModerationResult, error) {
	lower := strings.ToLower(content)

	var categories []models.FlagCategory
	var reasons []string
	score := 0.0

	if containsAny(lower, hateSpeechPatterns) {
		categories = append(categories, models.CategoryHate)
		reasons = append(reasons, "Potential hate speech detected")
		score += 0.7
	}
	if containsAny(lower, violencePatterns) {
		categories = append(categories, models.CategoryViolence)
		reasons = append(reasons, "Potential violent content detected")
		score += 0.5
	}
	if containsAny(lower, sexualPatterns) {
		categories = append(categories, models.CategorySexual)
		reasons = append(reasons, "Potential inappropriate sexual content detected")
		score += 0.6
	}

	if score > 1 {
		score = 1
	}

	severity := models.SeverityNone
	switch {
	case score > 0.8:
		severity = models.SeverityHigh
	case score > 0.5:
		severity = models.SeverityMedium
	case score > 0.2:
		severity = models.SeverityLow
	}

	result := &models.ModerationResult{
		IsFlagged:  score > 0.5,
		Severity:   severity,
		Categories: categories,
		Reasons:    reasons,
		Score:      score,
	}

	if result.IsFlagged {
		s.logger.Debug("content flagged",
			"severity", severity,
			"score", score,
			"categories", len(categories),
		)
	}

	return result, nil
}

// Blocks reports whether a scan result should stop acceptance of new
// content. Medium and high severity block.
func Blocks(result *models.ModerationResult) bool {
	return result.Severity == models.SeverityMedium || result.Severity == models.SeverityHigh
}

func containsAny(content string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(content, p) {
			return true
		}
	}
	return false
}
