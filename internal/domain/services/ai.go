package services

import (
	"context"

	"shepherd/internal/domain/models"
)

// SermonPrompt is the fully resolved input to AI sermon drafting.
type SermonPrompt struct {
	Theme                    string
	BibleVerses              []string
	Audience                 string
	Length                   string
	Style                    string
	Denomination             string
	TheologicalFramework     string
	IncludeIllustrations     bool
	IncludeApplicationPoints bool
	IncludeClosingPrayer     bool
	AdditionalInstructions   string
}

// GeneratedSermon is the drafting result. Title is extracted from the
// model output; Content is the full sermon body.
type GeneratedSermon struct {
	Title   string
	Content string
}

// SermonGenerator drafts sermons from a structured prompt.
type SermonGenerator interface {
	GenerateSermon(ctx context.Context, prompt *SermonPrompt) (*GeneratedSermon, error)
}

// ExplanationOptions tune verse explanation output.
type ExplanationOptions struct {
	Depth          string
	Style          string
	TargetAudience string
	Context        string
}

// VerseExplainer produces per-verse explanations keyed by reference.
type VerseExplainer interface {
	ExplainVerses(ctx context.Context, verses []string, opts *ExplanationOptions) (map[string]string, error)
}

// PrayerResponder writes a pastoral response to a prayer request and
// suggests related verses.
type PrayerResponder interface {
	RespondToPrayer(ctx context.Context, title, content string) (response string, verses []string, err error)
}

// TTSOptions select a synthesis voice.
type TTSOptions struct {
	Gender string // male, female
	Accent string // american, british
	Style  string // conversational, narrative, preaching
}

// TTSResult describes stored synthesized audio.
type TTSResult struct {
	AudioURL        string
	DurationSeconds int
	WordCount       int
}

// SpeechSynthesizer renders text to stored audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, opts *TTSOptions) (*TTSResult, error)
}

// ContentScanner screens text for policy violations.
type ContentScanner interface {
	Scan(ctx context.Context, content string) (*models.ModerationResult, error)
}
