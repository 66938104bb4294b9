package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shepherd/internal/domain/services"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1"
	elevenLabsModelID = "eleven_turbo_v2"
)

// voiceTable maps gender/accent/style to pre-selected ElevenLabs voices.
var voiceTable = map[string]map[string]map[string]string{
	"male": {
		"american": {
			"conversational": "21m00Tcm4TlvDq8ikWAM", // Josh
			"narrative":      "TxGEqnHWrfWFTfGW9XjX", // Arnold
			"preaching":      "g5CIjZEefAph4nQFvHAz", // Daniel
		},
		"british": {
			"conversational": "pNInz6obpgDQGcFmaJgB", // Adam
			"narrative":      "SOYHLrjzK2X1ezoPC6cr", // Thomas
			"preaching":      "ODq5zmih8GrVes37Dizd", // Harry
		},
	},
	"female": {
		"american": {
			"conversational": "EXAVITQu4vr4xnSDxMaL", // Sarah
			"narrative":      "21m00Tcm4TlvDq8ikWAM", // Rachel
			"preaching":      "D38z5RcWu1voky8WS1ja", // Bella
		},
		"british": {
			"conversational": "oWAxZDx7w5VEj9dCyTzz", // Grace
			"narrative":      "MF3mGyEYCl7XYWbV9V6O", // Emily
			"preaching":      "jBpfuIE2acCO8z3wKNLl", // Charlotte
		},
	},
}

const defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// ElevenLabsClient implements SpeechSynthesizer. Rendered audio is stored
// as MP3 files under audioDir and referenced by /audio/ URLs.
type ElevenLabsClient struct {
	apiKey     string
	audioDir   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewElevenLabsClient creates a client and ensures the audio directory
// exists.
func NewElevenLabsClient(apiKey, audioDir string, logger *slog.Logger) (*ElevenLabsClient, error) {
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio directory: %w", err)
	}
	return &ElevenLabsClient{
		apiKey:   apiKey,
		audioDir: audioDir,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}, nil
}

type ttsPayload struct {
	Text          string      `json:"text"`
	ModelID       string      `json:"model_id"`
	VoiceSettings ttsSettings `json:"voice_settings"`
}

type ttsSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Synthesize renders text to speech and stores the resulting MP3.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string, opts *services.TTSOptions) (*services.TTSResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("missing ElevenLabs API key")
	}
	if opts == nil {
		opts = &services.TTSOptions{}
	}

	voiceID := lookupVoice(opts)

	body, err := json.Marshal(ttsPayload{
		Text:    text,
		ModelID: elevenLabsModelID,
		VoiceSettings: ttsSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
			Style:           styleValue(opts.Style),
			UseSpeakerBoost: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal tts payload: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", elevenLabsBaseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build tts request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text to speech: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("text to speech: status %d: %s", resp.StatusCode, snippet)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	filename := fmt.Sprintf("tts_%d.mp3", time.Now().UnixMilli())
	if err := os.WriteFile(filepath.Join(c.audioDir, filename), audio, 0o644); err != nil {
		return nil, fmt.Errorf("save audio: %w", err)
	}

	// Duration is an estimate at 150 spoken words per minute.
	wordCount := countWords(text)
	duration := int(float64(wordCount) / 150 * 60)

	c.logger.Info("speech synthesized",
		"voice_id", voiceID,
		"word_count", wordCount,
		"duration_seconds", duration,
		"file", filename,
	)

	return &services.TTSResult{
		AudioURL:        "/audio/" + filename,
		DurationSeconds: duration,
		WordCount:       wordCount,
	}, nil
}

func lookupVoice(opts *services.TTSOptions) string {
	gender := opts.Gender
	if gender == "" {
		gender = "male"
	}
	accent := opts.Accent
	if accent == "" {
		accent = "american"
	}
	style := opts.Style
	if style == "" {
		style = "conversational"
	}

	if byAccent, ok := voiceTable[gender]; ok {
		if byStyle, ok := byAccent[accent]; ok {
			if id, ok := byStyle[style]; ok {
				return id
			}
		}
	}
	return defaultVoiceID
}

func styleValue(style string) float64 {
	switch style {
	case "preaching":
		return 0.8
	case "narrative":
		return 0.5
	default:
		return 0.3
	}
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
