// Package ai wraps the external generation APIs (OpenAI chat completions,
// ElevenLabs text-to-speech) behind the domain's collaborator interfaces.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"shepherd/internal/domain/services"
)

const openAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements SermonGenerator, VerseExplainer and
// PrayerResponder against the chat completions API.
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOpenAIClient creates a client. An empty model defaults to gpt-4o.
func NewOpenAIClient(apiKey, model string, logger *slog.Logger) *OpenAIClient {
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: openAIBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// complete sends one chat completion and returns the first choice's text.
func (c *OpenAIClient) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("missing OpenAI API key")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("chat completion: %s (%s)", parsed.Error.Message, parsed.Error.Type)
		}
		return "", fmt.Errorf("chat completion: unexpected status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	return parsed.Choices[0].Message.Content, nil
}

// GenerateSermon drafts a sermon from the structured prompt. The title is
// taken from the model's first line when it reads like a heading.
func (c *OpenAIClient) GenerateSermon(ctx context.Context, prompt *services.SermonPrompt) (*services.GeneratedSermon, error) {
	content, err := c.complete(ctx, buildSermonSystemPrompt(prompt), buildSermonUserPrompt(prompt), 0.7, 4000)
	if err != nil {
		return nil, fmt.Errorf("generate sermon: %w", err)
	}

	c.logger.Info("sermon generated", "model", c.model, "chars", len(content))

	return &services.GeneratedSermon{
		Title:   extractTitle(content),
		Content: content,
	}, nil
}

func buildSermonSystemPrompt(p *services.SermonPrompt) string {
	var b strings.Builder
	b.WriteString("You are an experienced pastoral assistant with deep theological knowledge and homiletic training. ")
	b.WriteString("Your task is to write a compelling, biblically-sound sermon")

	if p.Denomination != "" {
		fmt.Fprintf(&b, " aligned with %s traditions", p.Denomination)
	}
	if p.TheologicalFramework != "" {
		fmt.Fprintf(&b, " and following a %s theological framework", p.TheologicalFramework)
	}

	b.WriteString(".\n\nYour sermon should include:\n")
	b.WriteString("1. A strong introduction that establishes the biblical foundation and engages the audience\n")
	b.WriteString("2. Clear, well-organized main points derived directly from Scripture\n")
	b.WriteString("3. Biblical exegesis that is faithful to the original context\n")
	b.WriteString("4. Theological insights that connect Scripture to contemporary life")

	n := 5
	if p.IncludeIllustrations {
		fmt.Fprintf(&b, "\n%d. Relevant illustrations and stories that illuminate the message", n)
		n++
	}
	if p.IncludeApplicationPoints {
		fmt.Fprintf(&b, "\n%d. Practical application points that help listeners implement the message", n)
		n++
	}
	if p.IncludeClosingPrayer {
		fmt.Fprintf(&b, "\n%d. A meaningful closing prayer that reinforces the sermon's key points", n)
	}

	b.WriteString("\n\nEnsure your sermon:\n")
	b.WriteString("- Uses accessible language while maintaining theological accuracy\n")
	b.WriteString("- Balances scholarly insight with practical wisdom\n")
	b.WriteString("- Respects the historical and cultural context of Scripture\n")
	b.WriteString("- Addresses both the heart and mind of the listener\n")
	b.WriteString("- Cites Scripture using proper citation format")

	return b.String()
}

func buildSermonUserPrompt(p *services.SermonPrompt) string {
	var b strings.Builder
	b.WriteString("Please write a sermon")

	if p.Theme != "" {
		fmt.Fprintf(&b, " on the theme of %s", p.Theme)
	}

	if len(p.BibleVerses) == 1 {
		fmt.Fprintf(&b, " based on %s", p.BibleVerses[0])
		b.WriteString(". Include thoughtful exegesis of these passages, considering their historical and literary context")
	} else if len(p.BibleVerses) > 1 {
		last := len(p.BibleVerses) - 1
		fmt.Fprintf(&b, " based on %s and %s", strings.Join(p.BibleVerses[:last], ", "), p.BibleVerses[last])
		b.WriteString(". Include thoughtful exegesis of these passages, considering their historical and literary context")
	}

	if p.Audience != "" {
		fmt.Fprintf(&b, ". This sermon will be delivered to %s", p.Audience)
	}

	if p.Length != "" {
		words := "1500-2500"
		switch p.Length {
		case "short":
			words = "800-1200"
		case "long":
			words = "3000-4000"
		}
		fmt.Fprintf(&b, ". The sermon should be approximately %s words in length", words)
	}

	if p.Style != "" {
		fmt.Fprintf(&b, ". Use a %s preaching style", p.Style)
		switch p.Style {
		case "expository":
			b.WriteString(" that systematically explains the passage verse by verse")
		case "topical":
			b.WriteString(" that addresses the theme using multiple relevant scriptures")
		case "narrative":
			b.WriteString(" that tells the biblical story in an engaging way")
		case "practical":
			b.WriteString(" with clear, actionable application points")
		}
	}

	if p.AdditionalInstructions != "" {
		fmt.Fprintf(&b, ". %s", p.AdditionalInstructions)
	}

	b.WriteString(".\n\nFormat the sermon in a clean, reader-friendly structure with appropriate headings and subheadings. ")
	b.WriteString("Include a meaningful title. Make sure the sermon is engaging, biblically faithful, and applicable to contemporary life.")

	return b.String()
}

// extractTitle treats a short, period-free first line as the title,
// stripping markdown heading markers.
func extractTitle(content string) string {
	firstLine, _, _ := strings.Cut(content, "\n")
	firstLine = strings.TrimSpace(firstLine)
	if firstLine != "" && len(firstLine) < 100 && !strings.Contains(firstLine, ".") {
		return strings.TrimSpace(strings.TrimLeft(firstLine, "# "))
	}
	return "AI Generated Sermon"
}

// ExplainVerses produces one explanation per verse reference. Verses are
// processed individually for focused explanations.
func (c *OpenAIClient) ExplainVerses(ctx context.Context, verses []string, opts *services.ExplanationOptions) (map[string]string, error) {
	if opts == nil {
		opts = &services.ExplanationOptions{}
	}

	system := buildExplanationSystemPrompt(opts)
	explanations := make(map[string]string, len(verses))

	for _, verse := range verses {
		content, err := c.complete(ctx, system, buildExplanationUserPrompt(verse, opts), 0.6, 2000)
		if err != nil {
			return nil, fmt.Errorf("explain %s: %w", verse, err)
		}
		explanations[verse] = content
	}

	return explanations, nil
}

func buildExplanationSystemPrompt(opts *services.ExplanationOptions) string {
	var b strings.Builder
	b.WriteString("You are a biblical scholar and theological educator with expertise in hermeneutics, biblical languages, and practical application of Scripture.")

	if opts.TargetAudience != "" {
		fmt.Fprintf(&b, " Your explanation should be tailored for %s.", opts.TargetAudience)
	}

	switch opts.Depth {
	case "basic":
		b.WriteString("\n\nProvide a simple, accessible explanation of the provided Bible verse. Focus on the core message and primary meaning.")
	case "academic":
		b.WriteString("\n\nProvide a scholarly, comprehensive analysis of the provided Bible verse. Include linguistic nuances, historical-cultural context, and theological significance.")
	default:
		b.WriteString("\n\nProvide a thorough, balanced explanation of the provided Bible verse that includes both scholarly insights and practical applications.")
	}

	switch opts.Style {
	case "devotional":
		b.WriteString(" Your tone should be warm, personal, and spiritually nurturing.")
	case "practical":
		b.WriteString(" Your tone should be pragmatic, focusing on real-world applications and actionable insights.")
	default:
		b.WriteString(" Your tone should be informative and instructional, helping readers learn about the text's meaning.")
	}

	b.WriteString("\n\nYour explanation should include:\n")
	b.WriteString("1. The verse's context within the larger biblical narrative\n")
	b.WriteString("2. Key words or concepts and their meanings\n")
	b.WriteString("3. The main theological teachings or principles conveyed\n")
	b.WriteString("4. Historical and cultural background relevant to understanding the verse\n")
	b.WriteString("5. Relevant cross-references to other Scripture passages that illuminate this verse\n")
	b.WriteString("6. Practical applications and relevance for contemporary life")

	return b.String()
}

func buildExplanationUserPrompt(verse string, opts *services.ExplanationOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please provide an explanation of %s", verse)

	if opts.Context != "" {
		fmt.Fprintf(&b, " in the context of a Bible study on %s", opts.Context)
	}

	switch opts.Depth {
	case "basic":
		b.WriteString(". Keep the explanation accessible for newer Christians or those unfamiliar with the Bible.")
	case "academic":
		b.WriteString(". Include original language insights, textual variants if relevant, and scholarly perspectives.")
	default:
		b.WriteString(". Balance scholarly insight with practical application for contemporary believers.")
	}

	b.WriteString("\n\nPlease format your explanation with proper headings, paragraphs, and bullet points where appropriate to enhance readability.")

	return b.String()
}

// RespondToPrayer writes a short pastoral response and suggests related
// verses. The model is asked for a fixed layout so the verse list can be
// parsed from the tail of the reply.
func (c *OpenAIClient) RespondToPrayer(ctx context.Context, title, content string) (string, []string, error) {
	system := "You are a compassionate pastoral counselor. Write a brief, warm, scripturally grounded response " +
		"to the prayer request below. Offer comfort and encouragement without making promises on God's behalf. " +
		"End your reply with a final line of the exact form:\nRelated verses: <reference>; <reference>; <reference>"

	user := fmt.Sprintf("Prayer request titled %q:\n\n%s", title, content)

	reply, err := c.complete(ctx, system, user, 0.7, 1000)
	if err != nil {
		return "", nil, fmt.Errorf("respond to prayer: %w", err)
	}

	response, verses := splitPrayerReply(reply)
	return response, verses, nil
}

func splitPrayerReply(reply string) (string, []string) {
	idx := strings.LastIndex(reply, "Related verses:")
	if idx < 0 {
		return strings.TrimSpace(reply), nil
	}

	response := strings.TrimSpace(reply[:idx])
	var verses []string
	for _, v := range strings.Split(reply[idx+len("Related verses:"):], ";") {
		if v = strings.TrimSpace(v); v != "" {
			verses = append(verses, v)
		}
	}
	return response, verses
}
