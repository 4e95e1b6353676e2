package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const (
	defaultGeminiModel  = "gemini-2.0-flash"
	defaultLLMTimeout   = 30 * time.Second
	completeMaxTokens   = 64
	respondMaxTokens    = 256
	generateMaxAttempts = 3
)

// Gemini implements LanguageModel and VisionModel using Google's Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

var (
	_ repositories.LanguageModel = (*Gemini)(nil)
	_ repositories.VisionModel   = (*Gemini)(nil)
)

// GeminiConfig configures the Gemini adapter.
type GeminiConfig struct {
	APIKey  string
	Model   string        // defaults to gemini-2.0-flash
	Timeout time.Duration // per-call request timeout
}

// NewGemini creates a new Gemini language model adapter.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultLLMTimeout
	}

	return &Gemini{client: client, model: model, timeout: timeout, logger: logger}, nil
}

// Complete implements repositories.LanguageModel with deterministic settings
// suited to classification prompts.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0)),
		MaxOutputTokens: completeMaxTokens,
	}
	return g.generate(ctx, genai.Text(prompt), config)
}

// Respond implements repositories.LanguageModel.
func (g *Gemini) Respond(ctx context.Context, system string, window entities.History, input string) (string, error) {
	var contents []*genai.Content
	// No separate system role on this path; the instruction rides as the
	// first user content.
	contents = append(contents, genai.NewContentFromText(system, genai.RoleUser))
	contents = append(contents, historyToContents(window)...)
	contents = append(contents, genai.NewContentFromText(input, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.7)),
		MaxOutputTokens: respondMaxTokens,
	}
	return g.generate(ctx, contents, config)
}

// DescribeImage implements repositories.VisionModel.
func (g *Gemini) DescribeImage(ctx context.Context, instruction string, imagePNG []byte) (string, error) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(imagePNG, "image/png"),
		genai.NewPartFromText(instruction),
	}, genai.RoleUser)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.2)),
		MaxOutputTokens: 1024,
	}
	return g.generate(ctx, []*genai.Content{content}, config)
}

func (g *Gemini) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var response *genai.GenerateContentResponse
	var err error
	for attempt := 0; attempt < generateMaxAttempts; attempt++ {
		response, err = g.client.Models.GenerateContent(ctx, g.model, contents, config)
		if err == nil {
			break
		}
		g.logger.Warn("Gemini generate failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		if attempt < generateMaxAttempts-1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt+1) * time.Second):
			}
		}
	}
	if err != nil {
		return "", fmt.Errorf("llm: gemini generate: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("llm: gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// historyToContents converts conversation turns to Gemini content.
func historyToContents(window entities.History) []*genai.Content {
	var contents []*genai.Content
	for _, turn := range window {
		role := genai.RoleUser
		if turn.Role == entities.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, genai.Role(role)))
	}
	return contents
}
