package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	defaultGroqModel = "llama-3.3-70b-versatile"
)

// Groq implements LanguageModel against Groq's OpenAI-compatible chat API.
type Groq struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

var _ repositories.LanguageModel = (*Groq)(nil)

// GroqConfig configures the Groq adapter.
type GroqConfig struct {
	APIKey  string
	Model   string        // defaults to llama-3.3-70b-versatile
	Timeout time.Duration // per-call request timeout
}

// NewGroq creates a new Groq language model adapter.
func NewGroq(cfg GroqConfig, logger *zap.Logger) (*Groq, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: groq api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultGroqModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultLLMTimeout
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(groqBaseURL),
	)

	return &Groq{client: client, model: model, timeout: timeout, logger: logger}, nil
}

// Complete implements repositories.LanguageModel.
func (g *Groq) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(g.model),
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(completeMaxTokens),
	}
	return g.chat(ctx, params)
}

// Respond implements repositories.LanguageModel.
func (g *Groq) Respond(ctx context.Context, system string, window entities.History, input string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(window)+2)
	messages = append(messages, openai.SystemMessage(system))
	for _, turn := range window {
		if turn.Role == entities.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(turn.Content))
		} else {
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}
	messages = append(messages, openai.UserMessage(input))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(g.model),
		Messages:            messages,
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(respondMaxTokens),
	}
	return g.chat(ctx, params)
}

func (g *Groq) chat(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("llm: groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: groq returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	g.logger.Debug("Groq completion",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("textLength", len(text)))
	return text, nil
}
