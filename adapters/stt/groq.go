package stt

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/repositories"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	defaultWhisper   = "whisper-large-v3-turbo"
	transcribeWindow = 30 * time.Second
)

// GroqTranscriber implements Transcriber against Groq's OpenAI-compatible
// Whisper endpoint.
type GroqTranscriber struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

var _ repositories.Transcriber = (*GroqTranscriber)(nil)

// GroqConfig configures the Groq transcriber.
type GroqConfig struct {
	APIKey  string
	Model   string        // defaults to whisper-large-v3-turbo
	Timeout time.Duration // per-call request timeout
}

// NewGroqTranscriber creates a Whisper transcriber backed by Groq.
func NewGroqTranscriber(cfg GroqConfig, logger *zap.Logger) (*GroqTranscriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("stt: groq api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultWhisper
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = transcribeWindow
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(groqBaseURL),
	)

	return &GroqTranscriber{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Transcribe implements repositories.Transcriber.
func (g *GroqTranscriber) Transcribe(ctx context.Context, audio []byte, config repositories.AudioConfig) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	wav := encodeWAV(audio, config.SampleRate, config.Channels)

	start := time.Now()
	resp, err := g.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:    openai.AudioModel(g.model),
		File:     openai.File(bytes.NewReader(wav), "utterance.wav", "audio/wav"),
		Language: openai.String(config.Language),
	})
	if err != nil {
		return "", fmt.Errorf("stt: groq transcription: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	g.logger.Debug("Transcription completed",
		zap.Int("audioBytes", len(audio)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("textLength", len(text)))

	return text, nil
}
