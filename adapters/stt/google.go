package stt

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/repositories"
)

// GoogleTranscriber implements Transcriber using Google Cloud Speech-to-Text
// batch recognition. Utterances are short (bounded by the endpointer cap), so
// the synchronous Recognize call is sufficient; no streaming session needed.
type GoogleTranscriber struct {
	client  *speech.Client
	timeout time.Duration
	logger  *zap.Logger
}

var _ repositories.Transcriber = (*GoogleTranscriber)(nil)

// NewGoogleTranscriber creates the client once; credentials come from the
// ambient Google application-default credential chain.
func NewGoogleTranscriber(ctx context.Context, timeout time.Duration, logger *zap.Logger) (*GoogleTranscriber, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("stt: create google speech client: %w", err)
	}
	if timeout == 0 {
		timeout = transcribeWindow
	}
	return &GoogleTranscriber{client: client, timeout: timeout, logger: logger}, nil
}

// Transcribe implements repositories.Transcriber.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, config repositories.AudioConfig) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	language := config.Language
	if language == "" {
		language = "en-US"
	}

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(config.SampleRate),
			AudioChannelCount: int32(config.Channels),
			LanguageCode:      language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("stt: google recognize: %w", err)
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(result.Alternatives[0].Transcript)
	}

	text := strings.TrimSpace(sb.String())
	g.logger.Debug("Transcription completed",
		zap.Int("audioBytes", len(audio)),
		zap.Int("results", len(resp.Results)),
		zap.Int("textLength", len(text)))
	return text, nil
}

// Close releases the underlying gRPC connection.
func (g *GoogleTranscriber) Close() error {
	return g.client.Close()
}
