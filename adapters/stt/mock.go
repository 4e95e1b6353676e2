package stt

import (
	"context"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/repositories"
)

// MockTranscriber is a placeholder used when no speech credentials are
// configured. It returns canned text sized to the audio so the dialog loop
// can be exercised end to end without a backend.
type MockTranscriber struct {
	logger *zap.Logger
}

var _ repositories.Transcriber = (*MockTranscriber)(nil)

// NewMockTranscriber creates a new mock transcriber.
func NewMockTranscriber(logger *zap.Logger) *MockTranscriber {
	return &MockTranscriber{logger: logger}
}

// Transcribe implements repositories.Transcriber.
func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, config repositories.AudioConfig) (string, error) {
	m.logger.Info("Mock transcription", zap.Int("audioBytes", len(audio)))

	switch {
	case len(audio) > 200000:
		return "tell me something interesting about today", nil
	case len(audio) > 50000:
		return "what are the latest news headlines", nil
	default:
		return "hello there", nil
	}
}
