package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
	"github.com/aeroassist/aero/internal/audio"
)

// Listener couples utterance capture with transcription and normalizes the
// result for the dialog loop. The therapy sub-dialogue reuses it for its own
// listen/respond cycle.
type Listener struct {
	source      repositories.UtteranceSource
	transcriber repositories.Transcriber
	logger      *zap.Logger
}

// NewListener creates a Listener.
func NewListener(source repositories.UtteranceSource, transcriber repositories.Transcriber, logger *zap.Logger) *Listener {
	return &Listener{source: source, transcriber: transcriber, logger: logger}
}

// NextUtterance captures one endpointed utterance and transcribes it. Absent
// speech, transcription failure and too-short transcripts all come back as
// Present=false with a distinguishing outcome; only device or context errors
// surface as err.
func (l *Listener) NextUtterance(ctx context.Context) (entities.TranscriptResult, error) {
	utterance, err := l.source.Listen(ctx)
	if err != nil {
		if errors.Is(err, audio.ErrNoSpeech) {
			return entities.TranscriptResult{Outcome: entities.TranscriptNoSpeech}, nil
		}
		return entities.TranscriptResult{}, err
	}

	text, err := l.transcriber.Transcribe(ctx, utterance.PCM(), repositories.AudioConfig{
		SampleRate: utterance.SampleRate,
		Channels:   utterance.Channels,
		Language:   "en",
	})
	if err != nil {
		l.logger.Warn("Transcription failed", zap.Error(err))
		return entities.TranscriptResult{Outcome: entities.TranscriptFailed}, nil
	}

	text = strings.TrimSpace(text)
	if len(strings.Fields(text)) <= 1 {
		l.logger.Debug("Transcript too short to act on", zap.String("text", text))
		return entities.TranscriptResult{Text: text, Outcome: entities.TranscriptTooShort}, nil
	}

	l.logger.Info("Heard",
		zap.String("text", text),
		zap.Duration("audio", utterance.Duration()))
	return entities.TranscriptResult{Text: text, Present: true, Outcome: entities.TranscriptOK}, nil
}
