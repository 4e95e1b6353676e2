package tts

import (
	"context"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/repositories"
	"github.com/aeroassist/aero/internal/audio"
)

// VoiceSpeaker synthesizes text and plays the PCM through the default
// output device.
type VoiceSpeaker struct {
	synthesizer repositories.SpeechSynthesizer
	player      *audio.Player
	sampleRate  int
	logger      *zap.Logger
}

var _ repositories.Speaker = (*VoiceSpeaker)(nil)

// NewVoiceSpeaker creates a speaker backed by the given synthesizer. The
// sample rate must match the synthesizer's PCM output format.
func NewVoiceSpeaker(synthesizer repositories.SpeechSynthesizer, player *audio.Player, sampleRate int, logger *zap.Logger) *VoiceSpeaker {
	if sampleRate <= 0 {
		sampleRate = audio.SampleRate
	}
	return &VoiceSpeaker{
		synthesizer: synthesizer,
		player:      player,
		sampleRate:  sampleRate,
		logger:      logger,
	}
}

// Say implements repositories.Speaker.
func (s *VoiceSpeaker) Say(ctx context.Context, text string) error {
	pcm, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	return s.player.Play(ctx, pcm, s.sampleRate)
}

// ConsoleSpeaker prints assistant speech instead of playing audio. Used when
// no synthesizer credentials are configured.
type ConsoleSpeaker struct {
	logger *zap.Logger
}

var _ repositories.Speaker = (*ConsoleSpeaker)(nil)

// NewConsoleSpeaker creates a speaker that logs instead of speaking.
func NewConsoleSpeaker(logger *zap.Logger) *ConsoleSpeaker {
	return &ConsoleSpeaker{logger: logger}
}

// Say implements repositories.Speaker.
func (s *ConsoleSpeaker) Say(ctx context.Context, text string) error {
	s.logger.Info("Assistant", zap.String("text", text))
	return nil
}
