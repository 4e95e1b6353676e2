package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/internal/audio/vad"
)

// Endpointing parameters.
//
// Each silent frame adds silenceFrameWeight to an accumulator that any speech
// frame resets; the utterance is finalized once the accumulator exceeds the
// frame-count equivalent of SilenceTimeout. With a weight of 0.5 the real
// trailing silence needed to finalize is SilenceTimeout/silenceFrameWeight of
// wall-clock time (6s for the 3s default). TrailingSilence makes that
// derivation explicit; endpointer_test pins it.
const (
	silenceFrameWeight = 0.5

	DefaultSilenceTimeout = 3 * time.Second

	// DefaultMaxUtterance bounds memory and latency when the detector sees
	// continuous speech and the silence accumulator never fills.
	DefaultMaxUtterance = 60 * time.Second

	// consecutive read failures tolerated before the capture is abandoned
	readErrorBudget = 5
)

// ErrNoSpeech reports a completed capture in which no frame classified as
// speech. Callers retry listening instead of transcribing.
var ErrNoSpeech = errors.New("audio: no speech detected")

// TrailingSilence returns the wall-clock silence that finalizes an utterance
// for a given accumulator timeout.
func TrailingSilence(silenceTimeout time.Duration) time.Duration {
	return time.Duration(float64(silenceTimeout) / silenceFrameWeight)
}

// Endpointer turns the live frame stream into discrete utterances using
// per-frame voice-activity detection.
type Endpointer struct {
	open           DeviceOpener
	engine         vad.Engine
	logger         *zap.Logger
	silenceTimeout time.Duration
	maxUtterance   time.Duration
}

// Option adjusts endpointer timing.
type Option func(*Endpointer)

// WithSilenceTimeout overrides the silence accumulator timeout.
func WithSilenceTimeout(d time.Duration) Option {
	return func(e *Endpointer) { e.silenceTimeout = d }
}

// WithMaxUtterance overrides the hard utterance length cap.
func WithMaxUtterance(d time.Duration) Option {
	return func(e *Endpointer) { e.maxUtterance = d }
}

// NewEndpointer creates an endpointer over the given device opener and VAD
// engine.
func NewEndpointer(open DeviceOpener, engine vad.Engine, logger *zap.Logger, opts ...Option) *Endpointer {
	e := &Endpointer{
		open:           open,
		engine:         engine,
		logger:         logger,
		silenceTimeout: DefaultSilenceTimeout,
		maxUtterance:   DefaultMaxUtterance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Listen captures one utterance. It blocks until trailing silence finalizes
// the capture, the utterance cap is hit, or ctx is cancelled. A capture in
// which the detector never saw speech returns ErrNoSpeech, never a
// zero-length utterance. Failing to open the device is fatal to the call.
func (e *Endpointer) Listen(ctx context.Context) (*entities.Utterance, error) {
	source, err := e.open()
	if err != nil {
		return nil, fmt.Errorf("audio: open capture device: %w", err)
	}
	defer source.Close()

	session, err := e.engine.NewSession(vad.Config{SampleRate: SampleRate, FrameSizeMs: FrameSizeMs})
	if err != nil {
		return nil, fmt.Errorf("audio: start vad session: %w", err)
	}
	defer session.Close()

	frameDuration := time.Duration(FrameSizeMs) * time.Millisecond
	silenceLimit := float64(e.silenceTimeout / frameDuration)
	maxFrames := int(e.maxUtterance / frameDuration)

	var frames []entities.Frame
	var silence float64
	sawSpeech := false
	readFailures := 0

	e.logger.Debug("Listening for utterance")

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		samples, err := source.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			readFailures++
			if readFailures > readErrorBudget {
				if sawSpeech {
					e.logger.Warn("Capture device failing, finalizing utterance early", zap.Error(err))
					break
				}
				return nil, fmt.Errorf("audio: capture device failed: %w", err)
			}
			e.logger.Warn("Skipping unreadable frame", zap.Error(err), zap.Int("failures", readFailures))
			continue
		}
		readFailures = 0

		// The device reuses its buffer; retained frames need their own copy.
		frame := make([]int16, len(samples))
		copy(frame, samples)

		speech, verr := session.IsSpeech(frame)
		if verr != nil {
			e.logger.Warn("VAD error, treating frame as silence", zap.Error(verr))
			speech = false
		}

		if speech {
			silence = 0
			sawSpeech = true
		} else {
			silence += silenceFrameWeight
		}

		frames = append(frames, entities.Frame{Samples: frame})

		if silence > silenceLimit {
			break
		}
		if len(frames) >= maxFrames {
			e.logger.Warn("Utterance cap reached, finalizing",
				zap.Duration("cap", e.maxUtterance))
			break
		}
	}

	if !sawSpeech {
		return nil, ErrNoSpeech
	}

	utterance := &entities.Utterance{Frames: frames, SampleRate: SampleRate, Channels: Channels}
	e.logger.Debug("Utterance finalized",
		zap.Int("frames", len(frames)),
		zap.Duration("duration", utterance.Duration()))
	return utterance, nil
}
