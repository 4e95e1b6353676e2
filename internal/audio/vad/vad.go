// Package vad wraps frame-level voice-activity detection behind a small
// engine interface so the endpointer can run against either the WebRTC VAD
// binding or a pure-Go energy detector.
package vad

import "fmt"

// Config holds the parameters for a VAD session. The frame duration must be
// one the underlying detector supports (WebRTC VAD accepts 10, 20 or 30 ms).
type Config struct {
	SampleRate  int
	FrameSizeMs int
}

// Validate reports configuration the detectors cannot operate on.
func (c Config) Validate() error {
	switch c.SampleRate {
	case 8000, 16000, 32000, 48000:
	default:
		return fmt.Errorf("vad: unsupported sample rate %d", c.SampleRate)
	}
	switch c.FrameSizeMs {
	case 10, 20, 30:
	default:
		return fmt.Errorf("vad: unsupported frame size %dms", c.FrameSizeMs)
	}
	return nil
}

// FrameSamples returns the number of samples in one analysis frame.
func (c Config) FrameSamples() int {
	return c.SampleRate * c.FrameSizeMs / 1000
}

// Session is a stateful per-stream detector. A session must not be shared
// across goroutines.
type Session interface {
	// IsSpeech classifies a single frame of mono 16-bit samples. The frame
	// must match the configured frame size exactly.
	IsSpeech(frame []int16) (bool, error)

	// Reset clears accumulated state between utterances.
	Reset()

	Close() error
}

// Engine creates detection sessions. Engines are safe for concurrent use.
type Engine interface {
	NewSession(cfg Config) (Session, error)
}
