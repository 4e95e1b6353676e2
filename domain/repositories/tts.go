package repositories

import "context"

// SpeechSynthesizer converts text to 16-bit little-endian PCM audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Speaker voices text to the user. Speech output is best-effort: callers log
// a returned error and carry on, a failed playback never ends the session.
type Speaker interface {
	Say(ctx context.Context, text string) error
}
