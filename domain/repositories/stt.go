package repositories

import "context"

// Transcriber abstracts speech recognition services. Calls are synchronous
// and blocking; implementations carry their own request timeout.
type Transcriber interface {
	// Transcribe converts little-endian 16-bit PCM audio to text. An empty
	// string with a nil error means the backend heard nothing intelligible.
	Transcribe(ctx context.Context, audio []byte, config AudioConfig) (string, error)
}

// AudioConfig describes the PCM audio handed to a transcriber.
type AudioConfig struct {
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Language   string `json:"language"`
}
