package entities

import "time"

// Frame is a single fixed-duration block of PCM samples as read from the
// capture device. Frames are ephemeral; the endpointer consumes them
// immediately and only retained frames survive inside an Utterance.
type Frame struct {
	Samples []int16
}

// Utterance is the contiguous captured audio between detected speech onset
// and the trailing-silence timeout. A non-empty utterance contains at least
// one frame the voice-activity detector classified as speech.
type Utterance struct {
	Frames     []Frame
	SampleRate int
	Channels   int
}

// Duration reports the wall-clock length of the captured audio.
func (u *Utterance) Duration() time.Duration {
	if u.SampleRate <= 0 {
		return 0
	}
	samples := 0
	for _, f := range u.Frames {
		samples += len(f.Samples)
	}
	return time.Duration(samples) * time.Second / time.Duration(u.SampleRate*u.Channels)
}

// PCM flattens the utterance into little-endian 16-bit PCM bytes, the format
// every transcription backend consumes.
func (u *Utterance) PCM() []byte {
	size := 0
	for _, f := range u.Frames {
		size += len(f.Samples) * 2
	}
	out := make([]byte, 0, size)
	for _, f := range u.Frames {
		for _, s := range f.Samples {
			out = append(out, byte(s), byte(s>>8))
		}
	}
	return out
}

// TranscriptOutcome distinguishes why a transcript is absent. Downstream
// control flow only looks at Present; the outcome tag exists for logging.
type TranscriptOutcome string

const (
	TranscriptOK       TranscriptOutcome = "ok"
	TranscriptNoSpeech TranscriptOutcome = "no_speech"
	TranscriptFailed   TranscriptOutcome = "failed"
	TranscriptTooShort TranscriptOutcome = "too_short"
)

// TranscriptResult unifies "no speech captured" and "transcription failed or
// empty" into a single present/absent view for the dialog loop.
type TranscriptResult struct {
	Text    string
	Present bool
	Outcome TranscriptOutcome
}
