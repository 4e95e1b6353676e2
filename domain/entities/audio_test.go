package entities

import (
	"testing"
	"time"
)

func TestUtterancePCMLittleEndian(t *testing.T) {
	u := Utterance{
		Frames:     []Frame{{Samples: []int16{0x0102, -2}}},
		SampleRate: 16000,
		Channels:   1,
	}

	pcm := u.PCM()
	want := []byte{0x02, 0x01, 0xFE, 0xFF}
	if len(pcm) != len(want) {
		t.Fatalf("Expected %d bytes, got %d", len(want), len(pcm))
	}
	for i := range want {
		if pcm[i] != want[i] {
			t.Errorf("Byte %d = %#x, want %#x", i, pcm[i], want[i])
		}
	}
}

func TestUtteranceDuration(t *testing.T) {
	// 50 frames of 320 samples at 16 kHz mono is exactly one second.
	frames := make([]Frame, 50)
	for i := range frames {
		frames[i] = Frame{Samples: make([]int16, 320)}
	}
	u := Utterance{Frames: frames, SampleRate: 16000, Channels: 1}

	if got := u.Duration(); got != time.Second {
		t.Errorf("Duration = %v, want %v", got, time.Second)
	}
}
