package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Player writes 16-bit PCM to the default output device. The output stream
// is opened per playback so the device is only held while speaking.
type Player struct{}

// NewPlayer returns a PortAudio-backed player. portaudio.Initialize must have
// been called first.
func NewPlayer() *Player {
	return &Player{}
}

// Play blocks until the buffer has been written or ctx is cancelled.
func (p *Player) Play(ctx context.Context, pcm []byte, sampleRate int) error {
	if len(pcm) == 0 {
		return nil
	}

	buf := make([]int16, FrameSamples)
	stream, err := portaudio.OpenDefaultStream(0, Channels, float64(sampleRate), len(buf), buf)
	if err != nil {
		return fmt.Errorf("audio: open default output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("audio: start output stream: %w", err)
	}
	defer stream.Stop()

	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(pcm[i*2]) | int16(pcm[i*2+1])<<8
	}

	for offset := 0; offset < len(samples); offset += len(buf) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n := copy(buf, samples[offset:])
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("audio: write output stream: %w", err)
		}
	}
	return nil
}
