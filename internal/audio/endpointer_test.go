package audio

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/internal/audio/vad"
)

// scriptedSource yields pre-built frames, then io.EOF.
type scriptedSource struct {
	frames [][]int16
	next   int
	closed bool
}

func (s *scriptedSource) ReadFrame() ([]int16, error) {
	if s.next >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}

func (s *scriptedSource) Close() error {
	s.closed = true
	return nil
}

// markerEngine classifies a frame as speech when its first sample is non-zero.
type markerEngine struct{}

func (markerEngine) NewSession(cfg vad.Config) (vad.Session, error) {
	return markerSession{}, nil
}

type markerSession struct{}

func (markerSession) IsSpeech(frame []int16) (bool, error) {
	return len(frame) > 0 && frame[0] != 0, nil
}

func (markerSession) Reset()       {}
func (markerSession) Close() error { return nil }

func speechFrame() []int16 {
	f := make([]int16, FrameSamples)
	f[0] = 1000
	return f
}

func silentFrame() []int16 {
	return make([]int16, FrameSamples)
}

func repeatFrames(frame func() []int16, n int) [][]int16 {
	out := make([][]int16, n)
	for i := range out {
		out[i] = frame()
	}
	return out
}

func newTestEndpointer(source FrameSource, opts ...Option) *Endpointer {
	open := func() (FrameSource, error) { return source, nil }
	return NewEndpointer(open, markerEngine{}, zap.NewNop(), opts...)
}

func TestListenNoSpeechSentinel(t *testing.T) {
	source := &scriptedSource{frames: repeatFrames(silentFrame, 400)}
	e := newTestEndpointer(source)

	_, err := e.Listen(context.Background())
	if !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("Expected ErrNoSpeech, got %v", err)
	}
	if !source.closed {
		t.Error("Capture device should be closed after listen")
	}
}

func TestListenEmptyDeviceIsNoSpeech(t *testing.T) {
	e := newTestEndpointer(&scriptedSource{})

	if _, err := e.Listen(context.Background()); !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("Expected ErrNoSpeech for a device yielding zero frames, got %v", err)
	}
}

func TestListenFinalizesOnTrailingSilence(t *testing.T) {
	// One speech frame followed by unbounded silence. With the 3s timeout,
	// a 20ms frame and a 0.5 silence weight, the accumulator needs 301
	// silent frames to exceed the 150-frame limit: 302 frames total and 6s
	// of real trailing silence.
	frames := [][]int16{speechFrame()}
	frames = append(frames, repeatFrames(silentFrame, 1000)...)
	source := &scriptedSource{frames: frames}
	e := newTestEndpointer(source)

	utterance, err := e.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if got := len(utterance.Frames); got != 302 {
		t.Errorf("Expected 302 frames captured, got %d", got)
	}

	if got := TrailingSilence(DefaultSilenceTimeout); got != 6*time.Second {
		t.Errorf("TrailingSilence(3s) = %v, want 6s", got)
	}
}

func TestListenUtteranceCap(t *testing.T) {
	source := &scriptedSource{frames: repeatFrames(speechFrame, 5000)}
	e := newTestEndpointer(source, WithMaxUtterance(time.Second))

	utterance, err := e.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	// 1s cap at 20ms frames is 50 frames.
	if got := len(utterance.Frames); got != 50 {
		t.Errorf("Expected 50 frames at the cap, got %d", got)
	}
}

func TestListenCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := newTestEndpointer(&scriptedSource{frames: repeatFrames(silentFrame, 10)})

	if _, err := e.Listen(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestListenDeviceOpenFailureIsFatal(t *testing.T) {
	openErr := errors.New("device busy")
	e := NewEndpointer(func() (FrameSource, error) { return nil, openErr }, markerEngine{}, zap.NewNop())

	if _, err := e.Listen(context.Background()); !errors.Is(err, openErr) {
		t.Fatalf("Expected device open error, got %v", err)
	}
}

// failingSource fails every read after the first speech frame.
type failingSource struct {
	sent bool
}

func (s *failingSource) ReadFrame() ([]int16, error) {
	if !s.sent {
		s.sent = true
		return speechFrame(), nil
	}
	return nil, errors.New("overrun")
}

func (s *failingSource) Close() error { return nil }

func TestListenReadFailuresFinalizeAfterSpeech(t *testing.T) {
	e := newTestEndpointer(&failingSource{})

	utterance, err := e.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if len(utterance.Frames) != 1 {
		t.Errorf("Expected the single speech frame, got %d frames", len(utterance.Frames))
	}
}
