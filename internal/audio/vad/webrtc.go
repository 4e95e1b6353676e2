package vad

import (
	"fmt"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

// WebRTCEngine backs sessions with the WebRTC voice-activity detector.
// Aggressiveness mode 0 is the least aggressive setting: it classifies
// borderline frames as speech, which errs toward longer utterances rather
// than clipped ones.
type WebRTCEngine struct {
	Mode int
}

var _ Engine = (*WebRTCEngine)(nil)

// NewSession implements Engine.
func (e *WebRTCEngine) NewSession(cfg Config) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	v, err := webrtcvad.New()
	if err != nil {
		return nil, fmt.Errorf("vad: create webrtc detector: %w", err)
	}
	if err := v.SetMode(e.Mode); err != nil {
		return nil, fmt.Errorf("vad: set mode %d: %w", e.Mode, err)
	}

	return &webrtcSession{vad: v, cfg: cfg, buf: make([]byte, cfg.FrameSamples()*2)}, nil
}

type webrtcSession struct {
	vad *webrtcvad.VAD
	cfg Config
	buf []byte
}

func (s *webrtcSession) IsSpeech(frame []int16) (bool, error) {
	if len(frame) != s.cfg.FrameSamples() {
		return false, fmt.Errorf("vad: frame has %d samples, want %d", len(frame), s.cfg.FrameSamples())
	}
	for i, sample := range frame {
		s.buf[i*2] = byte(sample)
		s.buf[i*2+1] = byte(sample >> 8)
	}
	return s.vad.Process(s.cfg.SampleRate, s.buf)
}

// Reset is a no-op; the WebRTC detector is stateless between frames.
func (s *webrtcSession) Reset() {}

func (s *webrtcSession) Close() error {
	return nil
}
