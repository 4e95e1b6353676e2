package vad

import (
	"fmt"
	"math"
)

// Default thresholds for the energy detector. An RMS around 250-300 on a
// 16-bit scale sits above typical room noise but below quiet speech onset.
const (
	defaultSpeechRMS = 280.0
	noiseFloorAlpha  = 0.05
)

// EnergyEngine is a dependency-free RMS detector. It tracks an exponential
// noise floor and flags frames whose RMS clears both the floor margin and an
// absolute threshold. It is less accurate than the WebRTC detector and exists
// as a fallback for builds without the CGO binding, and for tests.
type EnergyEngine struct {
	// SpeechRMS overrides the absolute RMS threshold when > 0.
	SpeechRMS float64
}

var _ Engine = (*EnergyEngine)(nil)

// NewSession implements Engine.
func (e *EnergyEngine) NewSession(cfg Config) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	threshold := e.SpeechRMS
	if threshold <= 0 {
		threshold = defaultSpeechRMS
	}
	return &energySession{cfg: cfg, threshold: threshold}, nil
}

type energySession struct {
	cfg        Config
	threshold  float64
	noiseFloor float64
	primed     bool
}

func (s *energySession) IsSpeech(frame []int16) (bool, error) {
	if len(frame) != s.cfg.FrameSamples() {
		return false, fmt.Errorf("vad: frame has %d samples, want %d", len(frame), s.cfg.FrameSamples())
	}

	var sum float64
	for _, sample := range frame {
		v := float64(sample)
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(frame)))

	if !s.primed {
		s.noiseFloor = rms
		s.primed = true
	}

	speech := rms > s.threshold && rms > s.noiseFloor*2

	// Only silence updates the floor, so sustained speech cannot drag it up.
	if !speech {
		s.noiseFloor = (1-noiseFloorAlpha)*s.noiseFloor + noiseFloorAlpha*rms
	}
	return speech, nil
}

func (s *energySession) Reset() {
	s.noiseFloor = 0
	s.primed = false
}

func (s *energySession) Close() error {
	return nil
}
