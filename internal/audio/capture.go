package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Capture configuration. The 20ms mono frame at 16 kHz is both what the
// WebRTC detector expects and what the transcription backends want.
const (
	SampleRate   = 16000
	Channels     = 1
	FrameSizeMs  = 20
	FrameSamples = SampleRate * FrameSizeMs / 1000
)

// FrameSource yields fixed-size sample blocks from a capture device.
// ReadFrame may return a buffer reused across calls; callers that retain
// samples must copy them.
type FrameSource interface {
	ReadFrame() ([]int16, error)
	Close() error
}

// DeviceOpener opens a capture device. The endpointer opens a fresh device
// per listen call and closes it when the utterance is finalized, so the
// microphone is held only while actually listening.
type DeviceOpener func() (FrameSource, error)

// OpenCaptureDevice opens the default input device through PortAudio.
// portaudio.Initialize must have been called before the first open.
func OpenCaptureDevice() (FrameSource, error) {
	buf := make([]int16, FrameSamples)
	stream, err := portaudio.OpenDefaultStream(Channels, 0, float64(SampleRate), FrameSamples, buf)
	if err != nil {
		return nil, fmt.Errorf("audio: open default input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("audio: start input stream: %w", err)
	}
	return &captureDevice{stream: stream, buf: buf}, nil
}

type captureDevice struct {
	stream *portaudio.Stream
	buf    []int16
}

func (d *captureDevice) ReadFrame() ([]int16, error) {
	if err := d.stream.Read(); err != nil {
		return nil, err
	}
	return d.buf, nil
}

func (d *captureDevice) Close() error {
	d.stream.Stop()
	return d.stream.Close()
}
