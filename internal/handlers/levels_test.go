package handlers

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
)

type recordingRunner struct {
	commands [][]string
	err      error
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) error {
	r.commands = append(r.commands, append([]string{name}, args...))
	return r.err
}

func (r *recordingRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.commands = append(r.commands, append([]string{name}, args...))
	return nil, r.err
}

func TestDescribeChange(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		name string
		adj  entities.LevelAdjustment
		want string
	}{
		{"absolute", entities.LevelAdjustment{Absolute: intPtr(70)}, "Setting the volume to 70 percent."},
		{"absolute clamped", entities.LevelAdjustment{Absolute: intPtr(150)}, "Setting the volume to 100 percent."},
		{"increase", entities.LevelAdjustment{Delta: intPtr(20)}, "Turning the volume up by 20 percent."},
		{"decrease", entities.LevelAdjustment{Delta: intPtr(-10)}, "Turning the volume down by 10 percent."},
		{"no value", entities.LevelAdjustment{}, "Leaving the volume as it is."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeChange("volume", tt.adj); got != tt.want {
				t.Errorf("describeChange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct{ in, want int }{{-5, 0}, {0, 0}, {50, 50}, {100, 100}, {130, 100}}
	for _, tt := range tests {
		if got := clampPercent(tt.in); got != tt.want {
			t.Errorf("clampPercent(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVolumeHandleNoValue(t *testing.T) {
	handler := NewVolume(&recordingRunner{}, zap.NewNop())

	response, err := handler.Handle(context.Background(), "do something with the volume")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if response == nil || *response == "" {
		t.Fatal("Expected a clarification response")
	}
}

func TestVolumeHandleMute(t *testing.T) {
	runner := &recordingRunner{}
	handler := NewVolume(runner, zap.NewNop())

	response, err := handler.Handle(context.Background(), "mute the sound")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if response == nil || *response != "Muted." {
		t.Errorf("Expected mute confirmation, got %v", response)
	}
	if len(runner.commands) != 1 {
		t.Errorf("Expected one platform command, got %d", len(runner.commands))
	}
}
