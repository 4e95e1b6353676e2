package handlers

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
	"github.com/aeroassist/aero/usecase"
)

// Brightness adjusts screen brightness through the platform's control tool.
type Brightness struct {
	runner CommandRunner
	logger *zap.Logger
}

var _ repositories.Handler = (*Brightness)(nil)

// NewBrightness creates the brightness handler.
func NewBrightness(runner CommandRunner, logger *zap.Logger) *Brightness {
	return &Brightness{runner: runner, logger: logger}
}

func (h *Brightness) Category() entities.IntentCategory { return entities.CategoryBrightness }

func (h *Brightness) Handle(ctx context.Context, utterance string) (*string, error) {
	adjustment := usecase.ParseLevelAdjustment(utterance)
	if adjustment.Delta == nil && adjustment.Absolute == nil {
		response := "Tell me how to change the brightness, like increase it by twenty or set it to fifty."
		return &response, nil
	}

	if err := h.apply(ctx, adjustment); err != nil {
		h.logger.Warn("Brightness command failed", zap.Error(err))
		response := "I couldn't change the brightness on this system."
		return &response, nil
	}

	response := describeChange("brightness", adjustment)
	return &response, nil
}

func (h *Brightness) apply(ctx context.Context, adj entities.LevelAdjustment) error {
	switch runtime.GOOS {
	case "linux":
		if adj.Absolute != nil {
			return h.runner.Run(ctx, "brightnessctl", "set", fmt.Sprintf("%d%%", clampPercent(*adj.Absolute)))
		}
		if *adj.Delta >= 0 {
			return h.runner.Run(ctx, "brightnessctl", "set", fmt.Sprintf("+%d%%", *adj.Delta))
		}
		return h.runner.Run(ctx, "brightnessctl", "set", fmt.Sprintf("%d%%-", -*adj.Delta))
	case "darwin":
		// No first-party CLI; the common homebrew tool takes 0..1.
		if adj.Absolute != nil {
			return h.runner.Run(ctx, "brightness", fmt.Sprintf("%.2f", float64(clampPercent(*adj.Absolute))/100))
		}
		return unsupportedPlatform("relative brightness")
	default:
		return unsupportedPlatform("brightness control")
	}
}

// Volume adjusts output volume, including mute requests.
type Volume struct {
	runner CommandRunner
	logger *zap.Logger
}

var _ repositories.Handler = (*Volume)(nil)

// NewVolume creates the volume handler.
func NewVolume(runner CommandRunner, logger *zap.Logger) *Volume {
	return &Volume{runner: runner, logger: logger}
}

func (h *Volume) Category() entities.IntentCategory { return entities.CategoryVolume }

func (h *Volume) Handle(ctx context.Context, utterance string) (*string, error) {
	lowered := strings.ToLower(utterance)
	if strings.Contains(lowered, "mute") || strings.Contains(lowered, "silent") {
		if err := h.mute(ctx); err != nil {
			h.logger.Warn("Mute command failed", zap.Error(err))
			response := "I couldn't mute the sound on this system."
			return &response, nil
		}
		response := "Muted."
		return &response, nil
	}

	adjustment := usecase.ParseLevelAdjustment(utterance)
	if adjustment.Delta == nil && adjustment.Absolute == nil {
		response := "Tell me how to change the volume, like turn it up by twenty or set it to fifty."
		return &response, nil
	}

	if err := h.apply(ctx, adjustment); err != nil {
		h.logger.Warn("Volume command failed", zap.Error(err))
		response := "I couldn't change the volume on this system."
		return &response, nil
	}

	response := describeChange("volume", adjustment)
	return &response, nil
}

func (h *Volume) apply(ctx context.Context, adj entities.LevelAdjustment) error {
	switch runtime.GOOS {
	case "linux":
		if adj.Absolute != nil {
			return h.runner.Run(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", fmt.Sprintf("%d%%", clampPercent(*adj.Absolute)))
		}
		if *adj.Delta >= 0 {
			return h.runner.Run(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", fmt.Sprintf("+%d%%", *adj.Delta))
		}
		return h.runner.Run(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", fmt.Sprintf("-%d%%", -*adj.Delta))
	case "darwin":
		if adj.Absolute != nil {
			return h.runner.Run(ctx, "osascript", "-e", fmt.Sprintf("set volume output volume %d", clampPercent(*adj.Absolute)))
		}
		sign := "+"
		delta := *adj.Delta
		if delta < 0 {
			sign = "-"
			delta = -delta
		}
		script := fmt.Sprintf("set volume output volume (output volume of (get volume settings) %s %d)", sign, delta)
		return h.runner.Run(ctx, "osascript", "-e", script)
	default:
		return unsupportedPlatform("volume control")
	}
}

func (h *Volume) mute(ctx context.Context) error {
	switch runtime.GOOS {
	case "linux":
		return h.runner.Run(ctx, "pactl", "set-sink-mute", "@DEFAULT_SINK@", "1")
	case "darwin":
		return h.runner.Run(ctx, "osascript", "-e", "set volume with output muted")
	default:
		return unsupportedPlatform("mute")
	}
}

func describeChange(what string, adj entities.LevelAdjustment) string {
	switch {
	case adj.Absolute != nil:
		return fmt.Sprintf("Setting the %s to %d percent.", what, clampPercent(*adj.Absolute))
	case adj.Delta != nil && *adj.Delta >= 0:
		return fmt.Sprintf("Turning the %s up by %d percent.", what, *adj.Delta)
	case adj.Delta != nil:
		return fmt.Sprintf("Turning the %s down by %d percent.", what, -*adj.Delta)
	default:
		return fmt.Sprintf("Leaving the %s as it is.", what)
	}
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
