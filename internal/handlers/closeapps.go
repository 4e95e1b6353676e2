package handlers

import (
	"context"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

// CloseApps closes user-visible application windows.
type CloseApps struct {
	runner CommandRunner
	logger *zap.Logger
}

var _ repositories.Handler = (*CloseApps)(nil)

// NewCloseApps creates the close-apps handler.
func NewCloseApps(runner CommandRunner, logger *zap.Logger) *CloseApps {
	return &CloseApps{runner: runner, logger: logger}
}

func (h *CloseApps) Category() entities.IntentCategory { return entities.CategoryCloseApps }

func (h *CloseApps) Handle(ctx context.Context, utterance string) (*string, error) {
	closed, err := h.closeAll(ctx)
	if err != nil {
		h.logger.Warn("Closing applications failed", zap.Error(err))
		response := "I couldn't close the open applications on this system."
		return &response, nil
	}

	h.logger.Info("Applications closed", zap.Int("windows", closed))
	response := "Done, I've closed your open applications."
	return &response, nil
}

// closeAll asks each open window to close gracefully. Returns the number of
// windows addressed.
func (h *CloseApps) closeAll(ctx context.Context) (int, error) {
	switch runtime.GOOS {
	case "linux":
		out, err := h.runner.Output(ctx, "wmctrl", "-l")
		if err != nil {
			return 0, err
		}
		closed := 0
		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if err := h.runner.Run(ctx, "wmctrl", "-i", "-c", fields[0]); err != nil {
				h.logger.Debug("Window refused to close", zap.String("id", fields[0]), zap.Error(err))
				continue
			}
			closed++
		}
		return closed, nil
	case "darwin":
		script := `tell application "System Events" to set visibleApps to name of every process whose visible is true and name is not "Finder"
repeat with appName in visibleApps
	tell application appName to quit
end repeat`
		if err := h.runner.Run(ctx, "osascript", "-e", script); err != nil {
			return 0, err
		}
		return 1, nil
	default:
		return 0, unsupportedPlatform("closing applications")
	}
}
