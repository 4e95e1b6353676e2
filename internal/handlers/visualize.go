package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const visualizeInstruction = `Extract the tabular data visible in this screenshot as CSV. Reply with only CSV rows, comma separated, first row being the headers. If there is no tabular data, reply with the single word NONE.`

// Visualize screenshots the desktop, has the vision model read any tabular
// data off it and saves the result as CSV.
type Visualize struct {
	vision repositories.VisionModel
	runner CommandRunner
	outDir string
	logger *zap.Logger
}

var _ repositories.Handler = (*Visualize)(nil)

// NewVisualize creates the visualize handler. CSV files land in outDir;
// empty means the current directory.
func NewVisualize(vision repositories.VisionModel, runner CommandRunner, outDir string, logger *zap.Logger) *Visualize {
	if outDir == "" {
		outDir = "."
	}
	return &Visualize{vision: vision, runner: runner, outDir: outDir, logger: logger}
}

func (h *Visualize) Category() entities.IntentCategory { return entities.CategoryVisualize }

func (h *Visualize) Handle(ctx context.Context, utterance string) (*string, error) {
	screenshot, err := h.captureScreen(ctx)
	if err != nil {
		return nil, fmt.Errorf("visualize: screenshot: %w", err)
	}

	csv, err := h.vision.DescribeImage(ctx, visualizeInstruction, screenshot)
	if err != nil {
		return nil, fmt.Errorf("visualize: read screenshot: %w", err)
	}
	csv = strings.TrimSpace(csv)
	if csv == "" || strings.EqualFold(csv, "NONE") {
		response := "I couldn't see any data on your screen to work with."
		return &response, nil
	}

	path := filepath.Join(h.outDir, fmt.Sprintf("aero_data_%s.csv", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(csv+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("visualize: write %s: %w", path, err)
	}

	if err := openPath(ctx, h.runner, path); err != nil {
		h.logger.Warn("Could not open CSV", zap.String("path", path), zap.Error(err))
	}

	response := fmt.Sprintf("I've extracted the data from your screen into %s.", filepath.Base(path))
	return &response, nil
}

// captureScreen takes a full-screen PNG screenshot via the platform tool and
// returns its bytes. The temp file is removed afterwards.
func (h *Visualize) captureScreen(ctx context.Context) ([]byte, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("aero_screen_%d.png", time.Now().UnixNano()))
	defer os.Remove(path)

	var err error
	switch runtime.GOOS {
	case "darwin":
		err = h.runner.Run(ctx, "screencapture", "-x", path)
	case "linux":
		err = h.runner.Run(ctx, "gnome-screenshot", "-f", path)
	default:
		return nil, unsupportedPlatform("screenshots")
	}
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
