package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const notepadPrompt = `Write a short, well-structured article based on this request. Plain text only, no markdown.

Request: %q`

// Notepad turns a spoken request into a drafted text file and opens it in
// the platform editor.
type Notepad struct {
	model  repositories.LanguageModel
	runner CommandRunner
	dir    string
	logger *zap.Logger
}

var _ repositories.Handler = (*Notepad)(nil)

// NewNotepad creates the notepad handler. Files land in dir; empty means the
// system temp directory.
func NewNotepad(model repositories.LanguageModel, runner CommandRunner, dir string, logger *zap.Logger) *Notepad {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Notepad{model: model, runner: runner, dir: dir, logger: logger}
}

func (h *Notepad) Category() entities.IntentCategory { return entities.CategoryNotepad }

func (h *Notepad) Handle(ctx context.Context, utterance string) (*string, error) {
	article, err := h.model.Complete(ctx, fmt.Sprintf(notepadPrompt, utterance))
	if err != nil {
		return nil, fmt.Errorf("notepad: draft article: %w", err)
	}

	path := filepath.Join(h.dir, fmt.Sprintf("aero_note_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(article), 0o644); err != nil {
		return nil, fmt.Errorf("notepad: write %s: %w", path, err)
	}

	if err := openPath(ctx, h.runner, path); err != nil {
		h.logger.Warn("Could not open editor", zap.String("path", path), zap.Error(err))
	}

	h.logger.Info("Note written", zap.String("path", path))
	response := "I've written that up and opened it for you."
	return &response, nil
}
