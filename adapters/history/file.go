package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

// FileStore persists conversation history as a JSON array of turns. A
// missing or unreadable file loads as empty history so a corrupt log never
// blocks a session from starting.
type FileStore struct {
	path   string
	logger *zap.Logger
}

var _ repositories.HistoryStore = (*FileStore)(nil)

// NewFileStore creates a history store bound to the given file path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load implements repositories.HistoryStore.
func (s *FileStore) Load() (entities.History, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entities.History{}, nil
		}
		return nil, fmt.Errorf("history: read %s: %w", s.path, err)
	}

	var turns entities.History
	if err := json.Unmarshal(data, &turns); err != nil {
		s.logger.Warn("History file is corrupt, starting fresh",
			zap.String("path", s.path),
			zap.Error(err))
		return entities.History{}, nil
	}
	return turns, nil
}

// Save implements repositories.HistoryStore. The file is written to a
// temporary sibling and renamed into place so a crash mid-write leaves the
// previous history intact.
func (s *FileStore) Save(history entities.History) error {
	if history == nil {
		history = entities.History{}
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("history: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("history: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("history: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("history: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("history: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("history: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("history: replace %s: %w", s.path, err)
	}

	s.logger.Debug("History saved",
		zap.String("path", s.path),
		zap.Int("turns", len(history)))
	return nil
}
