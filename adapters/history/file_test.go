package history

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewFileStore(path, zap.NewNop())

	saved := entities.History{
		entities.NewTurn(entities.RoleUser, "open my calendar"),
		entities.NewTurn(entities.RoleAssistant, "Here is your schedule for today."),
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != len(saved) {
		t.Fatalf("Expected %d turns, got %d", len(saved), len(loaded))
	}
	for i := range saved {
		if loaded[i].Role != saved[i].Role || loaded[i].Content != saved[i].Content {
			t.Errorf("Turn %d = %+v, want %+v", i, loaded[i], saved[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Expected empty history for missing file, got %d turns", len(loaded))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path, zap.NewNop())

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Expected empty history for corrupt file, got %d turns", len(loaded))
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.json")
	store := NewFileStore(path, zap.NewNop())

	if err := store.Save(entities.History{entities.NewTurn(entities.RoleUser, "hi")}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected history file to exist: %v", err)
	}
}

func TestSaveNilHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewFileStore(path, zap.NewNop())

	if err := store.Save(nil); err != nil {
		t.Fatalf("Save(nil) error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected empty JSON array, got %q", string(data))
	}
}
