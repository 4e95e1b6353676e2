package repositories

import "github.com/aeroassist/aero/domain/entities"

// HistoryStore persists the full ordered conversation log. The store has a
// single writer (the dialog orchestrator); implementations must replace the
// persisted file atomically so a mid-write crash never truncates it.
type HistoryStore interface {
	// Load returns the persisted history, or an empty history if the backing
	// file is absent or malformed. Load never fails the session.
	Load() (entities.History, error)

	// Save serializes the full ordered history, replacing what was stored.
	Save(history entities.History) error
}
