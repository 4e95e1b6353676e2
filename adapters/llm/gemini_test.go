package llm

import (
	"testing"

	"google.golang.org/genai"

	"github.com/aeroassist/aero/domain/entities"
)

func TestHistoryToContents(t *testing.T) {
	window := entities.History{
		entities.NewTurn(entities.RoleUser, "hello"),
		entities.NewTurn(entities.RoleAssistant, "hi there"),
		entities.NewTurn(entities.RoleUser, "how are you"),
	}

	contents := historyToContents(window)
	if len(contents) != 3 {
		t.Fatalf("Expected 3 contents, got %d", len(contents))
	}

	wantRoles := []genai.Role{genai.RoleUser, genai.RoleModel, genai.RoleUser}
	for i, content := range contents {
		if genai.Role(content.Role) != wantRoles[i] {
			t.Errorf("Content %d role = %s, want %s", i, content.Role, wantRoles[i])
		}
	}
}

func TestHistoryToContentsEmpty(t *testing.T) {
	if contents := historyToContents(nil); len(contents) != 0 {
		t.Errorf("Expected no contents for empty history, got %d", len(contents))
	}
}
