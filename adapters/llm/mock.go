package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

// Mock is a canned language model for development without API keys.
type Mock struct {
	logger *zap.Logger
}

var _ repositories.LanguageModel = (*Mock)(nil)

// NewMock creates a new mock language model.
func NewMock(logger *zap.Logger) *Mock {
	return &Mock{logger: logger}
}

// Complete implements repositories.LanguageModel. Classification prompts get
// a safe default label.
func (m *Mock) Complete(ctx context.Context, prompt string) (string, error) {
	m.logger.Info("Mock completion", zap.Int("promptLength", len(prompt)))
	return "general", nil
}

// Respond implements repositories.LanguageModel.
func (m *Mock) Respond(ctx context.Context, system string, window entities.History, input string) (string, error) {
	m.logger.Info("Mock response", zap.Int("windowTurns", len(window)))
	return "I heard you, but I'm running without a language model right now.", nil
}
