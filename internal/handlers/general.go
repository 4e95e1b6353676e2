package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const generalPersona = `You are AERO, a friendly voice assistant. Answer conversationally in one or two short sentences suitable for speech. Do not use markdown, lists or emoji.`

// HistorySource provides the recent conversation window for context-aware
// responses. The dialog loop implements it.
type HistorySource interface {
	ContextWindow() entities.History
}

// General answers anything that no specialized handler claims, with the
// recent conversation as context.
type General struct {
	model   repositories.LanguageModel
	history HistorySource
	logger  *zap.Logger
}

var _ repositories.Handler = (*General)(nil)

// NewGeneral creates the general conversation handler.
func NewGeneral(model repositories.LanguageModel, history HistorySource, logger *zap.Logger) *General {
	return &General{model: model, history: history, logger: logger}
}

func (h *General) Category() entities.IntentCategory { return entities.CategoryGeneral }

func (h *General) Handle(ctx context.Context, utterance string) (*string, error) {
	response, err := h.model.Respond(ctx, generalPersona, h.history.ContextWindow(), utterance)
	if err != nil {
		return nil, err
	}
	return &response, nil
}
