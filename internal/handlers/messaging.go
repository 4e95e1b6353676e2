package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const messagingPrompt = `Draft a short, natural text message based on this request. Reply with only the message body, no quotes or commentary.

Request: %q`

// Messaging drafts a message for the user to send. There is no delivery
// integration; the draft is read back for manual sending.
type Messaging struct {
	model  repositories.LanguageModel
	logger *zap.Logger
}

var _ repositories.Handler = (*Messaging)(nil)

// NewMessaging creates the messaging handler.
func NewMessaging(model repositories.LanguageModel, logger *zap.Logger) *Messaging {
	return &Messaging{model: model, logger: logger}
}

func (h *Messaging) Category() entities.IntentCategory { return entities.CategoryMessaging }

func (h *Messaging) Handle(ctx context.Context, utterance string) (*string, error) {
	draft, err := h.model.Complete(ctx, fmt.Sprintf(messagingPrompt, utterance))
	if err != nil {
		return nil, fmt.Errorf("messaging: draft: %w", err)
	}

	response := fmt.Sprintf("Here's a draft you could send: %s", draft)
	return &response, nil
}
