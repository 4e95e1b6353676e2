package repositories

import (
	"context"

	"github.com/aeroassist/aero/domain/entities"
)

// Handler executes one intent category. Handle returns the assistant response
// to log for the turn; a nil response means the handler ran its own
// sub-dialogue and the turn must not be written to shared history.
type Handler interface {
	Category() entities.IntentCategory
	Handle(ctx context.Context, utterance string) (*string, error)
}

// UtteranceSource produces discrete utterances from a live audio stream.
// Listen blocks until a complete utterance is endpointed, the context is
// cancelled, or the capture device fails.
type UtteranceSource interface {
	Listen(ctx context.Context) (*entities.Utterance, error)
}
