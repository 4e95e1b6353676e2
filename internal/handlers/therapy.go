package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
	"github.com/aeroassist/aero/usecase"
)

const therapyPersona = `You are AERO in listening mode. The user wants to talk through how they feel. Respond with warmth and empathy in one or two short spoken sentences. Ask a gentle follow-up question when it helps. Never give medical advice.`

const (
	therapyIntro = "I'm here for you. Tell me what's on your mind."
	therapyOutro = "Thank you for sharing with me. I'm here whenever you need to talk."
)

// Therapy runs a private sub-dialogue: its own listen/respond cycle with an
// empathetic persona. Nothing said inside it is written to shared history,
// which is why Handle always returns nil.
type Therapy struct {
	model    repositories.LanguageModel
	listener *usecase.Listener
	exitGate *usecase.ExitGate
	speaker  repositories.Speaker
	logger   *zap.Logger
}

var _ repositories.Handler = (*Therapy)(nil)

// NewTherapy creates the therapy handler.
func NewTherapy(
	model repositories.LanguageModel,
	listener *usecase.Listener,
	exitGate *usecase.ExitGate,
	speaker repositories.Speaker,
	logger *zap.Logger,
) *Therapy {
	return &Therapy{
		model:    model,
		listener: listener,
		exitGate: exitGate,
		speaker:  speaker,
		logger:   logger,
	}
}

func (h *Therapy) Category() entities.IntentCategory { return entities.CategoryTherapy }

func (h *Therapy) Handle(ctx context.Context, utterance string) (*string, error) {
	h.say(ctx, therapyIntro)

	// The sub-dialogue keeps its own short-lived history so follow-ups have
	// context without touching the shared log.
	var window entities.History
	input := utterance

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		reply, err := h.model.Respond(ctx, therapyPersona, window, input)
		if err != nil {
			h.logger.Warn("Therapy response failed", zap.Error(err))
			h.say(ctx, therapyOutro)
			return nil, nil
		}
		h.say(ctx, reply)
		window = window.Append(entities.NewTurn(entities.RoleUser, input))
		window = window.Append(entities.NewTurn(entities.RoleAssistant, reply))

		result, err := h.listener.NextUtterance(ctx)
		if err != nil {
			return nil, err
		}
		if !result.Present {
			continue
		}
		if h.exitGate.ShouldExit(ctx, result.Text) {
			h.say(ctx, therapyOutro)
			return nil, nil
		}
		input = result.Text
	}
}

func (h *Therapy) say(ctx context.Context, text string) {
	if err := h.speaker.Say(ctx, text); err != nil {
		h.logger.Warn("Speech output failed", zap.Error(err))
	}
}
