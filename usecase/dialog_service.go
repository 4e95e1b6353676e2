package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const (
	greetingText  = "Hello! I'm AERO, your voice assistant. How can I help you today?"
	farewellText  = "Goodbye! Shutting down now."
	fallbackReply = "Sorry, I ran into a problem handling that. Could you try again?"
)

// DialogService runs the conversation loop: capture, exit check, intent
// routing, dispatch, persistence. One instance owns one session and the
// shared conversation history.
type DialogService struct {
	listener *Listener
	exitGate *ExitGate
	router   *IntentRouter
	speaker  repositories.Speaker
	store    repositories.HistoryStore
	handlers map[entities.IntentCategory]repositories.Handler
	history  entities.History
	maxPairs int
	logger   *zap.Logger
}

// NewDialogService creates the dialog loop. Handlers are registered
// separately because some of them need the service's context window.
func NewDialogService(
	listener *Listener,
	exitGate *ExitGate,
	router *IntentRouter,
	speaker repositories.Speaker,
	store repositories.HistoryStore,
	maxPairs int,
	logger *zap.Logger,
) *DialogService {
	return &DialogService{
		listener: listener,
		exitGate: exitGate,
		router:   router,
		speaker:  speaker,
		store:    store,
		handlers: make(map[entities.IntentCategory]repositories.Handler),
		maxPairs: maxPairs,
		logger:   logger,
	}
}

// Register adds a handler for its category, replacing any previous one.
func (s *DialogService) Register(handler repositories.Handler) {
	s.handlers[handler.Category()] = handler
}

// ContextWindow returns the most recent conversation turns, capped at the
// configured number of user/assistant pairs.
func (s *DialogService) ContextWindow() entities.History {
	return s.history.ContextWindow(s.maxPairs)
}

// Run drives the session until the user confirms an exit or the context is
// cancelled. History is persisted on every logged turn and again on the way
// out.
func (s *DialogService) Run(ctx context.Context) error {
	loaded, err := s.store.Load()
	if err != nil {
		s.logger.Warn("Could not load history, starting fresh", zap.Error(err))
		loaded = entities.History{}
	}
	s.history = loaded
	s.logger.Info("Session started", zap.Int("priorTurns", len(s.history)))

	s.say(ctx, greetingText)

	for {
		select {
		case <-ctx.Done():
			s.persist()
			return ctx.Err()
		default:
		}

		result, err := s.listener.NextUtterance(ctx)
		if err != nil {
			s.persist()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if !result.Present {
			s.logger.Debug("Nothing usable heard, listening again",
				zap.String("outcome", string(result.Outcome)))
			continue
		}

		preTurnLen := len(s.history)
		s.history = s.history.Append(entities.NewTurn(entities.RoleUser, result.Text))

		if s.exitGate.ShouldExit(ctx, result.Text) {
			s.say(ctx, farewellText)
			s.history = s.history.Append(entities.NewTurn(entities.RoleAssistant, farewellText))
			s.persist()
			s.logger.Info("Session ended on user request")
			return nil
		}

		decision := s.router.Classify(ctx, result.Text)
		s.logger.Info("Dispatching",
			zap.String("category", string(decision.Category)),
			zap.String("source", string(decision.Source)))

		response := s.dispatch(ctx, decision.Category, result.Text)
		if response == nil {
			// Sub-dialogue handlers keep their own record; this turn
			// stays out of shared history.
			s.history = s.history[:preTurnLen]
			continue
		}

		s.say(ctx, *response)
		s.history = s.history.Append(entities.NewTurn(entities.RoleAssistant, *response))
		s.persist()
	}
}

func (s *DialogService) dispatch(ctx context.Context, category entities.IntentCategory, utterance string) *string {
	handler, ok := s.handlers[category]
	if !ok {
		handler, ok = s.handlers[entities.CategoryGeneral]
		if !ok {
			s.logger.Error("No handler registered, not even general",
				zap.String("category", string(category)))
			reply := fallbackReply
			return &reply
		}
	}

	response, err := handler.Handle(ctx, utterance)
	if err != nil {
		s.logger.Warn("Handler failed",
			zap.String("category", string(category)),
			zap.Error(err))
		reply := fallbackReply
		return &reply
	}
	return response
}

// say speaks the text, swallowing output failures. Voice output is
// best-effort; a broken speaker must not end the session.
func (s *DialogService) say(ctx context.Context, text string) {
	if err := s.speaker.Say(ctx, text); err != nil {
		s.logger.Warn("Speech output failed", zap.Error(err))
	}
}

func (s *DialogService) persist() {
	if err := s.store.Save(s.history); err != nil {
		s.logger.Warn("Could not save history", zap.Error(err))
	}
}
