package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/repositories"
)

const exitPrompt = `You are a binary classifier for a voice assistant. Decide whether the user wants to end the conversation and shut the assistant down.

Reply with exactly one word: "exit" if the user wants to stop the assistant, or "continue" otherwise.

Requests to close applications, windows, or files are NOT exit requests.

User said: %q`

// exitPhrases are matched as whole words when the classifier is
// unavailable. "close" is deliberately absent: closing apps is its own
// intent, not a farewell.
var exitPhrases = []string{
	"exit",
	"quit",
	"goodbye",
	"bye bye",
	"turn off",
	"shut down",
}

var exitPatterns = compileExitPatterns()

func compileExitPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exitPhrases))
	for _, phrase := range exitPhrases {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(phrase)+`\b`))
	}
	return patterns
}

// ExitGate decides whether an utterance is a request to end the session.
// The language model makes the call; keyword matching covers for it when
// the model is unreachable or answers off-script.
type ExitGate struct {
	model  repositories.LanguageModel
	logger *zap.Logger
}

// NewExitGate creates an ExitGate backed by the given language model.
func NewExitGate(model repositories.LanguageModel, logger *zap.Logger) *ExitGate {
	return &ExitGate{model: model, logger: logger}
}

// ShouldExit reports whether the utterance asks to end the session.
// Any answer from the model other than "exit" counts as continue.
func (g *ExitGate) ShouldExit(ctx context.Context, utterance string) bool {
	cleaned := cleanUtterance(utterance)
	if cleaned == "" {
		return false
	}

	label, err := g.model.Complete(ctx, fmt.Sprintf(exitPrompt, cleaned))
	if err != nil {
		g.logger.Warn("Exit classifier unavailable, falling back to keywords", zap.Error(err))
		return matchesExitPhrase(cleaned)
	}

	label = strings.ToLower(strings.TrimSpace(label))
	if label != "exit" && label != "continue" {
		g.logger.Debug("Exit classifier answered off-script, treating as continue",
			zap.String("label", label))
		return false
	}
	return label == "exit"
}

func matchesExitPhrase(utterance string) bool {
	lowered := strings.ToLower(utterance)
	for _, pattern := range exitPatterns {
		if pattern.MatchString(lowered) {
			return true
		}
	}
	return false
}
