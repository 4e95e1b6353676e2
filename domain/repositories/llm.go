package repositories

import (
	"context"

	"github.com/aeroassist/aero/domain/entities"
)

// LanguageModel abstracts any chat/LLM provider. Callers must treat output as
// untrusted free text and validate it before acting on it.
type LanguageModel interface {
	// Complete sends a single prompt and returns the model's raw reply.
	// Used for classification-style calls with deterministic settings.
	Complete(ctx context.Context, prompt string) (string, error)

	// Respond generates a conversational reply given a system prompt, a
	// bounded history window, and the current user input.
	Respond(ctx context.Context, system string, window entities.History, input string) (string, error)
}

// VisionModel describes providers that can reason over an image. Only the
// visualize handler needs this; providers without vision simply do not
// implement it.
type VisionModel interface {
	DescribeImage(ctx context.Context, instruction string, imagePNG []byte) (string, error)
}
