package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by provider constructors when no credential is configured.
var ErrMissingAPIKey = errors.New("llm api key is not set")

// Generator defines the contract for turning an assembled system prompt plus the
// customer's raw message into a reply. Claude and Gemini both satisfy it.
type Generator interface {
	// Generate sends systemPrompt as the system instruction and userMessage as the single
	// user turn, and returns the model's reply text.
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// UpstreamError reports a non-success response from the generation service.
// Body is the raw response text, surfaced to callers as error details.
type UpstreamError struct {
	Provider string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream status %d: %s", e.Provider, e.Status, e.Body)
}
