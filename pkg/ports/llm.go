package ports

import "context"

// LLM is a single-turn, non-streaming text generator.
type LLM interface {
	// Generate sends prompt to the model and returns the response text.
	// Transport and API failures are returned as errors; an empty response is not an error here.
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMFunc adapts a function to the LLM interface.
type LLMFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f LLMFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
