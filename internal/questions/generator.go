// Package questions turns a candidate's tech stack into interview questions.
package questions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/talentscout/internal/logging"
	"github.com/aretw0/talentscout/pkg/ports"
)

// ErrGeneration wraps every failure of Generate.
var ErrGeneration = errors.New("question generation failed")

// Generator produces interview questions through a language model.
type Generator struct {
	llm    ports.LLM
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a Generator backed by llm.
func NewGenerator(llm ports.LLM, opts ...Option) *Generator {
	g := &Generator{
		llm:    llm,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate issues exactly one model request for techs.
// On success the reply starts with a short introduction naming the technologies.
// Any failure returns an error wrapping ErrGeneration and no text.
func (g *Generator) Generate(ctx context.Context, techs []string) (string, error) {
	if len(techs) == 0 {
		return "", fmt.Errorf("%w: empty tech stack", ErrGeneration)
	}
	if g.llm == nil {
		return "", fmt.Errorf("%w: no language model configured", ErrGeneration)
	}

	prompt, err := BuildPrompt(techs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	g.logger.Debug("Requesting technical questions", "technologies", len(techs), "prompt_bytes", len(prompt))

	text, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}

	return Intro(techs) + text, nil
}

// Intro is the text placed before generated questions.
func Intro(techs []string) string {
	return fmt.Sprintf("\nBased on your experience with %s, here are some technical questions:\n\n", JoinTechs(techs))
}
