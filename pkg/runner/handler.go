package runner

import (
	"context"

	"github.com/aretw0/talentscout/pkg/domain"
)

// Signal names passed to IOHandler.Signal.
const (
	SignalGenerating = "generating"
)

// Turn is what the assistant says in one step of the conversation.
type Turn struct {
	Messages []string     `json:"messages"`
	Continue bool         `json:"continue"`
	Phase    domain.Phase `json:"phase"`
}

// IOHandler defines the strategy for interacting with the candidate.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents the assistant's messages.
	Output(ctx context.Context, turn Turn) error

	// Input reads the next answer.
	Input(ctx context.Context) (string, error)

	// Signal notifies the handler of a slow step (e.g. "generating").
	// This is used for visual feedback without blocking input.
	Signal(ctx context.Context, name string) error
}

// ContentRenderer transforms a message before it is printed.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
