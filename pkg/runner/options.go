package runner

import (
	"log/slog"

	"github.com/aretw0/talentscout/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the SnapshotStore used to save every turn.
func WithStore(store ports.SnapshotStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithSessionID sets the session ID under which turns are saved.
// This is required if WithStore is used.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithSignals toggles OS signal handling (on by default).
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.HandleSignals = enabled
	}
}
