package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/talentscout/internal/logging"
	"github.com/aretw0/talentscout/pkg/domain"
	"github.com/aretw0/talentscout/pkg/ports"
)

// Conversation is the part of a screening conversation the runner drives.
type Conversation interface {
	Opening() []string
	ProcessResponse(ctx context.Context, input string) (string, bool)
	Phase() domain.Phase
	Snapshot() *domain.Snapshot
}

// Runner handles the chat loop using a pluggable IOHandler.
type Runner struct {
	Handler   IOHandler
	Logger    *slog.Logger
	Store     ports.SnapshotStore
	SessionID string

	// HandleSignals makes Ctrl+C end the conversation like an exit command.
	HandleSignals bool
}

// NewRunner creates a Runner reading Stdin and writing Stdout in text mode.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:        logging.NewNop(),
		HandleSignals: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r
}

// Run executes the loop until the conversation ends, the input closes or ctx is cancelled.
// A finished conversation is not reopened: Run returns immediately.
func (r *Runner) Run(ctx context.Context, conv Conversation) error {
	if conv.Phase() == domain.PhaseDone {
		return r.Handler.Output(ctx, Turn{Phase: domain.PhaseDone})
	}

	loopCtx := ctx
	var signals *SignalManager
	if r.HandleSignals {
		signals = NewSignalManager(ctx)
		defer signals.Stop()
		loopCtx = signals.Context()
	}

	if err := r.Handler.Output(loopCtx, Turn{Messages: conv.Opening(), Continue: true, Phase: conv.Phase()}); err != nil {
		return fmt.Errorf("output error: %w", err)
	}

	for {
		input, err := r.Handler.Input(loopCtx)
		if err != nil {
			if signals != nil {
				signals.CheckRace()
			}
			switch {
			case errors.Is(err, io.EOF):
				r.Logger.Debug("input closed", "session_id", r.SessionID, "phase", conv.Phase())
				return nil
			case loopCtx.Err() != nil && ctx.Err() == nil:
				// Interrupted by the candidate: close the conversation politely.
				input = "exit"
			default:
				return fmt.Errorf("input error: %w", err)
			}
		}

		if conv.Phase() == domain.PhaseGenerating {
			_ = r.Handler.Signal(loopCtx, SignalGenerating)
		}

		// The turn runs to completion even after an interrupt.
		turnCtx := context.WithoutCancel(loopCtx)
		reply, cont := conv.ProcessResponse(turnCtx, input)

		if err := r.save(turnCtx, conv); err != nil {
			return fmt.Errorf("critical persistence error: %w", err)
		}

		if err := r.Handler.Output(turnCtx, Turn{Messages: []string{reply}, Continue: cont, Phase: conv.Phase()}); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		if !cont {
			return nil
		}
	}
}

func (r *Runner) save(ctx context.Context, conv Conversation) error {
	if r.Store == nil || r.SessionID == "" {
		return nil
	}
	if err := r.Store.Save(ctx, r.SessionID, conv.Snapshot()); err != nil {
		return err
	}
	r.Logger.Debug("snapshot saved", "session_id", r.SessionID, "phase", conv.Phase())
	return nil
}
