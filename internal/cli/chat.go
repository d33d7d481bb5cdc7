package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/talentscout"
	"github.com/aretw0/talentscout/internal/presentation/tui"
	"github.com/aretw0/talentscout/pkg/domain"
	"github.com/aretw0/talentscout/pkg/runner"
)

// ChatOptions contains the configuration for the chat command.
type ChatOptions struct {
	JSON      bool
	Summary   bool
	SessionID string // Resume or create a stored session
	Fresh     bool   // Discard the stored session first
	Plain     bool   // No banner, no markdown rendering
}

// RunChat runs one screening conversation over in/out.
func RunChat(ctx context.Context, app *App, opts ChatOptions, in io.Reader, out io.Writer) error {
	interactive := !opts.JSON && !opts.Plain && isTerminal(out)
	if interactive {
		tui.PrintBanner(out, talentscout.Version)
	}

	conv, resumed, err := loadConversation(ctx, app, opts)
	if err != nil {
		return err
	}
	logSessionStatus(app, opts.SessionID, conv.Phase(), resumed)

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(in, out)
	} else {
		var textOpts []runner.TextHandlerOption
		if interactive {
			textOpts = append(textOpts, runner.WithTextHandlerRenderer(tui.NewRenderer(0)))
		}
		handler = runner.NewTextHandler(in, out, textOpts...)
	}

	runnerOpts := []runner.Option{
		runner.WithInputHandler(handler),
		runner.WithLogger(app.Logger),
	}
	if opts.SessionID != "" {
		runnerOpts = append(runnerOpts, runner.WithStore(app.Sessions), runner.WithSessionID(opts.SessionID))
	}

	if err := runner.NewRunner(runnerOpts...).Run(ctx, conv); err != nil {
		return handleExecutionError(err)
	}

	if opts.Summary && !opts.JSON && conv.Record().Len() > 0 {
		summary := conv.Record().Summary()
		if interactive {
			if rendered, err := tui.NewRenderer(0)(summary); err == nil {
				summary = rendered
			}
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, summary)
	}
	return nil
}

// loadConversation resumes the stored session or starts a new one.
func loadConversation(ctx context.Context, app *App, opts ChatOptions) (*talentscout.Conversation, bool, error) {
	if opts.SessionID == "" {
		return app.Assistant.NewConversation(), false, nil
	}

	if opts.Fresh {
		if err := app.Sessions.Delete(ctx, opts.SessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, false, fmt.Errorf("reset session %s: %w", opts.SessionID, err)
		}
	}

	snap, err := app.Sessions.Load(ctx, opts.SessionID)
	switch {
	case err == nil:
		conv, err := app.Assistant.Restore(snap)
		if err != nil {
			return nil, false, fmt.Errorf("restore session %s: %w", opts.SessionID, err)
		}
		return conv, true, nil
	case errors.Is(err, domain.ErrSessionNotFound):
		conv := app.Assistant.NewConversation()
		// Save immediately to reserve the ID
		if err := app.Sessions.Save(ctx, opts.SessionID, conv.Snapshot()); err != nil {
			return nil, false, fmt.Errorf("initialize session %s: %w", opts.SessionID, err)
		}
		return conv, false, nil
	default:
		return nil, false, fmt.Errorf("load session %s: %w", opts.SessionID, err)
	}
}

func logSessionStatus(app *App, sessionID string, phase domain.Phase, resumed bool) {
	switch {
	case resumed:
		app.Logger.Info("Session Resumed", "session_id", sessionID, "phase", phase)
	case sessionID != "":
		app.Logger.Info("Session Created", "session_id", sessionID)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}

func handleExecutionError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil // Exit 0 for interruptions
	}
	return err
}
