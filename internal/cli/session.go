package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/talentscout/pkg/persistence/middleware"
)

// ListSessions prints the stored sessions with their phase.
func ListSessions(ctx context.Context, app *App, w io.Writer) error {
	ids, err := app.Sessions.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tPHASE\tFIELDS")
	for _, id := range ids {
		snap, err := app.Sessions.Load(ctx, id)
		if err != nil {
			// Expired between List and Load, or unreadable with the current key.
			app.Logger.Warn("skipping session", "session_id", id, "err", err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", id, snap.Phase(), snap.Record.Len())
	}
	return tw.Flush()
}

// InspectSession prints a stored snapshot as JSON, masking identifying answers unless reveal is set.
func InspectSession(ctx context.Context, app *App, id string, reveal bool, w io.Writer) error {
	snap, err := app.Sessions.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load session %s: %w", id, err)
	}
	if !reveal {
		snap = middleware.MaskSnapshot(snap)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sessionView{
		SessionID:          id,
		Phase:              string(snap.Phase()),
		Cursor:             snap.Cursor,
		Record:             snap.Record.Map(),
		Active:             snap.Active,
		QuestionsGenerated: snap.QuestionsGenerated,
	})
}

type sessionView struct {
	SessionID          string         `json:"session_id"`
	Phase              string         `json:"phase"`
	Cursor             int            `json:"cursor"`
	Record             map[string]any `json:"record"`
	Active             bool           `json:"active"`
	QuestionsGenerated bool           `json:"questions_generated"`
}

// RemoveSession deletes a stored session.
func RemoveSession(ctx context.Context, app *App, id string, w io.Writer) error {
	if err := app.Sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove session %s: %w", id, err)
	}
	fmt.Fprintf(w, "Session '%s' removed.\n", id)
	return nil
}
