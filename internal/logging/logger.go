package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// redactedKeys are attribute keys whose values carry candidate data.
var redactedKeys = map[string]struct{}{
	"full_name": {},
	"email":     {},
	"phone":     {},
	"location":  {},
	"input":     {},
	"record":    {},
}

// Redacted replaces the value of a masked attribute.
const Redacted = "***"

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout chat/JSON flow).
// It standardizes common keys (e.g., "error" -> "err") and masks candidate data.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOptions(level)))
}

// NewText creates a text logger writing to w.
func NewText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, handlerOptions(level)))
}

// NewJSON creates a JSON logger writing to w, for servers.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, handlerOptions(level)))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
// Unknown or empty names yield slog.LevelInfo.
func ParseLevel(name string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}
}

// replaceAttr is called for every attribute, including those nested in groups.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	if _, ok := redactedKeys[a.Key]; ok && a.Value.Kind() != slog.KindGroup {
		return slog.String(a.Key, Redacted)
	}
	return a
}
