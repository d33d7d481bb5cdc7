package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/talentscout/internal/validator"
	"github.com/aretw0/talentscout/pkg/domain"
)

// ConversationOption configures a Conversation.
type ConversationOption func(*Conversation)

// WithLogger sets the logger used for generation failures and debug output.
func WithLogger(logger *slog.Logger) ConversationOption {
	return func(c *Conversation) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ConversationOption {
	return func(c *Conversation) {
		c.hooks = hooks
	}
}

// WithRules replaces the validation table.
func WithRules(rules validator.Table) ConversationOption {
	return func(c *Conversation) {
		c.rules = rules
	}
}

// WithClock sets the time source used for event timestamps and durations.
func WithClock(now func() time.Time) ConversationOption {
	return func(c *Conversation) {
		if now != nil {
			c.now = now
		}
	}
}
