package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventFieldCommitted   EventType = "field_committed"
	EventValidationFailed EventType = "validation_failed"
	EventExit             EventType = "exit"
	EventGeneration       EventType = "generation"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FieldEvent reports progress on a single field.
// It never carries the candidate's answer.
type FieldEvent struct {
	EventBase
	Field  Field `json:"field"`
	Cursor int   `json:"cursor"`
}

// ExitEvent reports that the candidate ended the conversation.
type ExitEvent struct {
	EventBase
	Phase  Phase `json:"phase"`
	Cursor int   `json:"cursor"`
}

// GenerationEvent reports the outcome of the single question-generation call.
type GenerationEvent struct {
	EventBase
	Technologies int           `json:"technologies"`
	Duration     time.Duration `json:"duration"`
	Skipped      bool          `json:"skipped,omitempty"` // No tech stack, generator not called
	Err          error         `json:"-"`
}

// LifecycleHooks defines callbacks for conversation observability.
type LifecycleHooks struct {
	OnFieldCommitted   func(context.Context, *FieldEvent)
	OnValidationFailed func(context.Context, *FieldEvent)
	OnExit             func(context.Context, *ExitEvent)
	OnGeneration       func(context.Context, *GenerationEvent)
}

// MergeHooks chains several hook sets; each callback is invoked in order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range sets {
		h := h
		if h.OnFieldCommitted != nil {
			prev := out.OnFieldCommitted
			out.OnFieldCommitted = func(ctx context.Context, e *FieldEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnFieldCommitted(ctx, e)
			}
		}
		if h.OnValidationFailed != nil {
			prev := out.OnValidationFailed
			out.OnValidationFailed = func(ctx context.Context, e *FieldEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnValidationFailed(ctx, e)
			}
		}
		if h.OnExit != nil {
			prev := out.OnExit
			out.OnExit = func(ctx context.Context, e *ExitEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnExit(ctx, e)
			}
		}
		if h.OnGeneration != nil {
			prev := out.OnGeneration
			out.OnGeneration = func(ctx context.Context, e *GenerationEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnGeneration(ctx, e)
			}
		}
	}
	return out
}
