package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/talentscout/internal/logging"
	"github.com/aretw0/talentscout/internal/validator"
	"github.com/aretw0/talentscout/pkg/domain"
	"github.com/aretw0/talentscout/pkg/intake"
)

// QuestionGenerator produces the interview questions for a tech stack.
// Implementations return an error instead of fallback text.
type QuestionGenerator interface {
	Generate(ctx context.Context, techs []string) (string, error)
}

// Conversation is the screening state machine for one candidate.
// It is not safe for concurrent use; hosts serialise access per session.
type Conversation struct {
	snap   *domain.Snapshot
	gen    QuestionGenerator
	rules  validator.Table
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// NewConversation creates a conversation positioned at the first field.
func NewConversation(gen QuestionGenerator, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		snap:   domain.NewSnapshot(),
		gen:    gen,
		rules:  validator.Default,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore rebuilds a conversation from a snapshot taken with Snapshot.
// The snapshot is validated and copied; later changes to snap do not affect the conversation.
func Restore(snap *domain.Snapshot, gen QuestionGenerator, opts ...ConversationOption) (*Conversation, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", domain.ErrInvalidSnapshot)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	c := NewConversation(gen, opts...)
	c.snap = snap.Clone()
	return c, nil
}

// ProcessResponse feeds one raw candidate message to the state machine.
// It returns the reply and whether the host should keep accepting input.
// It never fails: validation and generation problems are turned into reply text.
func (c *Conversation) ProcessResponse(ctx context.Context, raw string) (string, bool) {
	input := intake.Sanitize(raw)

	if intake.IsExitCommand(input) {
		return c.exit(ctx)
	}

	switch c.snap.Phase() {
	case domain.PhaseCollecting:
		return c.collect(ctx, input)
	case domain.PhaseGenerating:
		return c.generate(ctx)
	default:
		return domain.ClosingMessage, false
	}
}

func (c *Conversation) exit(ctx context.Context) (string, bool) {
	if c.snap.Active {
		phase := c.snap.Phase()
		c.snap.Active = false
		if c.hooks.OnExit != nil {
			c.hooks.OnExit(ctx, &domain.ExitEvent{
				EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventExit},
				Phase:     phase,
				Cursor:    c.snap.Cursor,
			})
		}
	}
	return domain.ExitMessage, false
}

func (c *Conversation) collect(ctx context.Context, input string) (string, bool) {
	field := domain.Field(c.snap.Cursor)

	clean, err := c.rules.Validate(field, input)
	if err != nil {
		msg := domain.RephraseMessage
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			msg = vErr.Message
		} else {
			c.logger.Error("Unexpected validation error", "field", field.String(), "err", err)
		}
		c.fieldEvent(ctx, c.hooks.OnValidationFailed, domain.EventValidationFailed, field)
		return msg, true
	}

	if field == domain.FieldTechStack {
		err = c.snap.Record.CommitTechStack(intake.ParseTechStack(clean))
	} else {
		err = c.snap.Record.Commit(field, clean)
	}
	if err != nil {
		c.logger.Error("Failed to commit field", "field", field.String(), "err", err)
		return domain.RephraseMessage, true
	}

	c.snap.Cursor++
	c.fieldEvent(ctx, c.hooks.OnFieldCommitted, domain.EventFieldCommitted, field)

	if c.snap.Cursor < domain.FieldCount {
		return domain.AcknowledgePrefix + domain.Spec(domain.Field(c.snap.Cursor)).Prompt, true
	}
	return domain.CollectionCompleteMessage, true
}

func (c *Conversation) fieldEvent(ctx context.Context, hook func(context.Context, *domain.FieldEvent), typ domain.EventType, field domain.Field) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.FieldEvent{
		EventBase: domain.EventBase{Timestamp: c.now(), Type: typ},
		Field:     field,
		Cursor:    c.snap.Cursor,
	})
}

func (c *Conversation) generate(ctx context.Context) (string, bool) {
	techs, _ := c.snap.Record.TechStack()
	c.snap.Active = false

	if len(techs) == 0 {
		c.generationEvent(ctx, &domain.GenerationEvent{Skipped: true})
		return domain.NoTechStackMessage, false
	}

	start := c.now()
	var (
		text string
		err  error
	)
	if c.gen == nil {
		err = errors.New("no question generator configured")
	} else {
		// The single model call is not tied to the caller's cancellation.
		text, err = c.gen.Generate(context.WithoutCancel(ctx), techs)
	}
	c.snap.QuestionsGenerated = true

	c.generationEvent(ctx, &domain.GenerationEvent{
		Technologies: len(techs),
		Duration:     c.now().Sub(start),
		Err:          err,
	})

	if err != nil {
		c.logger.Error("Failed to generate technical questions", "technologies", len(techs), "err", err)
		return domain.GenerationFallbackMessage, false
	}
	return text, false
}

func (c *Conversation) generationEvent(ctx context.Context, e *domain.GenerationEvent) {
	if c.hooks.OnGeneration == nil {
		return
	}
	e.EventBase = domain.EventBase{Timestamp: c.now(), Type: domain.EventGeneration}
	c.hooks.OnGeneration(ctx, e)
}

// Phase returns the current phase.
func (c *Conversation) Phase() domain.Phase { return c.snap.Phase() }

// Cursor returns the index of the next field awaiting an answer.
func (c *Conversation) Cursor() int { return c.snap.Cursor }

// Active reports whether the conversation still accepts answers.
func (c *Conversation) Active() bool { return c.snap.Active }

// QuestionsGenerated reports whether the generation attempt has happened.
func (c *Conversation) QuestionsGenerated() bool { return c.snap.QuestionsGenerated }

// Record returns a copy of the collected answers.
func (c *Conversation) Record() domain.Record { return c.snap.Record.Clone() }

// Snapshot returns a copy of the conversation state.
func (c *Conversation) Snapshot() *domain.Snapshot { return c.snap.Clone() }

// CurrentPrompt returns the prompt of the field awaiting an answer.
// It returns false once all fields are collected or the conversation ended.
func (c *Conversation) CurrentPrompt() (string, bool) {
	if c.snap.Phase() != domain.PhaseCollecting {
		return "", false
	}
	return domain.Spec(domain.Field(c.snap.Cursor)).Prompt, true
}

// Greeting returns the introduction shown before the first prompt.
func (c *Conversation) Greeting() string { return domain.GreetingMessage }

// Opening returns the messages a host shows when the session starts or resumes:
// the greeting, followed by the pending prompt when one exists.
func (c *Conversation) Opening() []string {
	msgs := []string{c.Greeting()}
	if prompt, ok := c.CurrentPrompt(); ok {
		msgs = append(msgs, prompt)
	}
	return msgs
}
