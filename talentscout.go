package talentscout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/talentscout/internal/logging"
	"github.com/aretw0/talentscout/internal/questions"
	"github.com/aretw0/talentscout/internal/runtime"
	"github.com/aretw0/talentscout/internal/validator"
	"github.com/aretw0/talentscout/pkg/domain"
	"github.com/aretw0/talentscout/pkg/ports"
)

// ErrMissingLLM is returned by New when no language model is supplied.
var ErrMissingLLM = errors.New("talentscout: a language model is required")

// Assistant is the high-level entry point of the library.
// It holds the shared, immutable configuration from which conversations are created.
// An Assistant is safe for concurrent use; the conversations it creates are not.
type Assistant struct {
	generator *questions.Generator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	rules     validator.Table
}

// Option defines a functional option for configuring the Assistant.
type Option func(*Assistant)

// WithLifecycleHooks registers observability hooks.
// It may be given several times; hooks run in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Assistant) {
		a.hooks = domain.MergeHooks(a.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Assistant that generates questions through llm.
func New(llm ports.LLM, opts ...Option) (*Assistant, error) {
	if llm == nil {
		return nil, ErrMissingLLM
	}

	a := &Assistant{
		logger: logging.NewNop(),
		rules:  validator.NewTable(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.generator = questions.NewGenerator(llm, questions.WithLogger(a.logger))
	return a, nil
}

// Conversation is one candidate's screening session.
// Its methods are documented on the embedded runtime type: ProcessResponse,
// Opening, Phase, Cursor, Record, Snapshot and friends.
type Conversation struct {
	*runtime.Conversation
}

func (a *Assistant) conversationOptions() []runtime.ConversationOption {
	return []runtime.ConversationOption{
		runtime.WithLogger(a.logger),
		runtime.WithLifecycleHooks(a.hooks),
		runtime.WithRules(a.rules),
	}
}

// NewConversation starts a fresh conversation.
func (a *Assistant) NewConversation() *Conversation {
	return &Conversation{runtime.NewConversation(a.generator, a.conversationOptions()...)}
}

// Restore resumes a conversation from a snapshot.
// It returns domain.ErrInvalidSnapshot if the snapshot is inconsistent.
func (a *Assistant) Restore(snap *domain.Snapshot) (*Conversation, error) {
	conv, err := runtime.Restore(snap, a.generator, a.conversationOptions()...)
	if err != nil {
		return nil, err
	}
	return &Conversation{conv}, nil
}

// Open returns the opening messages for the conversation held in snap.
func (a *Assistant) Open(_ context.Context, snap *domain.Snapshot) ([]string, error) {
	conv, err := a.Restore(snap)
	if err != nil {
		return nil, err
	}
	return conv.Opening(), nil
}

// Respond advances the conversation held in snap by one message.
// snap is not modified; the new state is returned.
func (a *Assistant) Respond(ctx context.Context, snap *domain.Snapshot, input string) (*domain.Snapshot, string, bool, error) {
	conv, err := a.Restore(snap)
	if err != nil {
		return nil, "", false, err
	}
	reply, more := conv.ProcessResponse(ctx, input)
	return conv.Snapshot(), reply, more, nil
}

var _ ports.StatelessScreener = (*Assistant)(nil)
