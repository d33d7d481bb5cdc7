package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/talentscout/internal/runtime"
	"github.com/aretw0/talentscout/internal/validator"
	"github.com/aretw0/talentscout/pkg/domain"
)

type fakeGenerator struct {
	reply string
	err   error
	calls [][]string
	ctxs  []context.Context
}

func (f *fakeGenerator) Generate(ctx context.Context, techs []string) (string, error) {
	f.calls = append(f.calls, techs)
	f.ctxs = append(f.ctxs, ctx)
	return f.reply, f.err
}

var validAnswers = []string{
	"Jane Doe",
	"jane@example.com",
	"+1 (555) 123-4567",
	"5 years",
	"Backend Engineer",
	"Lisbon",
	"Python, Django, PostgreSQL",
}

func feed(t *testing.T, c *runtime.Conversation, answers []string) {
	t.Helper()
	for _, a := range answers {
		_, cont := c.ProcessResponse(context.Background(), a)
		require.True(t, cont, "answer %q should keep the conversation going", a)
	}
}

func TestConversation_HappyPath(t *testing.T) {
	gen := &fakeGenerator{reply: "**Python**\n1. Q"}
	c := runtime.NewConversation(gen)
	ctx := context.Background()

	assert.Equal(t, []string{domain.GreetingMessage, "Could you please provide your full name?"}, c.Opening())

	fields := domain.Fields()
	for i, answer := range validAnswers {
		msg, cont := c.ProcessResponse(ctx, answer)
		assert.True(t, cont)
		assert.Equal(t, i+1, c.Cursor())
		if i+1 < domain.FieldCount {
			assert.Equal(t, "Thank you! "+fields[i+1].Prompt, msg)
		} else {
			assert.Equal(t, domain.CollectionCompleteMessage, msg)
		}
	}
	assert.Equal(t, domain.PhaseGenerating, c.Phase())
	assert.Empty(t, gen.calls, "generator must not run before the next message")

	msg, cont := c.ProcessResponse(ctx, "ok")
	assert.False(t, cont)
	assert.Equal(t, "**Python**\n1. Q", msg)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, []string{"Python", "Django", "PostgreSQL"}, gen.calls[0])
	assert.True(t, c.QuestionsGenerated())
	assert.False(t, c.Active())
	assert.Equal(t, domain.PhaseDone, c.Phase())

	msg, cont = c.ProcessResponse(ctx, "anything else?")
	assert.False(t, cont)
	assert.Equal(t, domain.ClosingMessage, msg)
	assert.Len(t, gen.calls, 1)

	rec := c.Record()
	name, _ := rec.Get(domain.FieldFullName)
	assert.Equal(t, "Jane Doe", name)
	techs, ok := rec.TechStack()
	assert.True(t, ok)
	assert.Equal(t, []string{"Python", "Django", "PostgreSQL"}, techs)
}

func TestConversation_RejectionIsIdempotent(t *testing.T) {
	tests := []struct {
		field domain.Field
		bad   string
		msg   string
	}{
		{domain.FieldFullName, "   ", validator.MsgRephrase},
		{domain.FieldEmail, "not-an-email", validator.MsgEmail},
		{domain.FieldPhone, "12345", validator.MsgPhone},
		{domain.FieldExperience, "lots", validator.MsgExperience},
		{domain.FieldExperience, "50.1", validator.MsgExperience},
		{domain.FieldPosition, "", validator.MsgRephrase},
		{domain.FieldLocation, "\t", validator.MsgRephrase},
		{domain.FieldTechStack, "  ", validator.MsgRephrase},
	}

	for _, tt := range tests {
		t.Run(tt.field.String()+"/"+tt.bad, func(t *testing.T) {
			c := runtime.NewConversation(&fakeGenerator{})
			feed(t, c, validAnswers[:tt.field])
			before := c.Snapshot()

			for i := 0; i < 3; i++ {
				msg, cont := c.ProcessResponse(context.Background(), tt.bad)
				assert.True(t, cont)
				assert.Equal(t, tt.msg, msg)
			}
			assert.Equal(t, before, c.Snapshot())
		})
	}
}

func TestConversation_ExperienceBoundary(t *testing.T) {
	c := runtime.NewConversation(&fakeGenerator{})
	feed(t, c, validAnswers[:domain.FieldExperience])

	_, _ = c.ProcessResponse(context.Background(), "50.1")
	assert.Equal(t, int(domain.FieldExperience), c.Cursor())

	_, cont := c.ProcessResponse(context.Background(), "50")
	assert.True(t, cont)
	assert.Equal(t, int(domain.FieldPosition), c.Cursor())
}

func TestConversation_ExitAtEveryCursor(t *testing.T) {
	for cursor := 0; cursor <= domain.FieldCount; cursor++ {
		gen := &fakeGenerator{reply: "questions"}
		c := runtime.NewConversation(gen)
		feed(t, c, validAnswers[:cursor])
		before := c.Record()

		msg, cont := c.ProcessResponse(context.Background(), "quit")
		assert.False(t, cont)
		assert.Equal(t, domain.ExitMessage, msg)
		assert.Equal(t, domain.PhaseDone, c.Phase())
		assert.Equal(t, cursor, c.Cursor())
		assert.Equal(t, before, c.Record())
		assert.Empty(t, gen.calls)
		assert.False(t, c.QuestionsGenerated())

		msg, cont = c.ProcessResponse(context.Background(), "hello?")
		assert.False(t, cont)
		assert.Equal(t, domain.ClosingMessage, msg)
	}
}

func TestConversation_ExitKeywordsWinOverValidation(t *testing.T) {
	for _, input := range []string{"no thanks", "Thanks a lot", "goodbye", "  EXIT  ", "<bye>"} {
		c := runtime.NewConversation(&fakeGenerator{})
		msg, cont := c.ProcessResponse(context.Background(), input)
		assert.False(t, cont, input)
		assert.Equal(t, domain.ExitMessage, msg, input)
	}
}

func TestConversation_ExitAfterDone(t *testing.T) {
	c := runtime.NewConversation(&fakeGenerator{reply: "Q"})
	feed(t, c, validAnswers)
	_, _ = c.ProcessResponse(context.Background(), "go")

	msg, cont := c.ProcessResponse(context.Background(), "bye")
	assert.False(t, cont)
	assert.Equal(t, domain.ExitMessage, msg)
	assert.True(t, c.QuestionsGenerated())
}

func TestConversation_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	c := runtime.NewConversation(gen)
	feed(t, c, validAnswers)

	msg, cont := c.ProcessResponse(context.Background(), "ready")
	assert.False(t, cont)
	assert.Equal(t, domain.GenerationFallbackMessage, msg)
	assert.True(t, c.QuestionsGenerated())
	assert.Equal(t, domain.PhaseDone, c.Phase())
	assert.Len(t, gen.calls, 1)

	msg, _ = c.ProcessResponse(context.Background(), "again")
	assert.Equal(t, domain.ClosingMessage, msg)
	assert.Len(t, gen.calls, 1)
}

func TestConversation_NilGenerator(t *testing.T) {
	c := runtime.NewConversation(nil)
	feed(t, c, validAnswers)

	msg, cont := c.ProcessResponse(context.Background(), "ready")
	assert.False(t, cont)
	assert.Equal(t, domain.GenerationFallbackMessage, msg)
}

func TestConversation_EmptyParsedTechStack(t *testing.T) {
	gen := &fakeGenerator{reply: "unused"}
	c := runtime.NewConversation(gen)
	answers := append(append([]string{}, validAnswers[:domain.FieldTechStack]...), " , ")
	feed(t, c, answers)

	techs, ok := c.Record().TechStack()
	assert.True(t, ok)
	assert.Empty(t, techs)

	msg, cont := c.ProcessResponse(context.Background(), "next")
	assert.False(t, cont)
	assert.Equal(t, domain.NoTechStackMessage, msg)
	assert.Empty(t, gen.calls)
	assert.False(t, c.QuestionsGenerated())
}

func TestConversation_GenerationIgnoresCancellation(t *testing.T) {
	gen := &fakeGenerator{reply: "Q"}
	c := runtime.NewConversation(gen)
	feed(t, c, validAnswers)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _ = c.ProcessResponse(ctx, "go")

	require.Len(t, gen.ctxs, 1)
	assert.NoError(t, gen.ctxs[0].Err())
}

func TestConversation_SanitizesInput(t *testing.T) {
	c := runtime.NewConversation(&fakeGenerator{})
	_, _ = c.ProcessResponse(context.Background(), "  <b>Jane</b>  ")

	name, ok := c.Record().Get(domain.FieldFullName)
	assert.True(t, ok)
	assert.Equal(t, "bJane/b", name)
}

func TestConversation_SnapshotRestore(t *testing.T) {
	gen := &fakeGenerator{reply: "Q"}
	c := runtime.NewConversation(gen)
	feed(t, c, validAnswers[:4])

	snap := c.Snapshot()
	restored, err := runtime.Restore(snap, gen)
	require.NoError(t, err)
	assert.Equal(t, 4, restored.Cursor())

	// The restored conversation owns its state.
	snap.Cursor = 0
	assert.Equal(t, 4, restored.Cursor())

	msg, cont := restored.ProcessResponse(context.Background(), "Backend Engineer")
	assert.True(t, cont)
	assert.Equal(t, "Thank you! What is your current location?", msg)
	assert.Equal(t, 4, c.Cursor(), "original conversation must be unaffected")
}

func TestRestore_RejectsInvalidSnapshot(t *testing.T) {
	_, err := runtime.Restore(nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)

	snap := domain.NewSnapshot()
	snap.Cursor = 3
	_, err = runtime.Restore(snap, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)

	snap = domain.NewSnapshot()
	snap.QuestionsGenerated = true
	_, err = runtime.Restore(snap, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
}

func TestConversation_LifecycleHooks(t *testing.T) {
	var committed, failed []domain.Field
	var exits []domain.Phase
	var gens []*domain.GenerationEvent

	hooks := domain.LifecycleHooks{
		OnFieldCommitted:   func(_ context.Context, e *domain.FieldEvent) { committed = append(committed, e.Field) },
		OnValidationFailed: func(_ context.Context, e *domain.FieldEvent) { failed = append(failed, e.Field) },
		OnExit:             func(_ context.Context, e *domain.ExitEvent) { exits = append(exits, e.Phase) },
		OnGeneration:       func(_ context.Context, e *domain.GenerationEvent) { gens = append(gens, e) },
	}

	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	c := runtime.NewConversation(&fakeGenerator{reply: "Q"}, runtime.WithLifecycleHooks(hooks), runtime.WithClock(clock))
	_, _ = c.ProcessResponse(context.Background(), "Jane")
	_, _ = c.ProcessResponse(context.Background(), "nope")
	feed(t, c, validAnswers[1:])
	_, _ = c.ProcessResponse(context.Background(), "go")

	assert.Len(t, committed, domain.FieldCount)
	assert.Equal(t, []domain.Field{domain.FieldEmail}, failed)
	assert.Empty(t, exits)
	require.Len(t, gens, 1)
	assert.Equal(t, 3, gens[0].Technologies)
	assert.Equal(t, time.Second, gens[0].Duration)
	assert.NoError(t, gens[0].Err)

	c2 := runtime.NewConversation(nil, runtime.WithLifecycleHooks(hooks))
	_, _ = c2.ProcessResponse(context.Background(), "exit")
	_, _ = c2.ProcessResponse(context.Background(), "exit")
	assert.Equal(t, []domain.Phase{domain.PhaseCollecting}, exits)
}
