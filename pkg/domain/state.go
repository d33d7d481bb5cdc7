package domain

import "fmt"

// Phase is the coarse state of a conversation, derived from a Snapshot.
type Phase string

const (
	PhaseCollecting Phase = "collecting" // Cursor points at a field awaiting an answer
	PhaseGenerating Phase = "generating" // All fields collected, questions not yet generated
	PhaseDone       Phase = "done"       // Terminal state
)

// Snapshot is the flat, serializable state of one conversation.
// It is used to hand a live conversation across a host-managed session boundary;
// it is never written to durable storage by this module.
type Snapshot struct {
	// Cursor is the index of the next field awaiting a valid answer (0..FieldCount).
	Cursor int `json:"cursor"`

	// Record holds the committed answers.
	Record Record `json:"record"`

	// Active is false once the conversation ended (exit or completion).
	Active bool `json:"active"`

	// QuestionsGenerated is true once a generation attempt has been made.
	QuestionsGenerated bool `json:"questions_generated"`

	// Sealed holds the encrypted form of a snapshot while it sits in a store.
	// A sealed snapshot cannot be restored until it is opened again.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewSnapshot creates the state of a fresh conversation.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Cursor: 0,
		Active: true,
	}
}

// Phase derives the conversation phase from the snapshot.
func (s *Snapshot) Phase() Phase {
	switch {
	case !s.Active:
		return PhaseDone
	case s.Cursor < FieldCount:
		return PhaseCollecting
	default:
		return PhaseGenerating
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Record = s.Record.Clone()
	if s.Sealed != nil {
		out.Sealed = append([]byte(nil), s.Sealed...)
	}
	return &out
}

// Validate checks the snapshot invariants.
func (s *Snapshot) Validate() error {
	if len(s.Sealed) > 0 {
		return fmt.Errorf("%w: snapshot is sealed", ErrInvalidSnapshot)
	}
	if s.Cursor < 0 || s.Cursor > FieldCount {
		return fmt.Errorf("%w: cursor %d out of range [0, %d]", ErrInvalidSnapshot, s.Cursor, FieldCount)
	}
	for i := 0; i < FieldCount; i++ {
		f := Field(i)
		has := s.Record.Has(f)
		if i < s.Cursor && !has {
			return fmt.Errorf("%w: field %s missing before cursor %d", ErrInvalidSnapshot, f, s.Cursor)
		}
		if i >= s.Cursor && has {
			return fmt.Errorf("%w: field %s set at or after cursor %d", ErrInvalidSnapshot, f, s.Cursor)
		}
	}
	if s.QuestionsGenerated && (s.Cursor != FieldCount || s.Active) {
		return fmt.Errorf("%w: questions generated before completion", ErrInvalidSnapshot)
	}
	return nil
}
