/*
Package domain contains the core domain models of the TalentScout screening flow.

It defines the fixed sequence of candidate fields, the record built while a
conversation collects them, and the snapshot of a conversation's state. This
package is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Field / FieldSpec: The ordered, immutable sequence of questions asked to a candidate.
  - Record: The candidate's answers, built one field at a time.
  - Snapshot: The flat state of one conversation (cursor, record, active, questions_generated).
  - LifecycleHooks: Callbacks fired by the state machine for auditing and metrics.
*/
package domain
