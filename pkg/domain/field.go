package domain

import "fmt"

// Field identifies one unit of candidate information.
// The numeric order is the order in which fields are collected.
type Field int

const (
	FieldFullName Field = iota
	FieldEmail
	FieldPhone
	FieldExperience
	FieldPosition
	FieldLocation
	FieldTechStack
)

// FieldCount is the number of fields collected per conversation.
const FieldCount = int(FieldTechStack) + 1

var fieldNames = [FieldCount]string{
	FieldFullName:   "full_name",
	FieldEmail:      "email",
	FieldPhone:      "phone",
	FieldExperience: "experience",
	FieldPosition:   "position",
	FieldLocation:   "location",
	FieldTechStack:  "tech_stack",
}

// String returns the wire name of the field (e.g. "full_name").
func (f Field) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return fieldNames[f]
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	return f >= 0 && int(f) < FieldCount
}

// ParseField resolves a wire name back to its Field.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// FieldSpec pairs a field with the prompt shown to the candidate.
type FieldSpec struct {
	Field  Field
	Prompt string
}

// Name returns the wire name of the described field.
func (s FieldSpec) Name() string {
	return s.Field.String()
}

var fieldSpecs = [FieldCount]FieldSpec{
	{Field: FieldFullName, Prompt: "Could you please provide your full name?"},
	{Field: FieldEmail, Prompt: "What is your email address?"},
	{Field: FieldPhone, Prompt: "What is your phone number?"},
	{Field: FieldExperience, Prompt: "How many years of professional experience do you have?"},
	{Field: FieldPosition, Prompt: "What position(s) are you interested in?"},
	{Field: FieldLocation, Prompt: "What is your current location?"},
	{Field: FieldTechStack, Prompt: "What technologies are you proficient in? (Please list your tech stack)"},
}

// Fields returns the ordered field sequence.
// The returned slice is a copy; the underlying table never changes.
func Fields() []FieldSpec {
	out := make([]FieldSpec, FieldCount)
	copy(out, fieldSpecs[:])
	return out
}

// Spec returns the FieldSpec for f.
func Spec(f Field) FieldSpec {
	return fieldSpecs[f]
}

// MarshalText encodes the field as its wire name.
func (f Field) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	return []byte(fieldNames[f]), nil
}

// UnmarshalText decodes a wire name.
func (f *Field) UnmarshalText(text []byte) error {
	v, ok := ParseField(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(text))
	}
	*f = v
	return nil
}
