package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record holds a candidate's answers.
// Scalar fields are strings; the tech stack is an ordered list of names.
// Values are only ever added: a committed field cannot be overwritten or removed.
type Record struct {
	values    map[Field]string
	techStack []string
	hasStack  bool
}

// Has reports whether f has been committed.
func (r Record) Has(f Field) bool {
	if f == FieldTechStack {
		return r.hasStack
	}
	_, ok := r.values[f]
	return ok
}

// Len returns the number of committed fields.
func (r Record) Len() int {
	n := len(r.values)
	if r.hasStack {
		n++
	}
	return n
}

// Get returns the committed value of a scalar field.
// For the tech stack it returns the names joined by ", ".
func (r Record) Get(f Field) (string, bool) {
	if f == FieldTechStack {
		if !r.hasStack {
			return "", false
		}
		return strings.Join(r.techStack, ", "), true
	}
	v, ok := r.values[f]
	return v, ok
}

// TechStack returns a copy of the committed technology list.
func (r Record) TechStack() ([]string, bool) {
	if !r.hasStack {
		return nil, false
	}
	out := make([]string, len(r.techStack))
	copy(out, r.techStack)
	return out, true
}

// Commit stores the value of a scalar field.
func (r *Record) Commit(f Field, value string) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	if f == FieldTechStack {
		return fmt.Errorf("%s holds a list, use CommitTechStack", f)
	}
	if r.Has(f) {
		return fmt.Errorf("%w: %s", ErrFieldAlreadySet, f)
	}
	if r.values == nil {
		r.values = make(map[Field]string, FieldCount-1)
	}
	r.values[f] = value
	return nil
}

// CommitTechStack stores the parsed technology list.
func (r *Record) CommitTechStack(techs []string) error {
	if r.hasStack {
		return fmt.Errorf("%w: %s", ErrFieldAlreadySet, FieldTechStack)
	}
	r.techStack = make([]string, len(techs))
	copy(r.techStack, techs)
	r.hasStack = true
	return nil
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := Record{hasStack: r.hasStack}
	if r.values != nil {
		out.values = make(map[Field]string, len(r.values))
		for k, v := range r.values {
			out.values[k] = v
		}
	}
	if r.techStack != nil {
		out.techStack = make([]string, len(r.techStack))
		copy(out.techStack, r.techStack)
	}
	return out
}

// Map returns the record keyed by wire name.
// The tech stack is returned as []string.
func (r Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	for f, v := range r.values {
		out[f.String()] = v
	}
	if r.hasStack {
		techs, _ := r.TechStack()
		out[FieldTechStack.String()] = techs
	}
	return out
}

// MarshalJSON encodes the record as a flat object keyed by wire name.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// UnmarshalJSON decodes a flat object keyed by wire name.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Record
	for name, msg := range raw {
		f, ok := ParseField(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		if f == FieldTechStack {
			var techs []string
			if err := json.Unmarshal(msg, &techs); err != nil {
				return fmt.Errorf("decode %s: %w", name, err)
			}
			if techs == nil {
				techs = []string{}
			}
			_ = out.CommitTechStack(techs)
			continue
		}
		var v string
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		_ = out.Commit(f, v)
	}
	*r = out
	return nil
}

var summaryLabels = [FieldCount]string{
	FieldFullName:   "Full Name",
	FieldEmail:      "Email",
	FieldPhone:      "Phone",
	FieldExperience: "Years of Experience",
	FieldPosition:   "Desired Position(s)",
	FieldLocation:   "Current Location",
	FieldTechStack:  "Tech Stack",
}

// Summary renders the record as a Markdown block for recruiters.
// Fields that are absent or empty are skipped.
func (r Record) Summary() string {
	var b strings.Builder
	b.WriteString("**Candidate Summary**\n\n")
	for i := 0; i < FieldCount; i++ {
		f := Field(i)
		v, ok := r.Get(f)
		if !ok || v == "" {
			continue
		}
		fmt.Fprintf(&b, "**%s:** %s\n", summaryLabels[f], v)
	}
	return b.String()
}
