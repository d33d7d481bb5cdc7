// Package validator checks candidate answers field by field.
package validator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/talentscout/pkg/domain"
)

// Clarification messages returned to the candidate.
const (
	MsgRephrase   = domain.RephraseMessage
	MsgEmail      = "That doesn't appear to be a valid email address. Could you please provide a valid email?"
	MsgPhone      = "That doesn't appear to be a valid phone number. Could you please provide a valid phone number?"
	MsgExperience = "Please provide a valid number of years of experience (e.g., '5' or '2.5 years')."
)

// MaxExperienceYears is the upper bound accepted by Experience.
const MaxExperienceYears = 50

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError describes a rejected answer.
// Message is the text shown to the candidate.
type ValidationError struct {
	Field   domain.Field
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneSeparators  = strings.NewReplacer("-", "", "(", "", ")", "", "+", "")
	experienceSuffix = regexp.MustCompile(`\s*(years?|yrs?)\s*`)
)

// Email reports whether s looks like an e-mail address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone reports whether s holds at least ten digits once spaces, dashes,
// parentheses and plus signs are removed, and nothing else.
func Phone(s string) bool {
	cleaned := phoneSeparators.Replace(strings.Join(strings.Fields(s), ""))
	if utf8.RuneCountInString(cleaned) < 10 {
		return false
	}
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Experience reports whether s is a number of years between 0 and 50,
// optionally followed by "year", "years", "yr" or "yrs".
func Experience(s string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(s))
	cleaned = strings.TrimSpace(experienceSuffix.ReplaceAllString(cleaned, ""))

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= 0 && v <= MaxExperienceYears
}

// NonEmpty reports whether s has any non-whitespace content.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Rule pairs a check with the message shown when it fails.
type Rule struct {
	Check   func(string) bool
	Message string
}

// Table holds one Rule per field, indexed by domain.Field.
type Table [domain.FieldCount]Rule

// Default is the rule table used by conversations.
var Default = NewTable()

// NewTable builds the standard rule table.
func NewTable() Table {
	nonEmpty := Rule{Check: NonEmpty, Message: MsgRephrase}
	return Table{
		domain.FieldFullName:   nonEmpty,
		domain.FieldEmail:      {Check: Email, Message: MsgEmail},
		domain.FieldPhone:      {Check: Phone, Message: MsgPhone},
		domain.FieldExperience: {Check: Experience, Message: MsgExperience},
		domain.FieldPosition:   nonEmpty,
		domain.FieldLocation:   nonEmpty,
		domain.FieldTechStack:  nonEmpty,
	}
}

// Validate checks value against the rule for field.
// Blank input is rejected with the rephrase message before any field rule runs.
// On success it returns the trimmed value.
func (t *Table) Validate(field domain.Field, value string) (string, error) {
	if !field.Valid() {
		return "", fmt.Errorf("%w: %d", domain.ErrUnknownField, int(field))
	}

	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", &ValidationError{Field: field, Message: MsgRephrase}
	}

	rule := t[field]
	if rule.Check != nil && !rule.Check(clean) {
		return "", &ValidationError{Field: field, Message: rule.Message}
	}
	return clean, nil
}
