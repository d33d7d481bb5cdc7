package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/talentscout/pkg/domain"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"a@b.co", true},
		{"jane.doe+jobs@example.com", true},
		{"user_1%x@sub.domain.org", true},
		{"a@b", false},
		{"a.b.co", false},
		{"@b.co", false},
		{"a@b.c", false},
		{"a b@c.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.input))
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"+1 (555) 123-4567", true},
		{"5551234567", true},
		{"555 123 4567", true},
		{"+44 20 7946 0958", true},
		{"12345", false},
		{"555-CALL-NOW", false},
		{"555123456x", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.input))
		})
	}
}

func TestExperience(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"5", true},
		{"0", true},
		{"2.5 years", true},
		{"1 year", true},
		{"3yrs", true},
		{"7 YR", true},
		{"50", true},
		{"50.1", false},
		{"-1", false},
		{"abc", false},
		{"five years", false},
		{"NaN", false},
		{"Inf", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Experience(tt.input))
		})
	}
}

func TestNonEmpty(t *testing.T) {
	assert.True(t, NonEmpty("x"))
	assert.False(t, NonEmpty(""))
	assert.False(t, NonEmpty(" \t "))
}

func TestTable_Validate(t *testing.T) {
	table := NewTable()

	t.Run("Blank Input Uses Rephrase For Every Field", func(t *testing.T) {
		for _, spec := range domain.Fields() {
			_, err := table.Validate(spec.Field, "   ")
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr, spec.Name())
			assert.Equal(t, MsgRephrase, vErr.Message)
			assert.Equal(t, spec.Field, vErr.Field)
		}
	})

	t.Run("Field Specific Messages", func(t *testing.T) {
		tests := []struct {
			field domain.Field
			input string
			msg   string
		}{
			{domain.FieldEmail, "not-an-email", MsgEmail},
			{domain.FieldPhone, "123", MsgPhone},
			{domain.FieldExperience, "lots", MsgExperience},
		}
		for _, tt := range tests {
			_, err := table.Validate(tt.field, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.msg, vErr.Message)
		}
	})

	t.Run("Success Returns Trimmed Value", func(t *testing.T) {
		clean, err := table.Validate(domain.FieldFullName, "  Jane Doe ")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", clean)

		clean, err = table.Validate(domain.FieldExperience, " 2.5 years ")
		require.NoError(t, err)
		assert.Equal(t, "2.5 years", clean)
	})

	t.Run("Unknown Field", func(t *testing.T) {
		_, err := table.Validate(domain.Field(42), "x")
		assert.ErrorIs(t, err, domain.ErrUnknownField)
		assert.False(t, errors.Is(err, ErrValidation))
	})

	t.Run("Repeated Rejection Is Stable", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := table.Validate(domain.FieldEmail, "bad")
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, MsgEmail, vErr.Message)
		}
	})
}
