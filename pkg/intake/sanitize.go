package intake

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputRunes is the maximum length of a sanitized message, in runes.
const MaxInputRunes = 500

// Sanitize cleans raw user input.
// It repairs invalid UTF-8, strips control characters other than
// newline, tab and carriage return, trims surrounding whitespace,
// removes every '<' and '>' and truncates the result to MaxInputRunes.
// Truncation is the last step; the truncated text is not trimmed again.
func Sanitize(raw string) string {
	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, string(utf8.RuneError))
	}

	s := stripControl(raw)
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)

	if utf8.RuneCountInString(s) <= MaxInputRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxInputRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// stripControl removes NULs, bells, the ESC rune of ANSI sequences and
// similar runes; the printable rest of a sequence is kept.
func stripControl(input string) string {
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
