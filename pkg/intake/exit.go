package intake

import "strings"

// exitKeywords end the conversation when found anywhere in the input.
var exitKeywords = []string{"exit", "quit", "bye", "thank you", "thanks"}

// IsExitCommand reports whether text asks to end the conversation.
// Matching is case-insensitive and by substring, so "no thanks" and
// "goodbye" both count.
func IsExitCommand(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	for _, kw := range exitKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
