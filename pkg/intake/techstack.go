package intake

import "strings"

// ParseTechStack splits a free-text technology list into names.
// If the input contains a comma it is split on commas, otherwise on runs of
// whitespace. Tokens are trimmed and empty ones dropped; order, duplicates and
// case are preserved. The result is never nil.
func ParseTechStack(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var parts []string
	if strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	} else {
		parts = strings.Fields(raw)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
