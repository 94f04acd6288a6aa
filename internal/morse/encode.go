package morse

import "strings"

// Encode renders text as human-readable Morse: the codes of all mapped characters
// joined by single spaces, with a space shown as the word separator.
// Unmapped characters are dropped.
func Encode(text string) string {
	parts := make([]string, 0, len(text))

	for _, r := range strings.ToUpper(text) {
		if s, ok := Symbols(r); ok {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, " ")
}
