package domain

import "strings"

// NormalizeText prepares a word or key for uniqueness comparison: whitespace
// runs collapse to a single space, the ends are trimmed and the result is
// lowercased. Diacritics, hyphens and apostrophes are preserved.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
