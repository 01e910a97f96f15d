package domain

import (
	"strings"
	"unicode/utf8"
)

// CountWords splits on runs of whitespace and counts the non-empty tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// TextLength is the length of text in characters. Annotation offsets are
// expressed in the same unit.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}
