package editor

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// MarkKind is an inline formatting toggle.
type MarkKind string

const (
	MarkBold      MarkKind = "bold"
	MarkItalic    MarkKind = "italic"
	MarkUnderline MarkKind = "underline"
	MarkHighlight MarkKind = "highlight"
)

// markKinds is also the nesting order used when rendering.
var markKinds = []MarkKind{MarkBold, MarkItalic, MarkUnderline, MarkHighlight}

func (k MarkKind) IsValid() bool {
	return slices.Contains(markKinds, k)
}

// Mark applies a formatting kind to the character range [From, To).
type Mark struct {
	Kind MarkKind `json:"kind"`
	From int      `json:"from"`
	To   int      `json:"to"`
}

// Selection is a character range [From, To). From == To is a caret.
type Selection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s Selection) validate(length int) error {
	if s.From < 0 || s.To < s.From || s.To > length {
		return domain.NewValidationError("selection", fmt.Sprintf("must satisfy 0 <= from <= to <= %d", length))
	}
	return nil
}

// normalizeMarks drops empty or invalid ranges, merges overlapping and
// adjacent ranges of the same kind and sorts by kind order then position.
func normalizeMarks(marks []Mark, length int) []Mark {
	out := make([]Mark, 0, len(marks))
	for _, kind := range markKinds {
		var spans []Mark
		for _, m := range marks {
			if m.Kind != kind {
				continue
			}
			m.From = max(m.From, 0)
			m.To = min(m.To, length)
			if m.From < m.To {
				spans = append(spans, m)
			}
		}
		slices.SortFunc(spans, func(a, b Mark) int { return a.From - b.From })

		for _, m := range spans {
			if n := len(out); n > 0 && out[n-1].Kind == kind && m.From <= out[n-1].To {
				out[n-1].To = max(out[n-1].To, m.To)
				continue
			}
			out = append(out, m)
		}
	}
	return out
}

// isActive reports whether kind covers the whole selection. For a caret the
// character before it decides, or the first character at offset 0.
func isActive(marks []Mark, kind MarkKind, sel Selection) bool {
	from, to := sel.From, sel.To
	if from == to {
		if from > 0 {
			from--
		}
		to = from + 1
	}
	for _, m := range marks {
		if m.Kind == kind && m.From <= from && to <= m.To {
			return true
		}
	}
	return false
}

// toggleMark removes kind from the selection when it covers all of it and
// applies it otherwise. Toggling twice restores the original marks.
func toggleMark(marks []Mark, kind MarkKind, sel Selection, length int) []Mark {
	if isActive(marks, kind, sel) {
		return normalizeMarks(removeRange(marks, kind, sel.From, sel.To), length)
	}
	return normalizeMarks(append(slices.Clone(marks), Mark{Kind: kind, From: sel.From, To: sel.To}), length)
}

func removeRange(marks []Mark, kind MarkKind, from, to int) []Mark {
	out := make([]Mark, 0, len(marks)+1)
	for _, m := range marks {
		if m.Kind != kind || m.To <= from || m.From >= to {
			out = append(out, m)
			continue
		}
		if m.From < from {
			out = append(out, Mark{Kind: kind, From: m.From, To: from})
		}
		if m.To > to {
			out = append(out, Mark{Kind: kind, From: to, To: m.To})
		}
	}
	return out
}

// shiftMarks maps marks through a text replacement described by the common
// prefix and suffix of the old and new content. Text inserted inside a mark
// extends it; marks fully inside deleted text disappear.
func shiftMarks(marks []Mark, oldText, newText []rune) []Mark {
	prefix := 0
	for prefix < len(oldText) && prefix < len(newText) && oldText[prefix] == newText[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldText)-prefix && suffix < len(newText)-prefix &&
		oldText[len(oldText)-1-suffix] == newText[len(newText)-1-suffix] {
		suffix++
	}

	oldEnd := len(oldText) - suffix
	delta := len(newText) - len(oldText)
	newEnd := oldEnd + delta

	insertion := prefix == oldEnd
	mapFrom := func(p int) int {
		switch {
		case p < prefix:
			return p
		case p >= oldEnd:
			return p + delta
		default:
			return prefix
		}
	}
	mapTo := func(p int) int {
		switch {
		case p < prefix || (p == prefix && !insertion):
			return p
		case p > oldEnd:
			return p + delta
		default:
			return newEnd
		}
	}

	out := make([]Mark, 0, len(marks))
	for _, m := range marks {
		m.From = mapFrom(m.From)
		m.To = mapTo(m.To)
		out = append(out, m)
	}
	return normalizeMarks(out, len(newText))
}
