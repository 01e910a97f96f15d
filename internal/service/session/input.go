package session

import (
	"strings"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// PersonaInput holds the onboarding answers.
type PersonaInput struct {
	Goals           []string
	ExperienceLevel domain.ExperienceLevel
	FocusAreas      []string
	PreferredTone   domain.Tone
}

// Validate checks all fields and collects all errors.
func (i PersonaInput) Validate() error {
	var errs domain.ValidationError

	if !i.ExperienceLevel.IsValid() {
		errs.Add("experience_level", "must be one of beginner, intermediate, advanced, professional")
	}
	if !i.PreferredTone.IsValid() {
		errs.Add("preferred_tone", "must be one of supportive, balanced, direct, strict")
	}
	for _, g := range i.Goals {
		if strings.TrimSpace(g) == "" {
			errs.Add("goals", "must not contain empty values")
			break
		}
	}
	for _, f := range i.FocusAreas {
		if strings.TrimSpace(f) == "" {
			errs.Add("focus_areas", "must not contain empty values")
			break
		}
	}

	return errs.Err()
}

// dedupe trims values and drops duplicates, keeping the first occurrence.
// Goals and focus areas are sets.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
