package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is an anonymous, locally keyed identity. All other data is scoped to it.
type Session struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	LastActiveAt time.Time
}

// Persona is the writer profile used to tailor feedback. One per session.
type Persona struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	Goals           []string
	ExperienceLevel ExperienceLevel
	FocusAreas      []string
	PreferredTone   Tone
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
