// Package session implements session and persona persistence using PostgreSQL.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/adapter/postgres"
	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// Repo provides session and persona persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new session repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type sessionRow struct {
	ID           uuid.UUID `db:"id"`
	CreatedAt    time.Time `db:"created_at"`
	LastActiveAt time.Time `db:"last_active_at"`
}

type personaRow struct {
	ID              uuid.UUID `db:"id"`
	SessionID       uuid.UUID `db:"session_id"`
	Goals           []string  `db:"goals"`
	ExperienceLevel string    `db:"experience_level"`
	FocusAreas      []string  `db:"focus_areas"`
	PreferredTone   string    `db:"preferred_tone"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const personaColumns = `id, session_id, goals, experience_level, focus_areas, preferred_tone, created_at, updated_at`

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

const createSessionSQL = `INSERT INTO sessions DEFAULT VALUES RETURNING id, created_at, last_active_at`

// Create inserts a new empty session.
func (r *Repo) Create(ctx context.Context) (*domain.Session, error) {
	var row sessionRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, createSessionSQL); err != nil {
		return nil, postgres.MapError(err, "session", uuid.Nil)
	}
	s := toDomainSession(row)
	return &s, nil
}

const getSessionSQL = `SELECT id, created_at, last_active_at FROM sessions WHERE id = $1`

// GetByID returns a session. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var row sessionRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getSessionSQL, id); err != nil {
		return nil, postgres.MapError(err, "session", id)
	}
	s := toDomainSession(row)
	return &s, nil
}

const touchSessionSQL = `UPDATE sessions SET last_active_at = now() WHERE id = $1`

// Touch stamps last_active_at. Returns domain.ErrNotFound if the session is gone.
func (r *Repo) Touch(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, touchSessionSQL, id)
	if err != nil {
		return postgres.MapError(err, "session", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Personas
// ---------------------------------------------------------------------------

const getPersonaSQL = `SELECT ` + personaColumns + ` FROM personas WHERE session_id = $1`

// GetPersona returns the persona of a session, or domain.ErrNotFound.
func (r *Repo) GetPersona(ctx context.Context, sessionID uuid.UUID) (*domain.Persona, error) {
	var row personaRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getPersonaSQL, sessionID); err != nil {
		return nil, postgres.MapError(err, "persona", sessionID)
	}
	p := toDomainPersona(row)
	return &p, nil
}

const createPersonaSQL = `
INSERT INTO personas (session_id, goals, experience_level, focus_areas, preferred_tone)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + personaColumns

// CreatePersona inserts the persona of a session.
func (r *Repo) CreatePersona(ctx context.Context, p domain.Persona) (*domain.Persona, error) {
	var row personaRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, createPersonaSQL,
		p.SessionID, nonNil(p.Goals), string(p.ExperienceLevel), nonNil(p.FocusAreas), string(p.PreferredTone),
	)
	if err != nil {
		return nil, postgres.MapError(err, "persona", p.SessionID)
	}
	out := toDomainPersona(row)
	return &out, nil
}

const updatePersonaSQL = `
UPDATE personas
SET goals = $2, experience_level = $3, focus_areas = $4, preferred_tone = $5, updated_at = now()
WHERE session_id = $1
RETURNING ` + personaColumns

// UpdatePersona overwrites the persona of a session and stamps updated_at.
func (r *Repo) UpdatePersona(ctx context.Context, p domain.Persona) (*domain.Persona, error) {
	var row personaRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, updatePersonaSQL,
		p.SessionID, nonNil(p.Goals), string(p.ExperienceLevel), nonNil(p.FocusAreas), string(p.PreferredTone),
	)
	if err != nil {
		return nil, postgres.MapError(err, "persona", p.SessionID)
	}
	out := toDomainPersona(row)
	return &out, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toDomainSession(row sessionRow) domain.Session {
	return domain.Session{
		ID:           row.ID,
		CreatedAt:    row.CreatedAt,
		LastActiveAt: row.LastActiveAt,
	}
}

func toDomainPersona(row personaRow) domain.Persona {
	return domain.Persona{
		ID:              row.ID,
		SessionID:       row.SessionID,
		Goals:           nonNil(row.Goals),
		ExperienceLevel: domain.ExperienceLevel(row.ExperienceLevel),
		FocusAreas:      nonNil(row.FocusAreas),
		PreferredTone:   domain.Tone(row.PreferredTone),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
