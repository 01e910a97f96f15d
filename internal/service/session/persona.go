package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// UpdatePersona upserts the persona of the target session. The target is
// override when given, otherwise the active session.
func (s *Service) UpdatePersona(ctx context.Context, input PersonaInput, override *uuid.UUID) (*domain.Persona, error) {
	target, ok := s.SessionID()
	if override != nil && *override != uuid.Nil {
		target, ok = *override, true
	}
	if !ok {
		return nil, domain.ErrNoSession
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	p := domain.Persona{
		SessionID:       target,
		Goals:           dedupe(input.Goals),
		ExperienceLevel: input.ExperienceLevel,
		FocusAreas:      dedupe(input.FocusAreas),
		PreferredTone:   input.PreferredTone,
	}

	_, err := s.repo.GetPersona(ctx, target)
	var saved *domain.Persona
	switch {
	case err == nil:
		saved, err = s.repo.UpdatePersona(ctx, p)
	case errors.Is(err, domain.ErrNotFound):
		saved, err = s.repo.CreatePersona(ctx, p)
	}
	if err != nil {
		return nil, fmt.Errorf("save persona: %w", err)
	}

	s.mu.Lock()
	s.persona = saved
	s.mu.Unlock()

	s.log.InfoContext(ctx, "persona saved",
		slog.String("session_id", target.String()),
		slog.String("experience_level", saved.ExperienceLevel.String()),
	)
	s.notify()

	out := *saved
	return &out, nil
}
