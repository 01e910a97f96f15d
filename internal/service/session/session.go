package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// CreateSession inserts a new session, stores its id on the device and
// adopts it.
func (s *Service) CreateSession(ctx context.Context) (uuid.UUID, error) {
	sess, err := s.repo.Create(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.storage.Set(ctx, StorageKey, sess.ID.String()); err != nil {
		return uuid.Nil, fmt.Errorf("store session id: %w", err)
	}

	s.mu.Lock()
	s.sessionID = sess.ID
	s.persona = nil
	s.mu.Unlock()

	s.log.InfoContext(ctx, "session created", slog.String("session_id", sess.ID.String()))
	s.notify()
	return sess.ID, nil
}

// RefreshSession validates the stored session id against the backend.
// A confirmed session is adopted and touched and its persona loaded. A
// session the backend no longer knows is purged from the device. The
// loading flag is cleared after the first refresh, whatever its outcome.
func (s *Service) RefreshSession(ctx context.Context) error {
	err := s.refresh(ctx)

	s.mu.Lock()
	if !s.refreshed {
		s.refreshed = true
		s.loading = false
	}
	s.mu.Unlock()

	s.notify()
	return err
}

func (s *Service) refresh(ctx context.Context) error {
	stored, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("read stored session id: %w", err)
	}
	if !ok {
		s.reset()
		return nil
	}

	id, err := uuid.Parse(stored)
	if err != nil {
		s.log.WarnContext(ctx, "malformed stored session id", slog.String("value", stored))
		return s.purge(ctx)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.InfoContext(ctx, "stored session no longer exists", slog.String("session_id", id.String()))
			return s.purge(ctx)
		}
		return fmt.Errorf("get session: %w", err)
	}

	if err := s.repo.Touch(ctx, id); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}

	persona, err := s.repo.GetPersona(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get persona: %w", err)
	}

	s.mu.Lock()
	s.sessionID = id
	s.persona = persona
	s.mu.Unlock()
	return nil
}

// ClearSession forgets the session on this device. The backend rows are kept.
func (s *Service) ClearSession(ctx context.Context) error {
	if err := s.purge(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Service) purge(ctx context.Context) error {
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("delete stored session id: %w", err)
	}
	s.reset()
	return nil
}

func (s *Service) reset() {
	s.mu.Lock()
	s.sessionID = uuid.Nil
	s.persona = nil
	s.mu.Unlock()
}
