// Package session is the session store: the anonymous session id of a
// device and the writer persona attached to it.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/pkg/observer"
)

// StorageKey is the key of the session id in the device's durable storage.
const StorageKey = "writemate_session_id"

type sessionRepo interface {
	Create(ctx context.Context) (*domain.Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Touch(ctx context.Context, id uuid.UUID) error
	GetPersona(ctx context.Context, sessionID uuid.UUID) (*domain.Persona, error)
	CreatePersona(ctx context.Context, p domain.Persona) (*domain.Persona, error)
	UpdatePersona(ctx context.Context, p domain.Persona) (*domain.Persona, error)
}

type localStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Snapshot is the published state of the store.
type Snapshot struct {
	SessionID              *uuid.UUID
	Persona                *domain.Persona
	Loading                bool
	HasCompletedOnboarding bool
}

// Service holds the session state of one device.
type Service struct {
	repo    sessionRepo
	storage localStorage
	log     *slog.Logger

	mu        sync.RWMutex
	sessionID uuid.UUID
	persona   *domain.Persona
	loading   bool
	refreshed bool

	subject observer.Subject[Snapshot]
}

// NewService creates a session store. It starts in the loading state until
// the first RefreshSession completes.
func NewService(log *slog.Logger, repo sessionRepo, storage localStorage) *Service {
	return &Service{
		repo:    repo,
		storage: storage,
		log:     log.With("service", "session"),
		loading: true,
	}
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() Snapshot {
	snap := Snapshot{
		Loading:                s.loading,
		HasCompletedOnboarding: s.persona != nil,
	}
	if s.sessionID != uuid.Nil {
		id := s.sessionID
		snap.SessionID = &id
	}
	if s.persona != nil {
		p := *s.persona
		snap.Persona = &p
	}
	return snap
}

// Subscribe registers fn to receive a snapshot after every mutation.
func (s *Service) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.subject.Subscribe(fn)
}

// SessionID returns the active session id, if any.
func (s *Service) SessionID() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID, s.sessionID != uuid.Nil
}

// Persona returns the loaded persona or nil.
func (s *Service) Persona() *domain.Persona {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.persona == nil {
		return nil
	}
	p := *s.persona
	return &p
}

// HasCompletedOnboarding reports whether the session has a persona.
func (s *Service) HasCompletedOnboarding() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persona != nil
}

// notify publishes the current state. Must be called without s.mu held.
func (s *Service) notify() {
	s.subject.Notify(s.Snapshot())
}
