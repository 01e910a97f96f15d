package workspace

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// BuildFunc creates the workspace of a client device.
type BuildFunc func(ctx context.Context, clientID uuid.UUID) (*Workspace, error)

type entry struct {
	ws       *Workspace
	lastUsed time.Time
}

// Hub owns the workspaces of all connected devices.
type Hub struct {
	build   BuildFunc
	clock   clockwork.Clock
	idleTTL time.Duration
	log     *slog.Logger

	group singleflight.Group

	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

func NewHub(build BuildFunc, clock clockwork.Clock, idleTTL time.Duration, log *slog.Logger) *Hub {
	return &Hub{
		build:   build,
		clock:   clock,
		idleTTL: idleTTL,
		log:     log.With("component", "workspace_hub"),
		entries: make(map[uuid.UUID]*entry),
	}
}

// Get returns the workspace of clientID, building it on first use.
// Concurrent first requests of one device share a single build.
func (h *Hub) Get(ctx context.Context, clientID uuid.UUID) (*Workspace, error) {
	if ws, ok := h.lookup(clientID); ok {
		return ws, nil
	}

	v, err, _ := h.group.Do(clientID.String(), func() (any, error) {
		if ws, ok := h.lookup(clientID); ok {
			return ws, nil
		}
		ws, err := h.build(ctx, clientID)
		if err != nil {
			return nil, err
		}
		h.mu.Lock()
		h.entries[clientID] = &entry{ws: ws, lastUsed: h.clock.Now()}
		h.mu.Unlock()
		h.log.DebugContext(ctx, "workspace created", slog.String("client_id", clientID.String()))
		return ws, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Workspace), nil
}

func (h *Hub) lookup(clientID uuid.UUID) (*Workspace, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.entries[clientID]
	if !ok {
		return nil, false
	}
	e.lastUsed = h.clock.Now()
	return e.ws, true
}

// Len returns the number of live workspaces.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Sweep closes workspaces idle for longer than the idle TTL, saving pending
// edits first. It returns the number evicted.
func (h *Hub) Sweep(ctx context.Context) int {
	cutoff := h.clock.Now().Add(-h.idleTTL)

	h.mu.Lock()
	var idle []*Workspace
	for id, e := range h.entries {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e.ws)
			delete(h.entries, id)
		}
	}
	h.mu.Unlock()

	for _, ws := range idle {
		if err := ws.Close(ctx); err != nil {
			h.log.ErrorContext(ctx, "close idle workspace", slog.String("error", err.Error()))
		}
	}
	if len(idle) > 0 {
		h.log.InfoContext(ctx, "idle workspaces evicted",
			slog.Int("count", len(idle)),
			slog.Int("remaining", h.Len()),
		)
	}
	return len(idle)
}

// Run sweeps on every interval until ctx is done.
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	ticker := h.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			h.Sweep(ctx)
		}
	}
}

// Close flushes and closes every workspace.
func (h *Hub) Close(ctx context.Context) error {
	h.mu.Lock()
	all := make([]*Workspace, 0, len(h.entries))
	for _, e := range h.entries {
		all = append(all, e.ws)
	}
	clear(h.entries)
	h.mu.Unlock()

	var (
		mu   sync.Mutex
		errs []error
	)
	var g errgroup.Group
	g.SetLimit(8)
	for _, ws := range all {
		g.Go(func() error {
			if err := ws.Close(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
