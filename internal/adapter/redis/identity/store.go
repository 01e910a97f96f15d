// Package identity keeps small per-device values (the active session id)
// in Redis, standing in for the browser's local storage.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/writemate-backend/internal/config"
)

// NewClient opens a Redis client and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// Store is a Redis-backed key/value store partitioned by client device.
type Store struct {
	rdb    redis.Cmdable
	prefix string
}

// New creates a Store. Keys are laid out as {prefix}:client:{id}:{key}.
func New(rdb redis.Cmdable, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) key(clientID uuid.UUID, name string) string {
	return s.prefix + ":client:" + clientID.String() + ":" + name
}

// Get returns the value and whether it was present.
func (s *Store) Get(ctx context.Context, clientID uuid.UUID, name string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(clientID, name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("identity get %s: %w", name, err)
	}
	return v, true, nil
}

// Set stores a value without expiry.
func (s *Store) Set(ctx context.Context, clientID uuid.UUID, name, value string) error {
	if err := s.rdb.Set(ctx, s.key(clientID, name), value, 0).Err(); err != nil {
		return fmt.Errorf("identity set %s: %w", name, err)
	}
	return nil
}

// Delete removes a value. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, clientID uuid.UUID, name string) error {
	if err := s.rdb.Del(ctx, s.key(clientID, name)).Err(); err != nil {
		return fmt.Errorf("identity delete %s: %w", name, err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// For returns a view of the store bound to a single device.
func (s *Store) For(clientID uuid.UUID) *Local {
	return &Local{store: s, clientID: clientID}
}

// Local is the durable storage of one device.
type Local struct {
	store    *Store
	clientID uuid.UUID
}

func (l *Local) Get(ctx context.Context, name string) (string, bool, error) {
	return l.store.Get(ctx, l.clientID, name)
}

func (l *Local) Set(ctx context.Context, name, value string) error {
	return l.store.Set(ctx, l.clientID, name, value)
}

func (l *Local) Delete(ctx context.Context, name string) error {
	return l.store.Delete(ctx, l.clientID, name)
}
