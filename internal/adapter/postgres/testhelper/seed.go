package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// SeedSession inserts a fresh session row and returns its id.
func SeedSession(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO sessions DEFAULT VALUES RETURNING id`,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedSession: %v", err)
	}
	return id
}

// SeedDocument inserts a document with the given content for the session.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, sessionID uuid.UUID, content string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO documents (session_id, title, content, word_count)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		sessionID, "Seeded "+uuid.New().String()[:8], content, domain.CountWords(content),
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument: %v", err)
	}
	return id
}
