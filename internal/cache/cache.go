// Package cache stores the last successful dashboard payload per user in a
// local SQLite database, so the dashboard can still be shown offline with
// --cached. The cache is never consulted implicitly.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned when no snapshot exists for the user.
var ErrNoSnapshot = errors.New("no cached snapshot")

// Snapshot is one cached dashboard payload.
type Snapshot struct {
	UserID    int
	Payload   json.RawMessage
	FetchedAt time.Time
}

// Store is a snapshot cache backed by SQLite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS dashboard_snapshots (
	user_id    INTEGER PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);`

// Open opens (creating if needed) the snapshot database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save replaces the user's snapshot with the given payload.
func (s *Store) Save(ctx context.Context, userID int, payload json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dashboard_snapshots (user_id, payload, fetched_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		userID, []byte(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the user's snapshot, or ErrNoSnapshot.
func (s *Store) Load(ctx context.Context, userID int) (*Snapshot, error) {
	var snap Snapshot
	snap.UserID = userID
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM dashboard_snapshots WHERE user_id = ?`,
		userID).Scan(&payload, &snap.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	snap.Payload = payload
	return &snap, nil
}

// Delete removes the user's snapshot if present.
func (s *Store) Delete(ctx context.Context, userID int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM dashboard_snapshots WHERE user_id = ?`, userID)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
