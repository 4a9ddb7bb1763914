// Package localcache is the persisted fallback cache: a key-value store keyed
// by entity kind whose values are JSON arrays of that kind's records.
package localcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS entries (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Storage is a minimal key-value contract.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// SQLite is a Storage backed by a single SQLite file.
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string

	err := s.db.QueryRowContext(ctx, `SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}

	return []byte(value), true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Load reads the record set stored under key. A missing or malformed value
// yields an empty set; only storage failures are returned as errors.
func Load[T any](ctx context.Context, s Storage, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if !ok || len(raw) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		slog.Warn("discarding malformed cache value", "key", key, "error", err)
		return []T{}, nil
	}

	if records == nil {
		records = []T{}
	}

	return records, nil
}

// Save serializes records and stores them under key.
func Save[T any](ctx context.Context, s Storage, key string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	return s.Set(ctx, key, raw)
}

// Collection serializes read-modify-write cycles over one key.
type Collection[T any] struct {
	mu      sync.Mutex
	storage Storage
	key     string
}

func NewCollection[T any](storage Storage, key string) *Collection[T] {
	return &Collection[T]{storage: storage, key: key}
}

// All returns the current record set.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Load[T](ctx, c.storage, c.key)
}

// Update loads the record set, applies fn and writes the result back.
// Nothing is written when fn returns an error.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := Load[T](ctx, c.storage, c.key)
	if err != nil {
		return err
	}

	updated, err := fn(records)
	if err != nil {
		return err
	}

	return Save(ctx, c.storage, c.key, updated)
}
