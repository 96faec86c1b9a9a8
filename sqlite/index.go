package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/docqa"
)

// Compile-time interface verification.
var _ docqa.IndexStore = (*IndexStore)(nil)

// IndexStore implements docqa.IndexStore using SQLite.
// Each collection's index is one row; Put replaces the row in a single
// statement so readers never see a partial index.
type IndexStore struct {
	db *DB
}

// NewIndexStore creates a new IndexStore.
func NewIndexStore(db *DB) *IndexStore {
	return &IndexStore{db: db}
}

// Get returns the index stored under key.
func (s *IndexStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM indexes WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docqa.Errorf(docqa.ENOTFOUND, "index %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Put stores data under key, replacing any previous index.
func (s *IndexStore) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return docqa.Errorf(docqa.EINVALID, "index key required")
	}
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO indexes (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, key, data, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Exists reports whether an index is stored under key.
func (s *IndexStore) Exists(ctx context.Context, key string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM indexes WHERE key = ?`, key).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdatedAt returns when the index under key was last written.
func (s *IndexStore) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM indexes WHERE key = ?`, key).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, docqa.Errorf(docqa.ENOTFOUND, "index %q not found", key)
	}
	if err != nil {
		return time.Time{}, err
	}
	return parseRFC3339(updatedAt, "updated_at")
}
