package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docqa"
)

// Compile-time interface verification.
var _ docqa.DocumentCache = (*DocumentCache)(nil)

// DocumentCache implements docqa.DocumentCache using SQLite.
// Raw page content is keyed by its URL.
type DocumentCache struct {
	db *DB
}

// NewDocumentCache creates a new DocumentCache.
func NewDocumentCache(db *DB) *DocumentCache {
	return &DocumentCache{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// Get returns the cached content for url.
func (c *DocumentCache) Get(ctx context.Context, url string) (string, error) {
	var content string
	err := c.db.QueryRowContext(ctx, `SELECT content FROM documents WHERE url = ?`, url).Scan(&content)
	if err == sql.ErrNoRows {
		return "", docqa.Errorf(docqa.ENOTFOUND, "document %q not cached", url)
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// Put caches content for url, replacing any previous copy.
func (c *DocumentCache) Put(ctx context.Context, url, content string) error {
	if url == "" {
		return docqa.Errorf(docqa.EINVALID, "document url required")
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO documents (url, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			content = excluded.content,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, url, content, hashContent(content), time.Now().UTC().Format(time.RFC3339))
	return err
}

// ContentHash returns the hash of the cached content for url, which
// changes whenever a refetch brings different content.
func (c *DocumentCache) ContentHash(ctx context.Context, url string) (string, error) {
	var hash string
	err := c.db.QueryRowContext(ctx, `SELECT content_hash FROM documents WHERE url = ?`, url).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", docqa.Errorf(docqa.ENOTFOUND, "document %q not cached", url)
	}
	return hash, err
}

// FetchedAt returns when url was last cached.
func (c *DocumentCache) FetchedAt(ctx context.Context, url string) (time.Time, error) {
	var fetchedAt string
	err := c.db.QueryRowContext(ctx, `SELECT fetched_at FROM documents WHERE url = ?`, url).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, docqa.Errorf(docqa.ENOTFOUND, "document %q not cached", url)
	}
	if err != nil {
		return time.Time{}, err
	}
	return parseRFC3339(fetchedAt, "fetched_at")
}
