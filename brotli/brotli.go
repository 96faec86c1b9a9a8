// Package brotli compresses persisted indexes with Brotli.
package brotli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/fwojciec/docqa"
)

// DefaultQuality trades compression ratio for build time.
const DefaultQuality = 6

// Ensure IndexStore implements docqa.IndexStore at compile time.
var _ docqa.IndexStore = (*IndexStore)(nil)

// IndexStore wraps another IndexStore, compressing values on Put and
// decompressing them on Get. Key handling and absence semantics are those
// of the wrapped store.
type IndexStore struct {
	next    docqa.IndexStore
	quality int
}

// NewIndexStore creates a compressing decorator around next.
func NewIndexStore(next docqa.IndexStore) *IndexStore {
	return &IndexStore{next: next, quality: DefaultQuality}
}

// WithQuality returns a copy using the given Brotli quality (0-11).
func (s *IndexStore) WithQuality(quality int) *IndexStore {
	return &IndexStore{next: s.next, quality: quality}
}

// Get returns the decompressed index stored under key.
func (s *IndexStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, docqa.Errorf(docqa.EINTERNAL, "decompressing index %q: %v", key, err)
	}
	return out, nil
}

// Put compresses data and stores it under key.
func (s *IndexStore) Put(ctx context.Context, key string, data []byte) error {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, s.quality)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("compressing index %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("compressing index %q: %w", key, err)
	}
	return s.next.Put(ctx, key, buf.Bytes())
}

// Exists reports whether the wrapped store holds key.
func (s *IndexStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.next.Exists(ctx, key)
}
