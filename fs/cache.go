// Package fs provides file-based storage for raw documents and indexes.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docqa"
)

// maxNameLen bounds the readable part of a cache file name.
const maxNameLen = 180

var unsafeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// CacheFileName maps a document identifier to a file name. The readable
// prefix replaces unsafe characters with underscores and is truncated; the
// xxhash suffix keeps distinct identifiers apart.
func CacheFileName(url string) string {
	safe := unsafeNameRe.ReplaceAllString(url, "_")
	if len(safe) > maxNameLen {
		safe = safe[:maxNameLen]
	}
	return fmt.Sprintf("%s-%016x.html", safe, xxhash.Sum64String(url))
}

// Ensure DocumentCache implements docqa.DocumentCache at compile time.
var _ docqa.DocumentCache = (*DocumentCache)(nil)

// DocumentCache stores raw documents as files in a directory.
type DocumentCache struct {
	dir string
}

// NewDocumentCache creates a DocumentCache rooted at dir.
// The directory is created on first write.
func NewDocumentCache(dir string) *DocumentCache {
	return &DocumentCache{dir: dir}
}

// Path returns the file path used for url.
func (c *DocumentCache) Path(url string) string {
	return filepath.Join(c.dir, CacheFileName(url))
}

// Get returns the cached content for url.
// Returns ENOTFOUND if the document is not cached.
func (c *DocumentCache) Get(ctx context.Context, url string) (string, error) {
	data, err := os.ReadFile(c.Path(url))
	if errors.Is(err, os.ErrNotExist) {
		return "", docqa.Errorf(docqa.ENOTFOUND, "document %q not cached", url)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// Put writes content for url, replacing any previous copy.
func (c *DocumentCache) Put(ctx context.Context, url string, content string) error {
	return writeFileAtomic(c.Path(url), []byte(content))
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
