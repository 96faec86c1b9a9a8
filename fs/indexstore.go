package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/docqa"
)

// Ensure IndexStore implements docqa.IndexStore at compile time.
var _ docqa.IndexStore = (*IndexStore)(nil)

// IndexStore keeps one file per collection key in a directory.
// Writes go to a temporary file that is renamed into place, so a reader
// sees either the previous index or the new one.
type IndexStore struct {
	dir string
}

// NewIndexStore creates an IndexStore rooted at dir.
func NewIndexStore(dir string) *IndexStore {
	return &IndexStore{dir: dir}
}

func (s *IndexStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", docqa.Errorf(docqa.EINVALID, "invalid index key %q", key)
	}
	return filepath.Join(s.dir, key+".index"), nil
}

// Get returns the index stored under key.
// Returns ENOTFOUND if no index exists for key.
func (s *IndexStore) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docqa.Errorf(docqa.ENOTFOUND, "index %q not found", key)
	}
	return data, err
}

// Put replaces the index stored under key.
func (s *IndexStore) Put(ctx context.Context, key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	return writeFileAtomic(p, data)
}

// Exists reports whether an index is stored under key.
func (s *IndexStore) Exists(ctx context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
