package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/docqa"
)

var _ docqa.IndexStore = (*IndexStore)(nil)

// IndexStore is a mock implementation of docqa.IndexStore.
type IndexStore struct {
	GetFn    func(ctx context.Context, key string) ([]byte, error)
	PutFn    func(ctx context.Context, key string, data []byte) error
	ExistsFn func(ctx context.Context, key string) (bool, error)
}

func (s *IndexStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.GetFn(ctx, key)
}

func (s *IndexStore) Put(ctx context.Context, key string, data []byte) error {
	return s.PutFn(ctx, key, data)
}

func (s *IndexStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.ExistsFn(ctx, key)
}

// NewMemoryIndexStore returns an IndexStore whose functions are backed by
// a map, for tests that need working persistence.
func NewMemoryIndexStore() *IndexStore {
	var mu sync.Mutex
	m := map[string][]byte{}
	return &IndexStore{
		GetFn: func(_ context.Context, key string) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			data, ok := m[key]
			if !ok {
				return nil, docqa.Errorf(docqa.ENOTFOUND, "index %q not found", key)
			}
			return data, nil
		},
		PutFn: func(_ context.Context, key string, data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			m[key] = append([]byte(nil), data...)
			return nil
		},
		ExistsFn: func(_ context.Context, key string) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			_, ok := m[key]
			return ok, nil
		},
	}
}
