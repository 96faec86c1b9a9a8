// Package qa owns the per-collection index lifecycle and the retrieval
// policy that turns search matches into answers.
package qa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/crawl"
	"github.com/fwojciec/docqa/tfidf"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultWarmupConcurrency bounds how many collections Warmup builds at once.
const DefaultWarmupConcurrency = 2

// Ensure Manager implements docqa.IndexManager at compile time.
var _ docqa.IndexManager = (*Manager)(nil)

// Manager loads, builds, persists and caches one index per collection.
//
// Builds for the same key are collapsed so at most one runs at a time. A
// built index is published to readers only after it has been persisted, so
// concurrent readers see either the previous index or the new one.
type Manager struct {
	Collections       docqa.CollectionService
	Crawler           *crawl.Crawler
	Store             docqa.IndexStore
	Logger            *slog.Logger
	WarmupConcurrency int

	mu      sync.RWMutex
	indexes map[string]*tfidf.Index
	builds  singleflight.Group

	warmOnce sync.Once
	warmErr  error
}

// NewManager creates a Manager extracting documents with extractor and
// persisting indexes to store. A nil logger discards log output.
func NewManager(collections docqa.CollectionService, extractor docqa.SectionExtractor, store docqa.IndexStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		Collections: collections,
		Crawler:     &crawl.Crawler{Extractor: extractor},
		Store:       store,
		Logger:      logger,
		indexes:     make(map[string]*tfidf.Index),
	}
}

// BuildResult is the outcome of a collection build.
type BuildResult struct {
	Index *tfidf.Index
	Crawl *crawl.Result
	// Bytes is the size of the persisted index.
	Bytes int
}

// EnsureIndex returns the index for key. Unless force is set, an index
// already in memory or in the store is returned without rebuilding and
// without network access. Store failures are returned, never masked by a
// rebuild.
func (m *Manager) EnsureIndex(ctx context.Context, key string, force bool) (docqa.Index, error) {
	idx, err := m.ensure(ctx, key, force)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func (m *Manager) ensure(ctx context.Context, key string, force bool) (*tfidf.Index, error) {
	collection, err := m.Collections.FindCollection(key)
	if err != nil {
		return nil, err
	}

	if !force {
		if idx, ok, err := m.lookup(ctx, key); err != nil {
			return nil, err
		} else if ok {
			return idx, nil
		}
	}

	res, err := m.build(ctx, collection, force, nil)
	if err != nil {
		return nil, err
	}
	return res.Index, nil
}

// lookup returns the cached index for key, loading it from the store on
// first use. A loaded index never replaces one published while the load was
// in progress.
func (m *Manager) lookup(ctx context.Context, key string) (*tfidf.Index, bool, error) {
	m.mu.RLock()
	idx, ok := m.indexes[key]
	m.mu.RUnlock()
	if ok {
		return idx, true, nil
	}

	if exists, err := m.Store.Exists(ctx, key); err != nil {
		return nil, false, fmt.Errorf("checking index %q: %w", key, err)
	} else if !exists {
		return nil, false, nil
	}

	idx, ok, err := tfidf.Load(ctx, m.Store, key)
	if err != nil || !ok {
		return nil, false, err
	}
	return m.publishLoaded(idx), true, nil
}

// BuildCollection rebuilds and persists the index for key unconditionally,
// reporting per-document progress. Concurrent forced builds of the same key
// share one build; progress is reported to the caller that started it.
func (m *Manager) BuildCollection(ctx context.Context, key string, progress crawl.ProgressFunc) (*BuildResult, error) {
	collection, err := m.Collections.FindCollection(key)
	if err != nil {
		return nil, err
	}
	return m.build(ctx, collection, true, progress)
}

func (m *Manager) build(ctx context.Context, collection *docqa.Collection, force bool, progress crawl.ProgressFunc) (*BuildResult, error) {
	// Forced builds never join a non-forced call, which may finish without
	// crawling.
	flight := collection.Key
	if force {
		flight += "\x00force"
	}
	v, err, _ := m.builds.Do(flight, func() (any, error) {
		// A build that finished while this caller waited satisfies a
		// non-forced request.
		if !force {
			m.mu.RLock()
			idx, ok := m.indexes[collection.Key]
			m.mu.RUnlock()
			if ok {
				return &BuildResult{Index: idx}, nil
			}
		}
		return m.buildCollection(ctx, collection, progress)
	})
	if err != nil {
		return nil, err
	}
	return v.(*BuildResult), nil
}

func (m *Manager) buildCollection(ctx context.Context, collection *docqa.Collection, progress crawl.ProgressFunc) (*BuildResult, error) {
	key := collection.Key

	res, err := m.Crawler.CrawlCollection(ctx, collection, progress)
	if err != nil {
		return nil, fmt.Errorf("crawling collection %q: %w", key, err)
	}
	for _, d := range res.Documents {
		if d.Failed() {
			m.Logger.Warn("skip document", "collection", key, "url", d.DocumentID, "err", d.Err)
		}
	}

	idx := tfidf.Build(key, res.Sections())

	data, err := tfidf.Encode(idx)
	if err != nil {
		return nil, fmt.Errorf("encoding index %q: %w", key, err)
	}
	if err := m.Store.Put(ctx, key, data); err != nil {
		return nil, fmt.Errorf("saving index %q: %w", key, err)
	}
	m.publish(idx)

	m.Logger.Info("index built",
		"collection", key,
		"documents", len(res.Documents),
		"failed", res.Failed,
		"sections", idx.Len(),
		"bytes", len(data),
		"build_id", idx.BuildID(),
	)

	return &BuildResult{Index: idx, Crawl: res, Bytes: len(data)}, nil
}

func (m *Manager) publish(idx *tfidf.Index) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexes == nil {
		m.indexes = make(map[string]*tfidf.Index)
	}
	m.indexes[idx.Collection()] = idx
}

// publishLoaded caches idx unless an index for its collection is already
// published, and returns the index readers should use.
func (m *Manager) publishLoaded(idx *tfidf.Index) *tfidf.Index {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexes == nil {
		m.indexes = make(map[string]*tfidf.Index)
	}
	if cur, ok := m.indexes[idx.Collection()]; ok {
		return cur
	}
	m.indexes[idx.Collection()] = idx
	return idx
}

// Warmup ensures an index for every configured collection. It runs once
// per Manager; later calls return the first call's result without doing
// any work.
func (m *Manager) Warmup(ctx context.Context, force bool) error {
	m.warmOnce.Do(func() {
		m.warmErr = m.warmup(ctx, force)
	})
	return m.warmErr
}

func (m *Manager) warmup(ctx context.Context, force bool) error {
	limit := m.WarmupConcurrency
	if limit <= 0 {
		limit = DefaultWarmupConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, c := range m.Collections.Collections() {
		key := c.Key
		g.Go(func() error {
			if _, err := m.ensure(ctx, key, force); err != nil {
				return fmt.Errorf("warming %q: %w", key, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// CollectionStats summarizes the index of one collection.
type CollectionStats struct {
	Key       string `json:"key"`
	Documents int    `json:"documents"`
	Sections  int    `json:"sections"`
	BuildID   string `json:"buildId"`
}

// Stats ensures every configured collection's index and reports its size,
// ordered by key.
func (m *Manager) Stats(ctx context.Context) ([]CollectionStats, error) {
	collections := m.Collections.Collections()
	stats := make([]CollectionStats, 0, len(collections))
	for _, c := range collections {
		idx, err := m.ensure(ctx, c.Key, false)
		if err != nil {
			return nil, err
		}
		stats = append(stats, CollectionStats{
			Key:       c.Key,
			Documents: len(c.DocumentIDs),
			Sections:  idx.Len(),
			BuildID:   idx.BuildID(),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Key < stats[j].Key })
	return stats, nil
}
