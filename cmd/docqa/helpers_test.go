package main_test

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/mock"
	"github.com/fwojciec/docqa/qa"
)

// newTestManager returns a Manager over the given collections whose
// extractor yields one section per document and fails for "bad" IDs.
func newTestManager(m map[string][]string, calls *atomic.Int64) *qa.Manager {
	collections := &mock.CollectionService{
		FindCollectionFn: func(key string) (*docqa.Collection, error) {
			ids, ok := m[key]
			if !ok {
				return nil, docqa.Errorf(docqa.ENOTFOUND, "Collection %q not found.", key)
			}
			return &docqa.Collection{Key: key, DocumentIDs: ids}, nil
		},
		CollectionsFn: func() []*docqa.Collection {
			var out []*docqa.Collection
			for k, ids := range m {
				out = append(out, &docqa.Collection{Key: k, DocumentIDs: ids})
			}
			return out
		},
	}
	extractor := &mock.SectionExtractor{
		ExtractFn: func(_ context.Context, id string) ([]*docqa.Section, error) {
			calls.Add(1)
			if id == "bad" {
				return nil, fmt.Errorf("HTTP 404 for %s", id)
			}
			return []*docqa.Section{{SourceTitle: "Notes", Heading: "Heading " + id, SourceID: id, Content: "content of " + id}}, nil
		},
	}
	return qa.NewManager(collections, extractor, mock.NewMemoryIndexStore(), nil)
}
