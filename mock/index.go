package mock

import (
	"context"

	"github.com/fwojciec/docqa"
)

var _ docqa.Index = (*Index)(nil)

// Index is a mock implementation of docqa.Index.
type Index struct {
	CollectionFn func() string
	SearchFn     func(query string, topK int) []docqa.Match
	SectionsFn   func() []*docqa.Section
	LenFn        func() int
}

func (i *Index) Collection() string {
	return i.CollectionFn()
}

func (i *Index) Search(query string, topK int) []docqa.Match {
	return i.SearchFn(query, topK)
}

func (i *Index) Sections() []*docqa.Section {
	return i.SectionsFn()
}

func (i *Index) Len() int {
	return i.LenFn()
}

var _ docqa.IndexManager = (*IndexManager)(nil)

// IndexManager is a mock implementation of docqa.IndexManager.
type IndexManager struct {
	EnsureIndexFn func(ctx context.Context, key string, force bool) (docqa.Index, error)
}

func (m *IndexManager) EnsureIndex(ctx context.Context, key string, force bool) (docqa.Index, error) {
	return m.EnsureIndexFn(ctx, key, force)
}

var _ docqa.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of docqa.Answerer.
type Answerer struct {
	AnswerQuestionFn func(ctx context.Context, query, key string, topK int) (*docqa.Answer, error)
	ListSectionsFn   func(ctx context.Context, key string) ([]docqa.SectionRef, error)
}

func (a *Answerer) AnswerQuestion(ctx context.Context, query, key string, topK int) (*docqa.Answer, error) {
	return a.AnswerQuestionFn(ctx, query, key, topK)
}

func (a *Answerer) ListSections(ctx context.Context, key string) ([]docqa.SectionRef, error) {
	return a.ListSectionsFn(ctx, key)
}
