package mock

import "github.com/fwojciec/docqa"

var _ docqa.CollectionService = (*CollectionService)(nil)

// CollectionService is a mock implementation of docqa.CollectionService.
type CollectionService struct {
	FindCollectionFn func(key string) (*docqa.Collection, error)
	CollectionsFn    func() []*docqa.Collection
}

func (s *CollectionService) FindCollection(key string) (*docqa.Collection, error) {
	return s.FindCollectionFn(key)
}

func (s *CollectionService) Collections() []*docqa.Collection {
	return s.CollectionsFn()
}
