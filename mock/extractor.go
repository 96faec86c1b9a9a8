package mock

import (
	"context"

	"github.com/fwojciec/docqa"
)

var _ docqa.SectionExtractor = (*SectionExtractor)(nil)

// SectionExtractor is a mock implementation of docqa.SectionExtractor.
type SectionExtractor struct {
	ExtractFn func(ctx context.Context, documentID string) ([]*docqa.Section, error)
}

func (e *SectionExtractor) Extract(ctx context.Context, documentID string) ([]*docqa.Section, error) {
	return e.ExtractFn(ctx, documentID)
}
