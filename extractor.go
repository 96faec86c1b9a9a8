package docqa

import "context"

// SectionExtractor turns a document into an ordered list of sections.
type SectionExtractor interface {
	// Extract fetches the document and splits it into sections in document order.
	// Only retrieval failures are returned as errors; malformed markup
	// degrades to a single fallback section or to no sections at all.
	Extract(ctx context.Context, documentID string) ([]*Section, error)
}

// ExtractResult is the outcome of extracting one document during a build.
// Exactly one of Sections or Err is meaningful.
type ExtractResult struct {
	DocumentID string
	Sections   []*Section
	Err        error
}

// Failed reports whether extraction of the document failed.
func (r ExtractResult) Failed() bool {
	return r.Err != nil
}
