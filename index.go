package docqa

import "context"

// Match is a search result: a section and its similarity to the query.
type Match struct {
	Score   float64  `json:"score"`
	Section *Section `json:"section"`
}

// Index is the fitted searchable representation of one collection.
// An Index is immutable once built.
type Index interface {
	// Collection returns the key of the collection the index was built from.
	Collection() string

	// Search returns up to topK matches ordered by descending score.
	// Ties keep original section order. An empty index returns no matches.
	Search(query string, topK int) []Match

	// Sections returns the indexed sections in build order.
	Sections() []*Section

	// Len returns the number of indexed sections.
	Len() int
}

// IndexManager owns the lifecycle of per-collection indexes.
type IndexManager interface {
	// EnsureIndex returns the index for key. Unless force is set, a
	// persisted index is loaded and returned without rebuilding.
	// Returns ENOTFOUND if the collection is not configured.
	EnsureIndex(ctx context.Context, key string, force bool) (Index, error)
}
