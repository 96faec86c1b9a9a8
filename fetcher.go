package docqa

import "context"

// Fetcher retrieves raw page content by document identifier (a URL).
type Fetcher interface {
	// Fetch returns the raw content of the document.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DocumentCache stores raw document content keyed by document identifier.
type DocumentCache interface {
	// Get returns cached content.
	// Returns ENOTFOUND if the document has not been cached.
	Get(ctx context.Context, url string) (string, error)

	// Put stores content for the document, replacing any previous copy.
	Put(ctx context.Context, url string, content string) error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
