package fs

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/docqa"
)

// Ensure CachingFetcher implements docqa.Fetcher at compile time.
var _ docqa.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher serves documents from a cache and falls back to the
// wrapped fetcher on a miss, caching what it retrieves. Network requests
// to the same host are spaced by Limiter; cache hits never wait.
type CachingFetcher struct {
	next    docqa.Fetcher
	cache   docqa.DocumentCache
	limiter docqa.DomainLimiter
}

// NewCachingFetcher creates a CachingFetcher. limiter may be nil.
func NewCachingFetcher(next docqa.Fetcher, cache docqa.DocumentCache, limiter docqa.DomainLimiter) *CachingFetcher {
	return &CachingFetcher{next: next, cache: cache, limiter: limiter}
}

// Fetch returns the cached document or retrieves and caches it.
func (f *CachingFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	content, err := f.cache.Get(ctx, rawURL)
	if err == nil {
		return content, nil
	} else if docqa.ErrorCode(err) != docqa.ENOTFOUND {
		return "", fmt.Errorf("reading cache: %w", err)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, hostOf(rawURL)); err != nil {
			return "", err
		}
	}

	content, err = f.next.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if err := f.cache.Put(ctx, rawURL, content); err != nil {
		return "", fmt.Errorf("writing cache: %w", err)
	}
	return content, nil
}

// Close closes the wrapped fetcher.
func (f *CachingFetcher) Close() error {
	return f.next.Close()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
