// Package crawl provides collection crawling orchestration.
// It runs section extraction over every document of a collection and
// reports per-document outcomes without aborting on individual failures.
package crawl

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/docqa"
	"golang.org/x/sync/errgroup"
)

// Crawler orchestrates the extraction of a collection's documents.
type Crawler struct {
	Extractor   docqa.SectionExtractor
	Concurrency int
}

// Result holds the outcome of a crawl operation.
type Result struct {
	// Documents holds one result per document, in collection order.
	Documents []docqa.ExtractResult
	Failed    int
}

// Sections returns the sections of all successful documents,
// concatenated in collection order.
func (r *Result) Sections() []*docqa.Section {
	var sections []*docqa.Section
	for _, d := range r.Documents {
		if d.Failed() {
			continue
		}
		sections = append(sections, d.Sections...)
	}
	return sections
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Sections  int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// CrawlCollection extracts sections from every document of the collection.
// A failed document is recorded in the result and skipped; only context
// cancellation aborts the crawl. The progress callback, if provided, is
// called from a single goroutine.
func (c *Crawler) CrawlCollection(ctx context.Context, collection *docqa.Collection, progress ProgressFunc) (*Result, error) {
	ids := collection.DocumentIDs
	total := len(ids)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	type indexed struct {
		position int
		result   docqa.ExtractResult
	}
	resultCh := make(chan indexed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, id := range ids {
			i, id := i, id
			g.Go(func() error {
				sections, err := c.Extractor.Extract(gctx, id)
				resultCh <- indexed{
					position: i,
					result:   docqa.ExtractResult{DocumentID: id, Sections: sections, Err: err},
				}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	res := &Result{Documents: make([]docqa.ExtractResult, total)}
	for r := range resultCh {
		completed.Add(1)
		res.Documents[r.position] = r.result

		if r.result.Failed() {
			res.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       r.result.DocumentID,
					Error:     r.result.Err,
				})
			}
			continue
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       r.result.DocumentID,
				Sections:  len(r.result.Sections),
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return res, nil
}
