package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docqa"
)

// Ensure LoggingExtractor implements docqa.SectionExtractor.
var _ docqa.SectionExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a SectionExtractor with logging.
type LoggingExtractor struct {
	next   docqa.SectionExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docqa.SectionExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the section count.
func (e *LoggingExtractor) Extract(ctx context.Context, documentID string) (sections []*docqa.Section, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"url", documentID,
			"sections", len(sections),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, documentID)
}
