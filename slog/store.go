package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docqa"
)

// Ensure LoggingIndexStore implements docqa.IndexStore.
var _ docqa.IndexStore = (*LoggingIndexStore)(nil)

// LoggingIndexStore wraps an IndexStore with debug logging.
type LoggingIndexStore struct {
	next   docqa.IndexStore
	logger *slog.Logger
}

// NewLoggingIndexStore creates a new LoggingIndexStore.
func NewLoggingIndexStore(next docqa.IndexStore, logger *slog.Logger) *LoggingIndexStore {
	return &LoggingIndexStore{next: next, logger: logger}
}

func (s *LoggingIndexStore) Get(ctx context.Context, key string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("index get",
			"key", key,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Get(ctx, key)
}

func (s *LoggingIndexStore) Put(ctx context.Context, key string, data []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("index put",
			"key", key,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Put(ctx, key, data)
}

func (s *LoggingIndexStore) Exists(ctx context.Context, key string) (ok bool, err error) {
	defer func() {
		s.logger.Debug("index exists", "key", key, "exists", ok, "err", err)
	}()
	return s.next.Exists(ctx, key)
}
