package brotli_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/brotli"
	"github.com/fwojciec/docqa/mock"
	"github.com/fwojciec/docqa/tfidf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexStore(t *testing.T) {
	t.Parallel()

	t.Run("compresses on put and restores on get", func(t *testing.T) {
		t.Parallel()

		inner := mock.NewMemoryIndexStore()
		s := brotli.NewIndexStore(inner)
		ctx := context.Background()
		data := []byte(strings.Repeat(`{"heading":"Upgrade Steps","content":"It takes ten minutes."},`, 200))

		require.NoError(t, s.Put(ctx, "Server2023", data))

		raw, err := inner.Get(ctx, "Server2023")
		require.NoError(t, err)
		assert.Less(t, len(raw), len(data)/4)

		got, err := s.Get(ctx, "Server2023")
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("empty value round trips and is present", func(t *testing.T) {
		t.Parallel()

		s := brotli.NewIndexStore(mock.NewMemoryIndexStore()).WithQuality(0)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "Server2024", nil))

		exists, err := s.Exists(ctx, "Server2024")
		require.NoError(t, err)
		assert.True(t, exists)
		got, err := s.Get(ctx, "Server2024")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("absence passes through", func(t *testing.T) {
		t.Parallel()

		_, err := brotli.NewIndexStore(mock.NewMemoryIndexStore()).Get(context.Background(), "missing")

		assert.Equal(t, docqa.ENOTFOUND, docqa.ErrorCode(err))
	})

	t.Run("corrupt data is an internal error", func(t *testing.T) {
		t.Parallel()

		inner := mock.NewMemoryIndexStore()
		s := brotli.NewIndexStore(inner)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "demo", []byte(strings.Repeat("release notes ", 500))))
		raw, err := inner.Get(ctx, "demo")
		require.NoError(t, err)
		require.NoError(t, inner.Put(ctx, "demo", raw[:len(raw)/2]))

		_, err = s.Get(ctx, "demo")

		assert.Equal(t, docqa.EINTERNAL, docqa.ErrorCode(err))
	})

	t.Run("put failures propagate", func(t *testing.T) {
		t.Parallel()

		inner := &mock.IndexStore{
			PutFn: func(context.Context, string, []byte) error { return errors.New("disk full") },
		}

		err := brotli.NewIndexStore(inner).Put(context.Background(), "demo", []byte("x"))

		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("serves a tfidf index", func(t *testing.T) {
		t.Parallel()

		s := brotli.NewIndexStore(mock.NewMemoryIndexStore())
		ctx := context.Background()
		idx := tfidf.Build("Demo", []*docqa.Section{
			{SourceTitle: "Upgrading", Heading: "Upgrade Steps", SourceID: "https://example.com/upgrade", Content: "It takes ten minutes."},
		})

		require.NoError(t, tfidf.Save(ctx, s, idx))
		loaded, ok, err := tfidf.Load(ctx, s, "Demo")

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, idx.BuildID(), loaded.BuildID())
	})
}
