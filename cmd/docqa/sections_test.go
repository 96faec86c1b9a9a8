package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/docqa"
	main "github.com/fwojciec/docqa/cmd/docqa"
	"github.com/fwojciec/docqa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsCmd_Run(t *testing.T) {
	t.Parallel()

	refs := []docqa.SectionRef{
		{Heading: "Upgrade Steps", URL: "https://example.com/upgrade"},
		{Heading: "Known Issues", URL: "https://example.com/upgrade"},
	}

	t.Run("lists headings with urls", func(t *testing.T) {
		t.Parallel()

		answerer := &mock.Answerer{
			ListSectionsFn: func(_ context.Context, key string) ([]docqa.SectionRef, error) {
				assert.Equal(t, "Demo", key)
				return refs, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Answerer: answerer}

		require.NoError(t, (&main.SectionsCmd{Collection: "Demo"}).Run(deps))

		assert.Equal(t, "Upgrade Steps\n    https://example.com/upgrade\nKnown Issues\n    https://example.com/upgrade\n", stdout.String())
	})

	t.Run("prints json", func(t *testing.T) {
		t.Parallel()

		answerer := &mock.Answerer{
			ListSectionsFn: func(context.Context, string) ([]docqa.SectionRef, error) { return refs, nil },
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Answerer: answerer}

		require.NoError(t, (&main.SectionsCmd{Collection: "Demo", JSON: true}).Run(deps))

		var got []docqa.SectionRef
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, refs, got)
	})

	t.Run("empty collection prints message", func(t *testing.T) {
		t.Parallel()

		answerer := &mock.Answerer{
			ListSectionsFn: func(context.Context, string) ([]docqa.SectionRef, error) { return []docqa.SectionRef{}, nil },
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Answerer: answerer}

		require.NoError(t, (&main.SectionsCmd{Collection: "Server2024"}).Run(deps))

		assert.Contains(t, stdout.String(), "No sections found for Server2024.")
	})
}

func TestCollectionsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists collections with document counts", func(t *testing.T) {
		t.Parallel()

		collections := &mock.CollectionService{
			CollectionsFn: func() []*docqa.Collection {
				return []*docqa.Collection{
					{Key: "RelativityOne", DocumentIDs: []string{"a", "b"}},
					{Key: "Server2024", DocumentIDs: []string{}},
				}
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Collections: collections}

		require.NoError(t, (&main.CollectionsCmd{}).Run(deps))

		assert.Equal(t, "RelativityOne  2 documents\nServer2024  0 documents\n", stdout.String())
	})

	t.Run("no collections prints hint", func(t *testing.T) {
		t.Parallel()

		collections := &mock.CollectionService{
			CollectionsFn: func() []*docqa.Collection { return nil },
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Collections: collections}

		require.NoError(t, (&main.CollectionsCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "DOCQA_COLLECTIONS")
	})
}
