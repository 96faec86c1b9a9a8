package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fwojciec/docqa"
	main "github.com/fwojciec/docqa/cmd/docqa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upgradePage = `<html><head><title>Upgrading</title></head><body>
<nav><h2>Menu</h2><p>Home</p></nav>
<main><h1>Upgrading</h1><h2>Upgrade Steps</h2><p>Back up your data first. Then run the installer. It takes ten minutes.</p></main>
</body></html>`

// setupDocs serves one release-note page and writes a collections file
// naming it as the only document of collection "Demo".
func setupDocs(t *testing.T) (collectionsPath string, hits *atomic.Int64) {
	t.Helper()

	hits = &atomic.Int64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/upgrade.htm" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, upgradePage)
	}))
	t.Cleanup(srv.Close)

	collectionsPath = filepath.Join(t.TempDir(), "collections.yaml")
	content := fmt.Sprintf("collections:\n  Demo:\n    - %s/upgrade.htm\n  Empty: []\n", srv.URL)
	require.NoError(t, os.WriteFile(collectionsPath, []byte(content), 0o644))
	return collectionsPath, hits
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	for _, store := range []string{"fs", "sqlite"} {
		t.Run(store, func(t *testing.T) {
			t.Parallel()

			// Given a collection with one served page
			collections, hits := setupDocs(t)
			dataDir := t.TempDir()
			common := []string{"--data-dir", dataDir, "--store", store, "--collections", collections}

			// When a question is asked
			stdout, stderr, err := run(t, append(common, "ask", "Demo", "how long does the upgrade take")...)

			// Then the answer quotes the matching section and cites it
			require.NoError(t, err, stderr)
			assert.Contains(t, stdout, "ten minutes")
			assert.Contains(t, stdout, "Upgrading: Upgrade Steps")
			assert.Contains(t, stdout, "/upgrade.htm")
			assert.Equal(t, int64(1), hits.Load())

			// And a fresh process answers from the persisted index
			stdout, stderr, err = run(t, append(common, "ask", "Demo", "how long does the upgrade take")...)
			require.NoError(t, err, stderr)
			assert.Contains(t, stdout, "ten minutes")
			assert.Equal(t, int64(1), hits.Load())
		})
	}
}

func TestMain_Run_Redis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	collections, hits := setupDocs(t)
	common := []string{
		"--data-dir", t.TempDir(),
		"--store", "redis",
		"--redis-url", "redis://" + mr.Addr(),
		"--collections", collections,
	}

	stdout, stderr, err := run(t, append(common, "build", "Demo")...)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Index for Demo ready: 1 sections")

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "Demo")

	stdout, stderr, err = run(t, append(common, "sections", "Demo", "--json")...)
	require.NoError(t, err, stderr)
	var refs []docqa.SectionRef
	require.NoError(t, json.Unmarshal([]byte(stdout), &refs))
	require.Len(t, refs, 1)
	assert.Equal(t, "Upgrade Steps", refs[0].Heading)
	assert.Equal(t, int64(1), hits.Load())
}

func TestMain_Run_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown collection", func(t *testing.T) {
		t.Parallel()

		collections, hits := setupDocs(t)

		_, stderr, err := run(t, "--data-dir", t.TempDir(), "--store", "fs", "--collections", collections, "ask", "Nope", "anything")

		assert.Equal(t, docqa.ENOTFOUND, docqa.ErrorCode(err))
		assert.Contains(t, stderr, `Collection "Nope" not found.`)
		assert.Zero(t, hits.Load())
	})

	t.Run("empty collection answers not found", func(t *testing.T) {
		t.Parallel()

		collections, _ := setupDocs(t)

		stdout, stderr, err := run(t, "--data-dir", t.TempDir(), "--store", "fs", "--collections", collections, "ask", "Empty", "anything", "--json")

		require.NoError(t, err, stderr)
		var answer docqa.Answer
		require.NoError(t, json.Unmarshal([]byte(stdout), &answer))
		assert.Empty(t, answer.Citations)
		assert.Zero(t, answer.Confidence)
		assert.True(t, answer.ShouldCollectContact)
	})

	t.Run("redis store without url", func(t *testing.T) {
		t.Parallel()

		collections, _ := setupDocs(t)

		_, stderr, err := run(t, "--data-dir", t.TempDir(), "--store", "redis", "--redis-url", "", "--collections", collections, "collections")

		assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(err))
		assert.Contains(t, stderr, "Hint:")
	})

	t.Run("invalid collections file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("collections: [not, a, map]\n"), 0o644))

		_, stderr, err := run(t, "--data-dir", t.TempDir(), "--store", "fs", "--collections", path, "collections")

		assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(err))
		assert.Contains(t, stderr, "error: invalid collections")
	})
}
