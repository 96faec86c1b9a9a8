package tfidf

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/docqa"
)

// formatVersion is bumped whenever the persisted layout changes.
const formatVersion = 1

type state struct {
	Version    int              `json:"version"`
	Collection string           `json:"collection"`
	BuildID    string           `json:"buildId"`
	BuiltAt    time.Time        `json:"builtAt"`
	Sections   []*docqa.Section `json:"sections"`
	Terms      []string         `json:"terms"`
	IDF        []float64        `json:"idf"`
	Matrix     []Vector         `json:"matrix"`
}

// Encode serializes the full index state.
func Encode(idx *Index) ([]byte, error) {
	return json.Marshal(state{
		Version:    formatVersion,
		Collection: idx.collection,
		BuildID:    idx.buildID,
		BuiltAt:    idx.builtAt,
		Sections:   idx.sections,
		Terms:      idx.vectorizer.terms,
		IDF:        idx.vectorizer.idf,
		Matrix:     idx.matrix,
	})
}

// Decode restores an index serialized by Encode.
// Returns EINTERNAL if the data is not a consistent index.
func Decode(data []byte) (*Index, error) {
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, docqa.Errorf(docqa.EINTERNAL, "corrupt index: %v", err)
	}
	if st.Version != formatVersion {
		return nil, docqa.Errorf(docqa.EINTERNAL, "unsupported index version %d", st.Version)
	}
	if len(st.Matrix) != len(st.Sections) {
		return nil, docqa.Errorf(docqa.EINTERNAL, "index has %d rows for %d sections", len(st.Matrix), len(st.Sections))
	}
	if len(st.Terms) != len(st.IDF) {
		return nil, docqa.Errorf(docqa.EINTERNAL, "index has %d terms for %d idf weights", len(st.Terms), len(st.IDF))
	}
	for i, row := range st.Matrix {
		for _, e := range row {
			if e.Term < 0 || e.Term >= len(st.Terms) {
				return nil, docqa.Errorf(docqa.EINTERNAL, "index row %d references unknown term %d", i, e.Term)
			}
		}
	}

	vec := NewVectorizer()
	vec.restore(st.Terms, st.IDF)

	sections := st.Sections
	if sections == nil {
		sections = []*docqa.Section{}
	}

	return &Index{
		collection: st.Collection,
		buildID:    st.BuildID,
		builtAt:    st.BuiltAt,
		sections:   sections,
		vectorizer: vec,
		matrix:     st.Matrix,
	}, nil
}

// Save persists the index under its collection key.
func Save(ctx context.Context, store docqa.IndexStore, idx *Index) error {
	data, err := Encode(idx)
	if err != nil {
		return fmt.Errorf("encoding index %q: %w", idx.collection, err)
	}
	if err := store.Put(ctx, idx.collection, data); err != nil {
		return fmt.Errorf("saving index %q: %w", idx.collection, err)
	}
	return nil
}

// Load reads the index stored under key. The boolean is false, with a nil
// error, when no index has been stored for key.
func Load(ctx context.Context, store docqa.IndexStore, key string) (*Index, bool, error) {
	data, err := store.Get(ctx, key)
	if docqa.ErrorCode(err) == docqa.ENOTFOUND {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("loading index %q: %w", key, err)
	}

	idx, err := Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("decoding index %q: %w", key, err)
	}
	return idx, true, nil
}
