// Package yaml loads the collection configuration from YAML.
//
// The format maps each collection key to its ordered document URLs:
//
//	collections:
//	  RelativityOne:
//	    - https://help.relativity.com/RelativityOne/Content/Relativity/Staging_Area.htm
//	  Server2024: []
package yaml

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fwojciec/docqa"
	"gopkg.in/yaml.v3"
)

//go:embed collections.yaml
var defaultConfig []byte

// Ensure CollectionService implements docqa.CollectionService at compile time.
var _ docqa.CollectionService = (*CollectionService)(nil)

type file struct {
	Collections map[string][]string `yaml:"collections"`
}

// CollectionService serves a static collection mapping.
type CollectionService struct {
	collections map[string]*docqa.Collection
}

// Default returns the built-in collections.
func Default() *CollectionService {
	s, err := Parse(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in collections: %v", err))
	}
	return s
}

// Load reads the collection configuration at path.
func Load(path string) (*CollectionService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading collections: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a collection configuration. Document lists are trimmed
// and deduplicated in first-seen order; empty lists are allowed. Unknown
// fields and blank keys are rejected with EINVALID.
func Parse(data []byte) (*CollectionService, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, docqa.Errorf(docqa.EINVALID, "invalid collections: %v", err)
	}

	s := &CollectionService{collections: make(map[string]*docqa.Collection, len(f.Collections))}
	for key, ids := range f.Collections {
		c := &docqa.Collection{Key: key, DocumentIDs: docqa.NormalizeDocumentIDs(ids)}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		s.collections[key] = c
	}
	return s, nil
}

// FindCollection returns the collection for key.
func (s *CollectionService) FindCollection(key string) (*docqa.Collection, error) {
	c, ok := s.collections[key]
	if !ok {
		return nil, docqa.Errorf(docqa.ENOTFOUND, "Collection %q not found.", key)
	}
	return &docqa.Collection{Key: c.Key, DocumentIDs: append([]string(nil), c.DocumentIDs...)}, nil
}

// Collections returns every collection ordered by key.
func (s *CollectionService) Collections() []*docqa.Collection {
	out := make([]*docqa.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		out = append(out, &docqa.Collection{Key: c.Key, DocumentIDs: append([]string(nil), c.DocumentIDs...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
