package docqa

import "strings"

// Collection is a named, independently indexed set of documents,
// e.g. the release notes of one product version.
type Collection struct {
	Key         string   `json:"key" yaml:"key"`
	DocumentIDs []string `json:"documentIds" yaml:"documents"`
}

// Validate returns an error if the collection contains invalid fields.
// An empty document list is valid and yields an empty index.
func (c *Collection) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return Errorf(EINVALID, "collection key required")
	}
	return nil
}

// CollectionService provides the static collection configuration.
type CollectionService interface {
	// FindCollection returns the collection for key.
	// Returns ENOTFOUND if no collection is configured under key.
	FindCollection(key string) (*Collection, error)

	// Collections returns every configured collection ordered by key.
	Collections() []*Collection
}

// NormalizeDocumentIDs drops empty identifiers and duplicates,
// keeping first-seen order.
func NormalizeDocumentIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
