package docqa

import "context"

// IndexStore persists serialized indexes keyed by collection key.
// Absence is reported distinctly from an empty index: an index built from
// zero sections is still stored and returned by Get.
type IndexStore interface {
	// Get returns the stored bytes for key.
	// Returns ENOTFOUND if nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous value atomically.
	Put(ctx context.Context, key string, data []byte) error

	// Exists reports whether a value is stored under key. Index lookups
	// check presence before reading so that a missing index is never
	// confused with a failed read.
	Exists(ctx context.Context, key string) (bool, error)
}
