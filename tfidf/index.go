package tfidf

import (
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/docqa"
	"github.com/google/uuid"
)

// Ensure Index implements docqa.Index at compile time.
var _ docqa.Index = (*Index)(nil)

// Index is a fitted TF-IDF model over one collection's sections.
// Row i of the matrix corresponds to section i. Index is immutable after
// Build and safe for concurrent searches.
type Index struct {
	collection string
	buildID    string
	builtAt    time.Time
	sections   []*docqa.Section
	vectorizer *Vectorizer
	matrix     []Vector
}

// Build fits a new index over the sections with non-empty content,
// preserving their order. Zero sections yield an empty, searchable index.
func Build(collection string, sections []*docqa.Section) *Index {
	kept := make([]*docqa.Section, 0, len(sections))
	for _, s := range sections {
		if s == nil || docqa.CleanText(s.Content) == "" {
			continue
		}
		kept = append(kept, s)
	}

	corpus := make([]string, len(kept))
	for i, s := range kept {
		corpus[i] = documentText(s)
	}

	vec := NewVectorizer()
	matrix := vec.Fit(corpus)

	return &Index{
		collection: collection,
		buildID:    uuid.New().String(),
		builtAt:    time.Now().UTC(),
		sections:   kept,
		vectorizer: vec,
		matrix:     matrix,
	}
}

// documentText is the text a section is indexed by: its heading followed by
// its content, the content capped at DefaultMaxChars characters.
//
// Indexing the heading as well as the content lets a question that names a
// section score against it even when the body never repeats the heading's
// words. Scores are therefore higher than a content-only model gives for the
// same section, and the relevance and escalation thresholds applied in
// package qa are calibrated against this heading+content text.
func documentText(s *docqa.Section) string {
	return strings.TrimSpace(s.Heading + " " + truncate(s.Content, DefaultMaxChars))
}

// Collection returns the collection key the index was built for.
func (idx *Index) Collection() string { return idx.collection }

// BuildID uniquely identifies the build that produced the index.
func (idx *Index) BuildID() string { return idx.buildID }

// BuiltAt returns when the index was built.
func (idx *Index) BuiltAt() time.Time { return idx.builtAt }

// Sections returns the indexed sections in build order.
func (idx *Index) Sections() []*docqa.Section { return idx.sections }

// Len returns the number of indexed sections.
func (idx *Index) Len() int { return len(idx.sections) }

// Vectorizer returns the fitted vectorizer.
func (idx *Index) Vectorizer() *Vectorizer { return idx.vectorizer }

// Search scores every section against query with a linear kernel and
// returns the topK best, highest score first. Equal scores keep section
// order. Non-positive topK and empty indexes return nil.
func (idx *Index) Search(query string, topK int) []docqa.Match {
	if len(idx.sections) == 0 || topK <= 0 {
		return nil
	}

	q := idx.vectorizer.Transform(query)
	scores := make([]float64, len(idx.matrix))
	for i, row := range idx.matrix {
		scores[i] = q.Dot(row)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}
	matches := make([]docqa.Match, 0, topK)
	for _, i := range order[:topK] {
		matches = append(matches, docqa.Match{Score: scores[i], Section: idx.sections[i]})
	}
	return matches
}
