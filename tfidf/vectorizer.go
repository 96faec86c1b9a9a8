// Package tfidf provides a lexical vector-space index over documentation
// sections: a TF-IDF vectorizer over unigrams and bigrams and a
// linear-kernel search over its document-term matrix.
package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Default vectorizer settings.
const (
	DefaultMaxDF    = 0.9
	DefaultMinDF    = 1
	DefaultMaxChars = 20000
)

// Two or more letters, digits or underscores.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Entry is one non-zero cell of a sparse vector.
type Entry struct {
	Term   int     `json:"t"`
	Weight float64 `json:"w"`
}

// Vector is a sparse vector ordered by term index.
type Vector []Entry

// Dot returns the inner product of two vectors.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v) && j < len(o) {
		switch {
		case v[i].Term == o[j].Term:
			sum += v[i].Weight * o[j].Weight
			i++
			j++
		case v[i].Term < o[j].Term:
			i++
		default:
			j++
		}
	}
	return sum
}

// Vectorizer converts text into L2-normalised TF-IDF vectors.
// The zero value is not usable; create one with NewVectorizer.
type Vectorizer struct {
	MaxDF float64
	MinDF int

	terms []string
	vocab map[string]int
	idf   []float64
}

// NewVectorizer returns an unfitted vectorizer with default settings.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		MaxDF: DefaultMaxDF,
		MinDF: DefaultMinDF,
		vocab: map[string]int{},
	}
}

// Terms returns the fitted vocabulary in index order.
func (v *Vectorizer) Terms() []string {
	return v.terms
}

// IDF returns the inverse document frequency of each vocabulary term.
func (v *Vectorizer) IDF() []float64 {
	return v.idf
}

// Fit learns the vocabulary and idf weights from docs and returns the
// document-term matrix, one row per document in input order.
//
// Terms occurring in more than MaxDF of the documents are dropped, unless
// that bound allows fewer documents than MinDF (e.g. a single-document
// corpus), in which case no upper bound applies.
func (v *Vectorizer) Fit(docs []string) []Vector {
	counts := make([]map[string]int, len(docs))
	df := map[string]int{}
	for i, doc := range docs {
		counts[i] = termCounts(doc)
		for term := range counts[i] {
			df[term]++
		}
	}

	n := len(docs)
	maxCount := math.Inf(1)
	if bound := v.MaxDF * float64(n); bound >= float64(v.MinDF) {
		maxCount = bound
	}

	terms := make([]string, 0, len(df))
	for term, c := range df {
		if c < v.MinDF || float64(c) > maxCount {
			continue
		}
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.terms = terms
	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocab[term] = i
		v.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	rows := make([]Vector, len(docs))
	for i := range docs {
		rows[i] = v.weigh(counts[i])
	}
	return rows
}

// Transform maps text into the fitted vector space. Terms outside the
// vocabulary are ignored.
func (v *Vectorizer) Transform(text string) Vector {
	return v.weigh(termCounts(text))
}

// restore rebuilds a fitted vectorizer from persisted state.
func (v *Vectorizer) restore(terms []string, idf []float64) {
	v.terms = terms
	v.idf = idf
	v.vocab = make(map[string]int, len(terms))
	for i, term := range terms {
		v.vocab[term] = i
	}
}

func (v *Vectorizer) weigh(counts map[string]int) Vector {
	vec := make(Vector, 0, len(counts))
	for term, c := range counts {
		idx, ok := v.vocab[term]
		if !ok {
			continue
		}
		vec = append(vec, Entry{Term: idx, Weight: float64(c) * v.idf[idx]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Term < vec[j].Term })

	var norm float64
	for _, e := range vec {
		norm += e.Weight * e.Weight
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].Weight /= norm
	}
	return vec
}

// termCounts tokenizes text into lower-cased words, removes stop words and
// counts unigrams plus bigrams of adjacent remaining words.
func termCounts(text string) map[string]int {
	var words []string
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		words = append(words, tok)
	}

	counts := make(map[string]int, 2*len(words))
	for i, w := range words {
		counts[w]++
		if i > 0 {
			counts[words[i-1]+" "+w]++
		}
	}
	return counts
}

// truncate limits s to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
