// Package docqa answers natural-language questions against a small corpus
// of documentation pages. Pages are split into titled sections, indexed
// with a lexical TF-IDF model per collection, and searched at query time
// to compose an answer with citations and a confidence score.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, tfidf/).
package docqa
