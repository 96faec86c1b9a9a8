package docqa

import "context"

// DefaultTopK is the number of matches considered when answering.
const DefaultTopK = 5

// Citation points the reader to the page an excerpt came from.
type Citation struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// Answer is the response to a question.
type Answer struct {
	Answer               string     `json:"answer"`
	Citations            []Citation `json:"citations"`
	Confidence           float64    `json:"confidence"`
	ShouldCollectContact bool       `json:"should_collect_contact"`
}

// Answerer answers questions against collections.
type Answerer interface {
	// AnswerQuestion answers query using the collection's index.
	// Unanswerable questions produce a "not found" answer, not an error.
	AnswerQuestion(ctx context.Context, query string, key string, topK int) (*Answer, error)

	// ListSections returns the distinct section headings of the collection
	// in first-seen order.
	ListSections(ctx context.Context, key string) ([]SectionRef, error)
}
