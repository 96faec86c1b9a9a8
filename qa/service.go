package qa

import (
	"context"
	"strings"

	"github.com/fwojciec/docqa"
)

// Retrieval policy constants. The thresholds are tuned to TF-IDF cosine
// scores from the tfidf package.
const (
	// MinRelevance is the score a match needs to be shown.
	MinRelevance = 0.08
	// EscalationThreshold is the best score below which the user is
	// invited to leave contact details.
	EscalationThreshold = 0.18
	// ExcerptLimit is the maximum excerpt length in characters.
	ExcerptLimit = 1400
	// MinSentenceCut is the position a sentence boundary must lie beyond
	// for an excerpt to be cut there.
	MinSentenceCut = 200
	// MaxCitations caps the citations attached to an answer.
	MaxCitations = 3
	// MaxSectionRefs caps the ListSections output.
	MaxSectionRefs = 500
)

// User-visible answer texts.
const (
	NotFoundText = "I couldn’t find this in the official Relativity release notes. Please provide your contact information so our team can follow up."
	Preamble     = "Here’s what the Relativity release notes say:"
	Bullet       = "— "
)

// Ensure Service implements docqa.Answerer at compile time.
var _ docqa.Answerer = (*Service)(nil)

// Service answers questions from the indexes provided by an IndexManager.
type Service struct {
	Indexes docqa.IndexManager
}

// NewService creates a new Service.
func NewService(indexes docqa.IndexManager) *Service {
	return &Service{Indexes: indexes}
}

// AnswerQuestion searches the collection's index for up to topK matches
// and composes an answer from them. Returns EINVALID for a non-positive
// topK and ENOTFOUND for an unknown collection.
func (s *Service) AnswerQuestion(ctx context.Context, query string, key string, topK int) (*docqa.Answer, error) {
	if topK <= 0 {
		return nil, docqa.Errorf(docqa.EINVALID, "top-k must be positive, got %d", topK)
	}
	idx, err := s.Indexes.EnsureIndex(ctx, key, false)
	if err != nil {
		return nil, err
	}
	return ComposeAnswer(idx.Search(query, topK)), nil
}

// ComposeAnswer applies the retrieval policy to matches ordered by
// descending score.
//
// Matches scoring below MinRelevance are not shown. If none remain the
// answer is NotFoundText with the best score as confidence. Otherwise each
// surviving section is trimmed to ExcerptLimit and listed after Preamble.
// Escalation is requested whenever the best score is below
// EscalationThreshold, even if excerpts are shown.
func ComposeAnswer(matches []docqa.Match) *docqa.Answer {
	if len(matches) == 0 {
		return notFound(0)
	}

	best := matches[0].Score
	var snippets []string
	var citations []docqa.Citation
	seen := make(map[docqa.Citation]bool)
	for _, m := range matches {
		if m.Score < MinRelevance {
			continue
		}
		snippets = append(snippets, Bullet+TrimExcerpt(m.Section.Content, ExcerptLimit))

		c := docqa.Citation{
			Title: m.Section.SourceTitle + ": " + m.Section.Heading,
			URL:   m.Section.SourceID,
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		c.Score = m.Score
		citations = append(citations, c)
	}

	if len(snippets) == 0 {
		return notFound(best)
	}

	if len(citations) > MaxCitations {
		citations = citations[:MaxCitations]
	}
	return &docqa.Answer{
		Answer:               Preamble + "\n\n" + strings.Join(snippets, "\n\n"),
		Citations:            citations,
		Confidence:           best,
		ShouldCollectContact: best < EscalationThreshold,
	}
}

func notFound(confidence float64) *docqa.Answer {
	return &docqa.Answer{
		Answer:               NotFoundText,
		Citations:            []docqa.Citation{},
		Confidence:           confidence,
		ShouldCollectContact: true,
	}
}

// TrimExcerpt shortens text to at most limit characters without adding an
// ellipsis. Text within the limit is returned unchanged. Longer text is cut
// after the last ". ", "! " or "? " inside the window when that boundary
// lies beyond MinSentenceCut, and at the raw limit otherwise.
func TrimExcerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := runes[:limit]

	last := -1
	for i := len(cut) - 2; i >= 0; i-- {
		if cut[i+1] != ' ' {
			continue
		}
		if r := cut[i]; r == '.' || r == '!' || r == '?' {
			last = i
			break
		}
	}
	if last > MinSentenceCut {
		return strings.TrimSpace(string(cut[:last+1]))
	}
	return strings.TrimSpace(string(cut))
}

// ListSections returns the collection's distinct trimmed, non-empty
// headings in first-seen order, capped at MaxSectionRefs.
func (s *Service) ListSections(ctx context.Context, key string) ([]docqa.SectionRef, error) {
	idx, err := s.Indexes.EnsureIndex(ctx, key, false)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	refs := []docqa.SectionRef{}
	for _, sec := range idx.Sections() {
		h := strings.TrimSpace(sec.Heading)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		refs = append(refs, docqa.SectionRef{Heading: h, URL: sec.SourceID})
		if len(refs) == MaxSectionRefs {
			break
		}
	}
	return refs, nil
}
