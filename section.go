package docqa

import (
	"regexp"
	"strings"
)

// Section is the smallest retrievable unit of text: one heading within one
// documentation page together with the text that follows it.
type Section struct {
	SourceTitle string `json:"title"`
	Heading     string `json:"heading"`
	SourceID    string `json:"url"`
	Content     string `json:"content"`
}

// Validate returns an error if the section contains invalid fields.
func (s *Section) Validate() error {
	if strings.TrimSpace(s.Heading) == "" {
		return Errorf(EINVALID, "section heading required")
	}
	if CleanText(s.Content) == "" {
		return Errorf(EINVALID, "section content required")
	}
	return nil
}

// SectionRef is a lightweight listing entry for a section.
type SectionRef struct {
	Heading string `json:"heading"`
	URL     string `json:"url"`
}

// Unicode-aware: non-breaking spaces are common in exported help pages.
var whitespaceRe = regexp.MustCompile(`[\s\p{Z}\x{85}]+`)

// CleanText collapses every run of whitespace into a single space and trims
// the result.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
