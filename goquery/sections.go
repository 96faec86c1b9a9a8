// Package goquery splits documentation pages into titled sections using
// goquery CSS selection over the parsed HTML tree.
package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docqa"
)

// FallbackHeading is used for the single section of an untitled page
// without sub-headings. It is also a placeholder, so such sections are
// filtered out.
const FallbackHeading = "Full Page"

// placeholderHeadings are headings that never identify real content.
var placeholderHeadings = map[string]bool{
	"full page": true,
	"error":     true,
}

// Ensure SectionExtractor implements docqa.SectionExtractor at compile time.
var _ docqa.SectionExtractor = (*SectionExtractor)(nil)

// SectionExtractor fetches pages and splits them at h2/h3 headings.
type SectionExtractor struct {
	Fetcher docqa.Fetcher
}

// NewSectionExtractor creates a new SectionExtractor reading pages from fetcher.
func NewSectionExtractor(fetcher docqa.Fetcher) *SectionExtractor {
	return &SectionExtractor{Fetcher: fetcher}
}

// Extract fetches the document and returns its sections in document order.
// Only fetch failures are returned as errors.
func (e *SectionExtractor) Extract(ctx context.Context, documentID string) ([]*docqa.Section, error) {
	html, err := e.Fetcher.Fetch(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", documentID, err)
	}
	return ExtractSections(html, documentID), nil
}

// ExtractSections splits raw HTML into sections.
//
// The page title is the first h1, else the <title>, else empty. Within the
// main content region (<main>, else div#main, else the whole page) every h2
// or h3 starts a new section and the text of each following p and li is
// appended to it. Pages without sub-headings produce one section holding
// all paragraph text, headed by the page title. Sections with placeholder
// headings are dropped and duplicates of (title, heading, document) are
// removed, keeping the first.
func ExtractSections(rawHTML, documentID string) []*docqa.Section {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	title := pageTitle(doc)
	main := contentRegion(doc)

	var (
		sections []*docqa.Section
		heading  string
		chunks   []string
	)
	flush := func() {
		if heading == "" {
			return
		}
		content := docqa.CleanText(strings.Join(chunks, " "))
		if content == "" {
			return
		}
		sections = append(sections, &docqa.Section{
			SourceTitle: title,
			Heading:     heading,
			SourceID:    documentID,
			Content:     content,
		})
	}

	main.Find("*").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "h2", "h3":
			flush()
			heading = docqa.CleanText(sel.Text())
			chunks = nil
		case "p", "li":
			if text := docqa.CleanText(sel.Text()); text != "" {
				chunks = append(chunks, text)
			}
		}
	})
	flush()

	if len(sections) == 0 {
		if s := fallbackSection(main, title, documentID); s != nil {
			sections = append(sections, s)
		}
	}

	return filterSections(sections)
}

func pageTitle(doc *goquery.Document) string {
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return docqa.CleanText(h1.Text())
	}
	if t := doc.Find("title").First(); t.Length() > 0 {
		return docqa.CleanText(t.Text())
	}
	return ""
}

func contentRegion(doc *goquery.Document) *goquery.Selection {
	if main := doc.Find("main").First(); main.Length() > 0 {
		return main
	}
	if main := doc.Find("div#main").First(); main.Length() > 0 {
		return main
	}
	return doc.Selection
}

func fallbackSection(main *goquery.Selection, title, documentID string) *docqa.Section {
	var paragraphs []string
	main.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := docqa.CleanText(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return nil
	}

	heading := title
	if heading == "" {
		heading = FallbackHeading
	}
	return &docqa.Section{
		SourceTitle: title,
		Heading:     heading,
		SourceID:    documentID,
		Content:     strings.Join(paragraphs, " "),
	}
}

func filterSections(sections []*docqa.Section) []*docqa.Section {
	type key struct{ title, heading, id string }
	seen := make(map[key]bool, len(sections))
	out := make([]*docqa.Section, 0, len(sections))
	for _, s := range sections {
		h := strings.TrimSpace(s.Heading)
		if h == "" || placeholderHeadings[strings.ToLower(h)] {
			continue
		}
		k := key{s.SourceTitle, h, s.SourceID}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}
