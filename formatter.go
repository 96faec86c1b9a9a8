package docqa

import (
	"fmt"
	"strings"
)

// FormatAnswer formats an answer for terminal display.
// Citations are numbered and followed by the confidence score.
func FormatAnswer(a *Answer) string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(a.Answer)

	if len(a.Citations) > 0 {
		sb.WriteString("\n\nSources:\n")
		for i, c := range a.Citations {
			fmt.Fprintf(&sb, "  [%d] %s\n      %s (score %.2f)\n", i+1, c.Title, c.URL, c.Score)
		}
	} else {
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nConfidence: %.2f", a.Confidence)
	if a.ShouldCollectContact {
		sb.WriteString("\nLeave your contact details and our team will follow up.")
	}

	return sb.String()
}

// FormatSections formats a section listing, one heading per line.
func FormatSections(refs []SectionRef) string {
	if len(refs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		parts = append(parts, r.Heading+"\n    "+r.URL)
	}
	return strings.Join(parts, "\n")
}
