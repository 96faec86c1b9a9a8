package crawl

import (
	"fmt"
	"strings"
)

// ShortURL renders a document URL for progress output. The scheme is
// dropped and, past maxLen runes, the head is replaced by "..." cut at a
// path separator so the page name stays readable.
func ShortURL(rawURL string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	s := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(r[:maxLen])
	}
	tail := string(r[len(r)-maxLen+3:])
	if i := strings.IndexByte(tail, '/'); i > 0 && i < len(tail)-1 {
		tail = tail[i:]
	}
	return "..." + tail
}

var sizeUnits = []string{"KB", "MB", "GB"}

// FormatBytes renders a byte count with one decimal in the largest
// binary unit that keeps the value at or above 1.
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	unit := sizeUnits[0]
	for _, u := range sizeUnits[1:] {
		if v < 1024 {
			break
		}
		v /= 1024
		unit = u
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

// progressURLWidth bounds the URL column of progress lines.
const progressURLWidth = 60

// String renders the event as one progress line.
func (e ProgressEvent) String() string {
	switch e.Type {
	case ProgressStarted:
		return fmt.Sprintf("crawling %d documents", e.Total)
	case ProgressCompleted:
		return fmt.Sprintf("[%d/%d] %s (%d sections)", e.Completed, e.Total, ShortURL(e.URL, progressURLWidth), e.Sections)
	case ProgressFailed:
		return fmt.Sprintf("[%d/%d] skipped %s: %v", e.Completed, e.Total, ShortURL(e.URL, progressURLWidth), e.Error)
	case ProgressFinished:
		return fmt.Sprintf("crawled %d documents", e.Total)
	default:
		return ""
	}
}
