package common

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultSummaryLength = 150

	ellipsis = "..."
)

var (
	tagRX      = regexp.MustCompile(`<[^>]*>`)
	headerRX   = regexp.MustCompile(`#+\s`)
	emphasisRX = regexp.MustCompile("[*_~`]")
	spaceRX    = regexp.MustCompile(`\s+`)

	stripPolicy = bluemonday.StrictPolicy()
)

// Summarize reduces markdown/HTML content to plain text of at most maxLength characters.
// Longer text is cut back to a word boundary and suffixed with "...", the suffix included
// in maxLength.
func Summarize(content string, maxLength int) string {
	if content == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}

	plain := html.UnescapeString(stripPolicy.Sanitize(content))
	// the strict policy escapes stray angle brackets, so anything tag-shaped
	// that survived unescaping is removed here
	plain = tagRX.ReplaceAllString(plain, "")
	plain = headerRX.ReplaceAllString(plain, "")
	plain = emphasisRX.ReplaceAllString(plain, "")
	plain = strings.TrimSpace(spaceRX.ReplaceAllString(plain, " "))

	runes := []rune(plain)
	if len(runes) <= maxLength {
		return plain
	}

	cut := maxLength - len(ellipsis)
	if cut < 1 {
		cut = maxLength
	}

	truncated := string(runes[:cut])
	if i := strings.LastIndex(truncated, " "); i > 0 {
		truncated = truncated[:i]
	}

	return truncated + ellipsis
}
