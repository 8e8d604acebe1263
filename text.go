package docrag

import (
	"regexp"
	"strings"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// NormalizeText applies the final cleanup to text flattened from HTML:
// non-breaking spaces become plain spaces, runs of three or more newlines
// collapse to a single blank line, and surrounding whitespace is trimmed.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// FenceCode wraps a preformatted block so it stays distinguishable from
// prose once the page is flattened to text.
func FenceCode(code string) string {
	return "```\n" + strings.Trim(code, "\n") + "\n```"
}
