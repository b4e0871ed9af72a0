package htmltext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tagExpr        = regexp.MustCompile(`(?i)<\s*(html|body|div|p|br|span|h[1-6]|li|table)\b`)
	whitespaceExpr = regexp.MustCompile(`\s+`)
)

// LooksLikeHTML reports whether the payload is markup rather than
// prose, so pasted web pages can be reduced to text before analysis.
func LooksLikeHTML(text string) bool {
	return tagExpr.MatchString(text)
}

// ExtractText reduces an HTML payload to its visible text. Script and
// style contents are dropped; on any parse problem the input comes
// back unchanged so analysis still proceeds.
func ExtractText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	doc.Find("script, style, noscript").Remove()

	text := whitespaceExpr.ReplaceAllString(doc.Text(), " ")
	return strings.TrimSpace(text)
}
