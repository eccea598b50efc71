package authoring

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags separate words when markup is stripped, so "<p>a</p><p>b</p>"
// becomes "a b" rather than "ab".
var blockTags = map[string]bool{
	"p": true, "br": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "th": true, "blockquote": true, "pre": true,
}

// StripMarkup converts editor HTML into plain text with whitespace runs
// collapsed to single spaces.
func StripMarkup(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return normalizeSpace(content)
	}

	z := html.NewTokenizer(strings.NewReader(content))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return normalizeSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
}

// Tokenize splits content on whitespace after stripping markup.
func Tokenize(content string) []string {
	return strings.Fields(StripMarkup(content))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
