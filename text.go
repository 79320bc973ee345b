package sanitize

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// EscapeText converts characters with structural meaning in markup
// (angle brackets, ampersand, quotes) into their entity forms. The
// result can be embedded as character data without ever being
// reinterpreted as a tag or attribute boundary.
func EscapeText(text string) string {
	return html.EscapeString(text)
}

// StripTags removes all markup and returns plain text. Entity
// references are decoded. Raw-text containers (script, style, and
// friends) contribute nothing: their payload is code, not content.
func StripTags(input string) (string, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return "", err
	}
	skip := sliceToSet(defaultDropContent)
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skip[strings.ToLower(n.Data)] {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return buf.String(), nil
}
