package sanitize

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// IsValidURL reports whether raw is safe to render as a live link under
// p's scheme allow-list. Relative references (starting with "/", "./",
// or "../") are always valid. Anything else must parse and carry an
// allowed scheme; dangerous schemes are excluded by omission from the
// allow-list, never by pattern-matching a denylist. Malformed input is
// simply false, never an error.
func (p *Policy) IsValidURL(raw string) bool {
	if isRelativeRef(raw) {
		return true
	}
	u, err := url.Parse(cleanURL(raw))
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return false
	}
	return p.schemeSet()[u.Scheme]
}

// IsExternalURL reports whether raw is a valid absolute URL whose host
// differs from originHost. Relative references and invalid URLs are
// never external.
func (p *Policy) IsExternalURL(raw, originHost string) bool {
	if isRelativeRef(raw) {
		return false
	}
	if !p.IsValidURL(raw) {
		return false
	}
	u, err := url.Parse(cleanURL(raw))
	if err != nil {
		return false
	}
	return !strings.EqualFold(u.Hostname(), originHost)
}

func isRelativeRef(raw string) bool {
	raw = strings.TrimSpace(raw)
	return strings.HasPrefix(raw, "/") ||
		strings.HasPrefix(raw, "./") ||
		strings.HasPrefix(raw, "../")
}

// schemeAllowed is the attribute-value gate used by the tree sanitizer.
// Unlike IsValidURL it admits scheme-less values, since any relative
// reference is safe in an href/src position.
func schemeAllowed(raw string, schemes map[string]bool) bool {
	u, err := url.Parse(cleanURL(raw))
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		// Relative URL — allow.
		return true
	}
	return schemes[u.Scheme]
}

// cleanURL normalizes a candidate URL before scheme inspection: decode
// entity tricks (&#106;avascript: etc.), lowercase, and strip the
// control characters that lenient parsers skip over.
func cleanURL(raw string) string {
	decoded := htmlDecodeMinimal(strings.TrimSpace(raw))
	decoded = strings.ToLower(strings.TrimSpace(decoded))
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, decoded)
}

// htmlDecodeMinimal decodes entity tricks used to smuggle schemes
// (&#x6A; etc.) by round-tripping the value through the HTML parser as
// an attribute, letting it apply its full entity table.
func htmlDecodeMinimal(s string) string {
	fragment := "<a href=\"" + s + "\">"
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return s
	}
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					found = a.Val
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if found != "" {
		return found
	}
	return s
}
