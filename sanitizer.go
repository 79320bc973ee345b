package sanitize

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// urlRegexp matches http/https URLs inside plain text.
var urlRegexp = regexp.MustCompile(`https?://[^\s<>"]+[^\s<>".,;:!?)\]]`)

// Sanitize parses input, applies p, and returns the sanitized markup.
// If p is nil, DefaultPolicy is used. Malformed markup never fails the
// call; the parser recovers the way a browser would. The only error
// conditions are an invalid Policy or a failing reader.
func Sanitize(input string, p *Policy) (string, error) {
	return SanitizeReader(strings.NewReader(input), p)
}

// SanitizeReader reads markup from r, applies p, and returns the
// sanitized markup string.
func SanitizeReader(r io.Reader, p *Policy) (string, error) {
	if p == nil {
		p = DefaultPolicy()
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	rw := &rewriter{
		p:       p,
		tags:    sliceToSet(p.AllowedTags),
		schemes: p.schemeSet(),
		drop:    sliceToSet(p.dropContent()),
	}

	// html.Parse wraps content in <html><head><body>; rewrite the body
	// children so the wrapper never appears in output.
	var out []*html.Node
	if body := findBody(doc); body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			out = append(out, rw.rewrite(c, 1)...)
		}
	} else {
		out = rw.rewrite(doc, 0)
	}

	var buf bytes.Buffer
	for _, n := range out {
		render(&buf, n)
	}
	return buf.String(), nil
}

// rewriter walks an owned input tree and produces a freshly allocated
// output tree. Nothing in the input is mutated; unwrapping a disallowed
// element is just returning its rewritten children in its place.
type rewriter struct {
	p       *Policy
	tags    map[string]bool
	schemes map[string]bool
	drop    map[string]bool
}

// rewrite returns the replacement nodes for n: zero nodes (dropped),
// the rewritten children (unwrapped), or a single fresh element.
func (rw *rewriter) rewrite(n *html.Node, depth int) []*html.Node {
	switch n.Type {
	case html.TextNode:
		// Generated anchors go through the same admission rules as
		// parsed ones: no anchor when the tag is disallowed, no
		// linkification inside an existing anchor, and no wrapping of
		// URLs whose scheme the policy rejects.
		if rw.p.Linkify && rw.tags["a"] && !insideAnchor(n) {
			return rw.linkifyText(n.Data)
		}
		return []*html.Node{{Type: html.TextNode, Data: n.Data}}

	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if rw.drop[tag] {
			return nil
		}
		tooDeep := rw.p.MaxDepth > 0 && depth > rw.p.MaxDepth
		if !rw.tags[tag] || tooDeep {
			return rw.rewriteChildren(n, depth)
		}

		el := &html.Node{Type: html.ElementNode, DataAtom: n.DataAtom, Data: tag}
		el.Attr = rw.filterAttrs(n.Attr, tag)
		if tag == "a" {
			hardenLink(el)
		}
		for _, t := range rw.p.Transformers {
			if el = t(el); el == nil {
				return nil
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			for _, rc := range rw.rewrite(c, depth+1) {
				el.AppendChild(rc)
			}
		}
		return []*html.Node{el}

	case html.CommentNode, html.DoctypeNode:
		// strip comments and doctypes
		return nil

	default:
		return rw.rewriteChildren(n, depth)
	}
}

func (rw *rewriter) rewriteChildren(n *html.Node, depth int) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, rw.rewrite(c, depth)...)
	}
	return out
}

// filterAttrs keeps only attributes allowed on tag, in input order.
// Name filtering runs first; URL-bearing attributes are then validated
// against the scheme allow-list and dropped on failure.
func (rw *rewriter) filterAttrs(attrs []html.Attribute, tag string) []html.Attribute {
	var out []html.Attribute
	for _, a := range attrs {
		if !attrAllowed(a.Key, tag, rw.p.AllowedAttributes) {
			continue
		}
		if a.Key == "href" || a.Key == "src" || a.Key == "action" {
			if !schemeAllowed(a.Val, rw.schemes) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func attrAllowed(attr, tag string, allowed map[string][]string) bool {
	if list, ok := allowed["*"]; ok {
		for _, a := range list {
			if a == attr {
				return true
			}
		}
	}
	if list, ok := allowed[tag]; ok {
		for _, a := range list {
			if a == attr {
				return true
			}
		}
	}
	return false
}

// hardenLink forces rel="noopener noreferrer" on anchors that open a
// new browsing context, overwriting any prior rel value. Browsers
// match the target keyword ASCII-case-insensitively, so this does too.
func hardenLink(n *html.Node) {
	if strings.EqualFold(GetAttr(n, "target"), "_blank") {
		SetAttr(n, "rel", "noopener noreferrer")
	}
}

// insideAnchor reports whether n has an anchor ancestor in the input
// tree. Text already inside a link is never linkified again.
func insideAnchor(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && strings.ToLower(p.Data) == "a" {
			return true
		}
	}
	return false
}

// linkifyText splits text into text nodes and anchor elements for each
// embedded URL that passes the scheme allow-list; rejected URLs stay
// plain text. Generated anchors are hardened.
func (rw *rewriter) linkifyText(text string) []*html.Node {
	matches := urlRegexp.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []*html.Node{{Type: html.TextNode, Data: text}}
	}
	var out []*html.Node
	last := 0
	for _, m := range matches {
		raw := text[m[0]:m[1]]
		if !schemeAllowed(raw, rw.schemes) {
			continue
		}
		if m[0] > last {
			out = append(out, &html.Node{Type: html.TextNode, Data: text[last:m[0]]})
		}
		a := &html.Node{
			Type: html.ElementNode,
			Data: "a",
			Attr: []html.Attribute{
				{Key: "href", Val: raw},
				{Key: "rel", Val: "noopener noreferrer"},
			},
		}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: raw})
		out = append(out, a)
		last = m[1]
	}
	if last < len(text) {
		out = append(out, &html.Node{Type: html.TextNode, Data: text[last:]})
	}
	return out
}

// render serializes a rewritten node. Text and attribute values are
// escaped so character data can never reopen a tag or attribute.
func render(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(html.EscapeString(n.Data))
	case html.ElementNode:
		buf.WriteByte('<')
		buf.WriteString(n.Data)
		for _, a := range n.Attr {
			buf.WriteByte(' ')
			buf.WriteString(a.Key)
			buf.WriteString(`="`)
			buf.WriteString(html.EscapeString(a.Val))
			buf.WriteByte('"')
		}
		if isVoidElement(n.Data) {
			buf.WriteString(" />")
			return
		}
		buf.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			render(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(n.Data)
		buf.WriteByte('>')
	}
}

// SetAttr sets (or adds) the attribute key=val on node n. It is
// intended for use inside Transformer functions.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// GetAttr returns the value of the named attribute on n, or "" if not
// present.
func GetAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// RemoveAttr removes the named attribute from n if present.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

func findBody(doc *html.Node) *html.Node {
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == "body" {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if r := find(c); r != nil {
				return r
			}
		}
		return nil
	}
	return find(doc)
}
