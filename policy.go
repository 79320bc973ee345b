package sanitize

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// Transformer is a function that receives an allowed, freshly rewritten
// element node and may mutate it in place (e.g., adding or removing
// attributes). Returning nil removes the node from the output entirely.
type Transformer func(n *html.Node) *html.Node

// Policy defines what markup, URLs, and attributes are considered safe.
// A Policy is configuration data: build it once, validate it, and share
// it read-only between any number of concurrent sanitization calls.
type Policy struct {
	// AllowedTags is the list of tag names that are kept in output.
	// Any other element is unwrapped: the element itself is removed
	// and its children are promoted into its place, in order.
	AllowedTags []string `yaml:"allowed_tags"`

	// AllowedAttributes maps tag names to the list of attribute names
	// that are kept on that tag. Use "*" as a key to allow attributes
	// on every tag.
	AllowedAttributes map[string][]string `yaml:"allowed_attributes"`

	// AllowedSchemes lists the URL schemes (e.g. "http", "https",
	// "mailto") permitted in href and src attributes. Any URL whose
	// scheme is not in this list is removed from the attribute.
	AllowedSchemes []string `yaml:"allowed_schemes"`

	// DropContent lists tags whose entire subtree is removed instead
	// of unwrapped. Raw-text containers such as script and style must
	// be listed here, or unwrapping would promote their payload into
	// visible text. Defaults apply when the slice is nil.
	DropContent []string `yaml:"drop_content"`

	// Transformers is an optional slice of Transformer functions applied
	// in order to every allowed element node after attribute filtering
	// and link hardening.
	Transformers []Transformer `yaml:"-"`

	// Linkify converts plain-text URLs found in text nodes into <a>
	// elements pointing to those URLs.
	Linkify bool `yaml:"linkify"`

	// MaxDepth limits how deeply nested elements may be. Elements at
	// a depth greater than MaxDepth are unwrapped (children promoted).
	// Zero means unlimited.
	MaxDepth int `yaml:"max_depth"`

	schemesOnce sync.Once
	schemes     map[string]bool
}

// schemeSet returns the scheme allow-list as a lookup set, built once
// per Policy. Policies must not be mutated after first use.
func (p *Policy) schemeSet() map[string]bool {
	p.schemesOnce.Do(func() {
		p.schemes = sliceToSet(p.AllowedSchemes)
	})
	return p.schemes
}

// defaultDropContent covers the raw-text and embedding tags whose
// contents must never survive as promoted children.
var defaultDropContent = []string{
	"script", "style", "iframe", "object", "embed", "noscript", "head", "title",
}

// DefaultPolicy returns a Policy that allows a common safe subset of
// HTML used in content — headings, paragraphs, formatting, lists,
// links, images, code, blockquotes — while rejecting script, style,
// and other dangerous tags. Links and image sources must use http,
// https, mailto, or tel.
func DefaultPolicy() *Policy {
	return &Policy{
		AllowedTags: []string{
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "br", "hr",
			"b", "i", "em", "strong", "u", "s", "strike", "del", "ins",
			"a", "img",
			"ul", "ol", "li",
			"table", "thead", "tbody", "tfoot", "tr", "th", "td",
			"code", "pre", "kbd", "samp",
			"blockquote", "cite", "q",
			"figure", "figcaption",
			"div", "span", "section", "article", "header", "footer",
			"details", "summary",
			"abbr", "acronym", "address",
			"sup", "sub",
		},
		AllowedAttributes: map[string][]string{
			"a":          {"href", "title", "target", "rel"},
			"img":        {"src", "alt", "title", "width", "height", "loading"},
			"td":         {"colspan", "rowspan", "align", "valign"},
			"th":         {"colspan", "rowspan", "align", "valign", "scope"},
			"blockquote": {"cite"},
			"q":          {"cite"},
			"abbr":       {"title"},
			"acronym":    {"title"},
			"*":          {"id", "class", "lang", "dir"},
		},
		AllowedSchemes: []string{"http", "https", "mailto", "tel"},
	}
}

// StrictPolicy returns a Policy that allows only the most basic inline
// formatting tags with no attributes at all — suitable for comment
// sections and user-generated content where you want minimal markup.
func StrictPolicy() *Policy {
	return &Policy{
		AllowedTags:       []string{"b", "i", "em", "strong", "br", "p", "ul", "ol", "li"},
		AllowedAttributes: map[string][]string{},
		AllowedSchemes:    []string{"https"},
	}
}

// Validate reports whether p is usable. An empty tag or scheme
// allow-list, an attribute rule for a tag that is not allowed, or a tag
// listed as both allowed and drop-content is a configuration error; the
// sanitizer refuses such policies rather than degrading to allow-all.
func (p *Policy) Validate() error {
	if len(p.AllowedTags) == 0 {
		return fmt.Errorf("policy: empty tag allow-list")
	}
	if len(p.AllowedSchemes) == 0 {
		return fmt.Errorf("policy: empty scheme allow-list")
	}
	if p.MaxDepth < 0 {
		return fmt.Errorf("policy: negative MaxDepth %d", p.MaxDepth)
	}
	tags := sliceToSet(p.AllowedTags)
	for tag := range p.AllowedAttributes {
		if tag == "*" {
			continue
		}
		if !tags[strings.ToLower(tag)] {
			return fmt.Errorf("policy: attribute rule for disallowed tag %q", tag)
		}
	}
	for _, tag := range p.dropContent() {
		if tags[strings.ToLower(tag)] {
			return fmt.Errorf("policy: tag %q is both allowed and drop-content", tag)
		}
	}
	return nil
}

func (p *Policy) dropContent() []string {
	if p.DropContent == nil {
		return defaultDropContent
	}
	return p.DropContent
}

// LoadPolicy parses a YAML policy document and validates it.
func LoadPolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPolicyFile reads a YAML policy from path and validates it.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	return LoadPolicy(data)
}

func sliceToSet(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[strings.ToLower(v)] = true
	}
	return m
}
