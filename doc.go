// Package sanitize is a whitelist-driven content sanitization toolkit
// for Go applications.
//
// # Overview
//
// sanitize takes untrusted strings — rich-text markup, URLs, filenames,
// search queries — and returns values safe to render, store, or use as
// identifiers. Everything is gated by an explicit allow-list [Policy]:
// anything not enumerated is rejected by default, and no denylist
// pattern-matching is involved.
//
// The markup sanitizer parses input with the standard
// golang.org/x/net/html parser, rewrites the node tree against the
// Policy, and serializes a fresh tree. Disallowed elements are
// unwrapped — their children are promoted in place and filtered under
// the same rules — so content is never destroyed just because its
// wrapper was disallowed. Raw-text containers such as script and style
// lose their whole subtree instead.
//
// # Policies
//
// A [Policy] controls:
//   - Which element tags are allowed ([Policy.AllowedTags])
//   - Which attributes are allowed per tag ([Policy.AllowedAttributes])
//   - Which URL schemes are allowed in href/src ([Policy.AllowedSchemes])
//   - Which tags lose their entire subtree ([Policy.DropContent])
//   - Zero or more [Transformer] callbacks that can mutate allowed nodes
//   - Whether plain-text URLs in text nodes become links ([Policy.Linkify])
//   - A maximum nesting depth ([Policy.MaxDepth])
//
// Two built-in policies are provided ([DefaultPolicy], [StrictPolicy]),
// and policies can be loaded from YAML with [LoadPolicyFile]. A Policy
// that allows nothing is a configuration error, not a silent allow-all:
// [Policy.Validate] runs before any sanitization.
//
// # Beyond markup
//
// The toolkit also covers the other untrusted-string surfaces an
// application has: [SanitizeFilename] (path traversal, hostile
// characters), [SanitizeSearch] (markup-free, length-bounded query
// text), [EscapePattern] (regexp-literal embedding), [EscapeText] and
// [StripTags] (text/markup boundary), [Policy.IsValidURL] and
// [Policy.IsExternalURL] (scheme allow-list and origin checks), and
// [Digest] (SHA-256 allow-list tokens).
//
// # Security
//
// sanitize defends against common XSS vectors including:
//   - Script injection via <script> tags
//   - Event handler attributes (onclick, onerror, etc.)
//   - javascript: and data: URL schemes, including entity-encoded forms
//   - Reverse-tabnabbing: target="_blank" anchors are forced to
//     rel="noopener noreferrer"
//
// All sanitizers are total over string inputs: malformed markup or URLs
// degrade to best-effort output or false, never a panic or error.
//
// # Thread Safety
//
// Every function is safe for concurrent use. Policy structs should not
// be mutated after first use.
//
// # Example
//
//	p := sanitize.DefaultPolicy()
//	clean, err := sanitize.Sanitize(userInput, p)
package sanitize
