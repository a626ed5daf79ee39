// Package sanitize cleans one conversation turn in two stages: a structural
// pre-filter that removes UI-only nodes from a clone of the turn, then an
// allow-list content filter. The order is load-bearing: generic sanitization
// cannot tell UI chrome text from conversation text, so chrome must be cut
// out structurally first.
package sanitize

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoPolicy indicates the allow-list sanitizer is missing. Cleaning is
// mandatory and never bypassed.
var ErrNoPolicy = errors.New("sanitize: allow-list policy unavailable")

// AllowedTags is the fixed tag allow-list for cleaned content.
var AllowedTags = []string{
	"p", "pre", "code",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li",
	"em", "strong", "blockquote",
	"table", "thead", "tbody", "tfoot", "tr", "th", "td",
	"hr", "a", "br", "img",
}

// AllowedAttrs is the fixed attribute allow-list for cleaned content.
var AllowedAttrs = []string{"class", "href", "target", "rel", "src", "alt"}

// Policy is the external sanitizer capability: markup in, markup out.
type Policy interface {
	Sanitize(markup string) string
}

// Highlighter annotates code text with presentation markup. Optional: a nil
// highlighter degrades code blocks to plain text.
type Highlighter interface {
	Highlight(source, lang string) (string, error)
}

// AllowListPolicy wraps bluemonday with the fixed allow-lists.
type AllowListPolicy struct {
	policy *bluemonday.Policy
}

// NewAllowListPolicy builds the default allow-list sanitizer.
func NewAllowListPolicy() *AllowListPolicy {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.AllowAttrs(AllowedAttrs...).Globally()
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowDataURIImages()
	p.AllowRelativeURLs(true)
	return &AllowListPolicy{policy: p}
}

// Sanitize applies the allow-list filter.
func (a *AllowListPolicy) Sanitize(markup string) string {
	return a.policy.Sanitize(markup)
}

// Cleaner turns a raw conversation turn into a cleaned fragment.
type Cleaner struct {
	policy         Policy
	highlighter    Highlighter
	stripGenerated bool
}

// NewCleaner wires a Cleaner for one run. stripGenerated removes
// generated-image containers, used when the image preset is "none".
// Returns ErrNoPolicy when the sanitizer capability is missing.
func NewCleaner(policy Policy, highlighter Highlighter, stripGenerated bool) (*Cleaner, error) {
	if policy == nil {
		return nil, ErrNoPolicy
	}
	return &Cleaner{policy: policy, highlighter: highlighter, stripGenerated: stripGenerated}, nil
}

// Clean runs the two-stage pipeline on a copy of turn and returns the
// cleaned fragment as a container node. The input subtree is never mutated.
func (c *Cleaner) Clean(ctx context.Context, turn *html.Node) (*html.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 1: structural pre-filter on a full clone, before any generic
	// sanitization.
	clone := CloneSubtree(turn)
	Prefilter(clone, c.stripGenerated)

	var sb strings.Builder
	if err := html.Render(&sb, clone); err != nil {
		return nil, err
	}

	// Stage 2: allow-list filter.
	sanitized := c.policy.Sanitize(sb.String())

	frag, err := ParseFragment(sanitized)
	if err != nil {
		return nil, err
	}

	// Second explicit pass over every element: anything outside the
	// attribute allow-list is stripped even if the sanitizer let it through.
	StripDisallowedAttrs(frag)

	normalizeCodeBlocks(frag, c.highlighter)
	return frag, nil
}

// StripDisallowedAttrs removes every attribute not on AllowedAttrs from all
// elements under root.
func StripDisallowedAttrs(root *html.Node) {
	allowed := make(map[string]bool, len(AllowedAttrs))
	for _, a := range AllowedAttrs {
		allowed[a] = true
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && len(n.Attr) > 0 {
			kept := n.Attr[:0]
			for _, a := range n.Attr {
				if allowed[a.Key] {
					kept = append(kept, a)
				}
			}
			n.Attr = kept
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

// CloneSubtree deep-copies a node and its descendants.
func CloneSubtree(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(CloneSubtree(c))
	}
	return clone
}

// ParseFragment parses markup in body context and wraps the nodes in a
// container for uniform traversal.
func ParseFragment(markup string) (*html.Node, error) {
	ctxNode := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctxNode)
	if err != nil {
		return nil, err
	}
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// RenderFragment renders a container's children back to markup.
func RenderFragment(container *html.Node) (string, error) {
	var sb strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
