package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// GeneratedImagePrefix is the stable id prefix marking generation-image
// containers in the source page.
const GeneratedImagePrefix = "image-gen-"

// interactiveTags are form and control elements that never carry
// conversation content.
var interactiveTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"form":     true,
	"label":    true,
}

// chromeClasses mark UI-only containers: widgets, suggestion chips, and
// screen-reader-only text that would survive generic sanitization as
// orphaned label text.
var chromeClasses = map[string]bool{
	"sr-only":            true,
	"screen-reader-only": true,
	"widget":             true,
	"suggestions":        true,
	"suggestion-chips":   true,
}

// Prefilter removes UI-only nodes from a turn subtree in place. It must run
// on the raw clone before the allow-list filter; see the package comment.
// When stripGenerated is set, generation-image containers (identified by
// GeneratedImagePrefix) are removed as well.
func Prefilter(root *html.Node, stripGenerated bool) {
	var doomed []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && shouldRemove(n, stripGenerated) {
			doomed = append(doomed, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// shouldRemove classifies one element against the removal categories.
func shouldRemove(n *html.Node, stripGenerated bool) bool {
	if interactiveTags[n.Data] {
		return true
	}

	var id, class, role, state string
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			id = a.Val
		case "class":
			class = a.Val
		case "role":
			role = a.Val
		case "data-state":
			state = a.Val
		}
	}

	// ARIA buttons are interactive controls regardless of tag.
	if role == "button" {
		return true
	}

	// Closed auxiliary popovers carry no visible content.
	if state == "closed" {
		return true
	}

	for _, cls := range strings.Fields(class) {
		if chromeClasses[strings.ToLower(cls)] {
			return true
		}
	}

	if stripGenerated && strings.HasPrefix(id, GeneratedImagePrefix) {
		return true
	}

	return false
}
