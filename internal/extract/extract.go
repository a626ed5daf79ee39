// Package extract reads the conversation out of a saved page: the ordered
// turn list, role markers, title, creation date, and the streaming signal.
package extract

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/alnah/go-chat2html/internal/dateutil"
)

// Sentinel errors for snapshot parsing.
var (
	ErrParse          = errors.New("snapshot is not parseable HTML")
	ErrNoConversation = errors.New("no conversation container found in snapshot")
	ErrNoTurns        = errors.New("conversation container holds no turns")
)

// Role of one conversation turn.
type Role string

// Known roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// RoleAttr is the explicit role marker on turn elements.
const RoleAttr = "data-message-author-role"

// turnClass marks turn containers that lack an explicit role marker.
const turnClass = "conversation-turn"

// streamingClass marks an in-progress generation.
const streamingClass = "result-streaming"

// Turn is one message unit, read once at conversion start. Node is the raw
// subtree; processing always operates on a copy, never on Node itself.
type Turn struct {
	Index      int
	Role       Role
	FromParity bool // Role derived from index parity, not an explicit marker
	Node       *html.Node
}

// Document is a parsed snapshot.
type Document struct {
	turns     []Turn
	title     string
	created   time.Time
	hasDate   bool
	streaming bool
}

// Parse reads a snapshot and locates the conversation. Returns
// ErrNoConversation when no container is present and ErrNoTurns when the
// container is empty.
func Parse(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	container := findConversation(root)
	if container == nil {
		return nil, ErrNoConversation
	}

	doc := &Document{
		title:     findTitle(root),
		streaming: findStreaming(root),
	}
	doc.created, doc.hasDate = findCreated(root)

	for _, node := range collectTurnNodes(container) {
		i := len(doc.turns)
		role, fromParity := turnRole(node, i)
		doc.turns = append(doc.turns, Turn{Index: i, Role: role, FromParity: fromParity, Node: node})
	}
	if len(doc.turns) == 0 {
		return nil, ErrNoTurns
	}

	return doc, nil
}

// Turns returns the ordered turn list.
func (d *Document) Turns() []Turn { return d.turns }

// Title returns the page title, or "".
func (d *Document) Title() string { return d.title }

// Streaming reports whether generation was still in progress when the
// snapshot was taken.
func (d *Document) Streaming() bool { return d.streaming }

// CreatedAt returns the conversation creation date when the snapshot
// carries one.
func (d *Document) CreatedAt() (time.Time, bool) { return d.created, d.hasDate }

// findConversation locates the conversation container: the first main
// element, or the first element whose class list contains "conversation".
func findConversation(root *html.Node) *html.Node {
	if n := findFirst(root, func(n *html.Node) bool { return n.Data == "main" }); n != nil {
		return n
	}
	return findFirst(root, func(n *html.Node) bool {
		return hasClass(n, "conversation")
	})
}

// collectTurnNodes gathers turn elements in document order: elements with
// an explicit role marker, or failing that, elements with the turn class.
func collectTurnNodes(container *html.Node) []*html.Node {
	marked := collectAll(container, func(n *html.Node) bool {
		return attrValue(n, RoleAttr) != ""
	})
	if len(marked) > 0 {
		return marked
	}
	return collectAll(container, func(n *html.Node) bool {
		return hasClass(n, turnClass)
	})
}

// turnRole resolves a turn's role from its marker, falling back to index
// parity. Parity assumes strict user/assistant alternation and can mislabel
// turns when that breaks; callers surface a diagnostic when FromParity is
// set.
func turnRole(n *html.Node, index int) (Role, bool) {
	switch attrValue(n, RoleAttr) {
	case string(RoleUser):
		return RoleUser, false
	case string(RoleAssistant):
		return RoleAssistant, false
	}
	if index%2 == 0 {
		return RoleUser, true
	}
	return RoleAssistant, true
}

// findStreaming reports an in-progress generation marker anywhere in the
// page.
func findStreaming(root *html.Node) bool {
	return findFirst(root, func(n *html.Node) bool {
		return hasClass(n, streamingClass) || attrValue(n, "data-streaming") == "true"
	}) != nil
}

// findTitle returns the title element text, falling back to the first h1.
func findTitle(root *html.Node) string {
	if n := findFirst(root, func(n *html.Node) bool { return n.Data == "title" }); n != nil {
		if t := strings.TrimSpace(textOf(n)); t != "" {
			return t
		}
	}
	if n := findFirst(root, func(n *html.Node) bool { return n.Data == "h1" }); n != nil {
		return strings.TrimSpace(textOf(n))
	}
	return ""
}

// findCreated reads the conversation creation date from a meta tag.
func findCreated(root *html.Node) (time.Time, bool) {
	meta := findFirst(root, func(n *html.Node) bool {
		if n.Data != "meta" {
			return false
		}
		name := attrValue(n, "name")
		return name == "created" || name == "dcterms.created" || attrValue(n, "itemprop") == "dateCreated"
	})
	if meta == nil {
		return time.Time{}, false
	}
	return dateutil.ParseDocDate(attrValue(meta, "content"))
}

// findFirst returns the first element matching pred, in document order.
func findFirst(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && pred(n) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// collectAll gathers matching elements without descending into matches, so
// nested markers inside a turn do not produce duplicate turns.
func collectAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			found = append(found, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// hasClass checks a class-list token, case-insensitive.
func hasClass(n *html.Node, class string) bool {
	for _, cls := range strings.Fields(attrValue(n, "class")) {
		if strings.EqualFold(cls, class) {
			return true
		}
	}
	return false
}

// attrValue returns the value of an attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textOf concatenates all text under a node.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
