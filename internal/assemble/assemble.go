// Package assemble accumulates cleaned turn fragments into a complete,
// self-contained HTML document and finalizes it as a downloadable artifact.
package assemble

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
)

// ErrFinalized indicates a second finalize on the same document.
var ErrFinalized = errors.New("document already finalized")

// MIMEType of the finished artifact.
const MIMEType = "text/html;charset=utf-8"

// toolID identifies the generator in the debug comment.
const toolID = "go-chat2html"

// Meta describes one output document.
type Meta struct {
	Title        string
	Theme        string // "auto", "light", "dark"
	Version      string
	RunID        string
	GeneratedAt  time.Time
	HighlightCSS string
}

// Builder owns the growing output exclusively. Fragments are appended
// strictly in original turn order; the parts are concatenated once at
// finalize, not incrementally, to avoid quadratic buffer growth on long
// conversations.
type Builder struct {
	parts     []string
	finalized bool
}

// New starts a document with its header: escaped title, theme style block,
// and a fixed debug comment.
func New(meta Meta) *Builder {
	title := meta.Title
	if title == "" {
		title = "Conversation"
	}

	b := &Builder{parts: make([]string, 0, 16)}
	b.parts = append(b.parts,
		"<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n",
		"<title>"+html.EscapeString(title)+"</title>\n",
		"<style>\n"+themeCSS(meta.Theme)+meta.HighlightCSS+"</style>\n",
		"</head>\n<body>\n",
		fmt.Sprintf("<!-- %s %s | theme: %s | generated: %s | run: %s -->\n",
			toolID, meta.Version, meta.Theme, meta.GeneratedAt.Format(time.RFC3339), meta.RunID),
		"<h1>"+html.EscapeString(title)+"</h1>\n",
	)
	return b
}

// Append adds one turn fragment wrapped in its role class. Order of calls
// is the order in the document.
func (b *Builder) Append(role, fragment string) {
	if b.finalized {
		return
	}
	b.parts = append(b.parts,
		`<div class="turn turn-`+role+`">`+"\n"+fragment+"\n</div>\n")
}

// Finalize closes the document and joins all parts in one operation.
// A document finalizes exactly once.
func (b *Builder) Finalize() ([]byte, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true
	b.parts = append(b.parts, "</body>\n</html>\n")
	return []byte(strings.Join(b.parts, "")), nil
}
