package sanitize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
)

// ChromaHighlighter annotates code using chroma in classes mode, so the
// output document styles tokens from its own stylesheet.
type ChromaHighlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaHighlighter creates the default highlighter.
func NewChromaHighlighter() *ChromaHighlighter {
	return &ChromaHighlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style: styles.Fallback,
	}
}

// Highlight tokenizes source and returns span markup. The language hint may
// be empty; chroma falls back to content analysis, then to plain text.
func (h *ChromaHighlighter) Highlight(source, lang string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenizing code: %w", err)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("formatting code: %w", err)
	}
	return buf.String(), nil
}

// StyleSheet returns the CSS for the highlighter's token classes, for
// inclusion in the output document's style block.
func (h *ChromaHighlighter) StyleSheet() string {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return ""
	}
	return buf.String()
}

// normalizeCodeBlocks rewrites every pre element so it holds exactly one
// code child and nothing else, annotating the code text via the highlighter
// when one is available. A highlighter failure degrades that block to plain
// text; it never fails the turn.
func normalizeCodeBlocks(root *html.Node, highlighter Highlighter) {
	for _, pre := range collectElements(root, "pre") {
		// Prefer the code element's own text: pre may still carry label
		// text from a stripped copy-code header.
		source := textContent(pre)
		if codes := collectElements(pre, "code"); len(codes) > 0 {
			source = textContent(codes[0])
		}
		lang := codeLanguage(pre)

		code := &html.Node{Type: html.ElementNode, Data: "code"}
		if lang != "" {
			code.Attr = []html.Attribute{{Key: "class", Val: "language-" + lang}}
		}

		filled := false
		if highlighter != nil {
			if markup, err := highlighter.Highlight(source, lang); err == nil {
				if frag, err := ParseFragment(markup); err == nil {
					for child := frag.FirstChild; child != nil; {
						next := child.NextSibling
						frag.RemoveChild(child)
						code.AppendChild(child)
						child = next
					}
					filled = true
				}
			}
		}
		if !filled {
			code.AppendChild(&html.Node{Type: html.TextNode, Data: source})
		}

		for child := pre.FirstChild; child != nil; {
			next := child.NextSibling
			pre.RemoveChild(child)
			child = next
		}
		pre.AppendChild(code)
	}
}

// codeLanguage extracts the language hint from a pre's code child class,
// following the "language-xxx" convention.
func codeLanguage(pre *html.Node) string {
	for _, code := range collectElements(pre, "code") {
		for _, a := range code.Attr {
			if a.Key != "class" {
				continue
			}
			for _, cls := range strings.Fields(a.Val) {
				if lang, ok := strings.CutPrefix(cls, "language-"); ok {
					return lang
				}
			}
		}
	}
	return ""
}

// collectElements gathers elements by tag name under root, in document order.
func collectElements(root *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
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

// textContent concatenates all text under a node.
func textContent(n *html.Node) string {
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
