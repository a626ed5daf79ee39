package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/net/html"
)

// Stats counts per-image outcomes for one fragment.
type Stats struct {
	Embedded int
	Skipped  int
	Failed   int
}

// Add accumulates counts from another Stats.
func (s *Stats) Add(other Stats) {
	s.Embedded += other.Embedded
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Embedder drives each image in a cleaned fragment through
// pending -> skipped | embedded | failed. Failures never escape: every
// failed image becomes a visible fallback link in the fragment.
type Embedder struct {
	loader Loader
	preset Preset
	logger zerolog.Logger
}

// NewEmbedder creates an Embedder for one conversion run.
func NewEmbedder(loader Loader, preset Preset, logger zerolog.Logger) *Embedder {
	return &Embedder{loader: loader, preset: preset, logger: logger}
}

// EmbedAll processes every img element under root in document order,
// mutating the fragment in place. Each image gets one load attempt and one
// encode attempt.
func (e *Embedder) EmbedAll(ctx context.Context, root *html.Node) Stats {
	var stats Stats
	for _, img := range collectImages(root) {
		switch e.embedOne(ctx, img) {
		case outcomeEmbedded:
			stats.Embedded++
		case outcomeSkipped:
			stats.Skipped++
		case outcomeFailed:
			stats.Failed++
		}
	}
	return stats
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeEmbedded
	outcomeFailed
)

// embedOne resolves a single img element to its terminal state.
func (e *Embedder) embedOne(ctx context.Context, img *html.Node) outcome {
	src := attrValue(img, "src")

	// The "no images" sentinel replaces every image with an inert marker.
	if e.preset.None() {
		replaceWithOmittedMarker(img)
		return outcomeSkipped
	}

	// Skip policy runs before any acquisition. Dimensions come from the
	// snapshot's width/height attributes when present.
	w, h := attrInt(img, "width"), attrInt(img, "height")
	if ShouldSkip(src, w, h) {
		return outcomeSkipped
	}

	decoded, err := e.loader.Load(ctx, src)
	if err != nil {
		e.logger.Warn().Str("source", src).Err(err).Msg("image load failed, keeping fallback link")
		replaceWithFallbackLink(img, src)
		return outcomeFailed
	}

	bounds := decoded.Bounds()
	w, h = bounds.Dx(), bounds.Dy()
	if ShouldSkip("", w, h) {
		return outcomeSkipped
	}

	dims, ok := TargetDimensions(w, h, e.preset)
	if !ok {
		replaceWithOmittedMarker(img)
		return outcomeSkipped
	}

	dataURI, err := e.encode(decoded, dims)
	if err != nil {
		e.logger.Warn().Str("source", src).Err(err).Msg("image encode failed, keeping fallback link")
		replaceWithFallbackLink(img, src)
		return outcomeFailed
	}

	setAttr(img, "src", dataURI)
	setAttr(img, "width", strconv.Itoa(dims.Width))
	setAttr(img, "height", strconv.Itoa(dims.Height))
	e.logger.Debug().Str("source", src).Int("width", dims.Width).Int("height", dims.Height).Msg("image embedded")
	return outcomeEmbedded
}

// encode rescales onto a white raster and emits a JPEG data URI at the
// preset quality.
func (e *Embedder) encode(src image.Image, dims Dims) (string, error) {
	if dims.Width <= 0 || dims.Height <= 0 {
		return "", fmt.Errorf("invalid target dimensions %dx%d", dims.Width, dims.Height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))
	// JPEG has no alpha channel; flatten transparency onto white.
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: e.preset.Quality}); err != nil {
		return "", fmt.Errorf("encoding JPEG: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// replaceWithFallbackLink swaps an img for a link back to its source, so a
// blocked image stays reachable from the output document.
func replaceWithFallbackLink(img *html.Node, src string) {
	label := attrValue(img, "alt")
	if label == "" {
		label = "image"
	}
	link := &html.Node{
		Type: html.ElementNode,
		Data: "a",
		Attr: []html.Attribute{
			{Key: "href", Val: src},
			{Key: "target", Val: "_blank"},
			{Key: "rel", Val: "noopener"},
			{Key: "class", Val: "c2h-image-fallback"},
		},
	}
	link.AppendChild(&html.Node{Type: html.TextNode, Data: "[" + label + "]"})
	replaceNode(img, link)
}

// replaceWithOmittedMarker swaps an img for an inert marker.
func replaceWithOmittedMarker(img *html.Node) {
	marker := &html.Node{
		Type: html.ElementNode,
		Data: "em",
		Attr: []html.Attribute{{Key: "class", Val: "c2h-image-omitted"}},
	}
	marker.AppendChild(&html.Node{Type: html.TextNode, Data: "[image omitted]"})
	replaceNode(img, marker)
}

// replaceNode substitutes newNode for old in the tree.
func replaceNode(old, newNode *html.Node) {
	if old.Parent == nil {
		return
	}
	old.Parent.InsertBefore(newNode, old)
	old.Parent.RemoveChild(old)
}

// collectImages gathers img elements before mutation so traversal stays
// stable while nodes are replaced.
func collectImages(root *html.Node) []*html.Node {
	var imgs []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			imgs = append(imgs, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return imgs
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

// attrInt parses an integer attribute, returning 0 when absent or invalid.
func attrInt(n *html.Node, key string) int {
	raw := strings.TrimSuffix(attrValue(n, key), "px")
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}

// setAttr sets or adds an attribute on an element.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
