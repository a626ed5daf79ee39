// Package imaging downscales and re-encodes conversation images into
// self-contained data URIs. The scale policy is pure math; the embedder
// owns acquisition, rescaling, and failure classification.
package imaging

import (
	"math"
	"strings"
)

// MinDimension is the skip threshold in pixels. Images with either dimension
// below it are treated as decorative icon content, not conversation media.
const MinDimension = 50

// Preset bundles the maximum dimensions and JPEG quality for one run.
// The zero value is not valid; use PresetByName.
type Preset struct {
	Name      string
	MaxWidth  int
	MaxHeight int
	Quality   int // JPEG quality, 1-100
}

// None reports whether this is the "no images" sentinel.
func (p Preset) None() bool {
	return p.Name == "none"
}

// Named presets. "none" disables embedding entirely.
var presets = map[string]Preset{
	"low":    {Name: "low", MaxWidth: 800, MaxHeight: 600, Quality: 60},
	"medium": {Name: "medium", MaxWidth: 1200, MaxHeight: 900, Quality: 75},
	"high":   {Name: "high", MaxWidth: 1600, MaxHeight: 1200, Quality: 90},
	"none":   {Name: "none"},
}

// PresetByName returns the preset for a name, case-insensitive.
func PresetByName(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(name)]
	return p, ok
}

// Dims is a target width and height in pixels.
type Dims struct {
	Width  int
	Height int
}

// ShouldSkip reports whether an image needs no processing: the source is
// already a data URI, or either dimension is below MinDimension.
// Unknown dimensions (zero or negative) do not trigger the size check.
func ShouldSkip(source string, width, height int) bool {
	if strings.HasPrefix(source, "data:") {
		return true
	}
	if width <= 0 || height <= 0 {
		return false
	}
	return width < MinDimension || height < MinDimension
}

// ScaleFactor returns min(maxWidth/width, maxHeight/height, 1).
// Applied uniformly to both axes; never upscales.
func ScaleFactor(width, height, maxWidth, maxHeight int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	factor := math.Min(
		float64(maxWidth)/float64(width),
		float64(maxHeight)/float64(height),
	)
	return math.Min(factor, 1)
}

// TargetDimensions computes the output size for an image under a preset.
// Returns false for the "none" sentinel or an unrecognized preset. Each axis
// rounds to the nearest integer independently, which can drift the aspect
// ratio by at most one pixel per axis.
func TargetDimensions(width, height int, preset Preset) (Dims, bool) {
	if preset.None() {
		return Dims{}, false
	}
	if _, known := presets[preset.Name]; !known {
		return Dims{}, false
	}
	factor := ScaleFactor(width, height, preset.MaxWidth, preset.MaxHeight)
	return Dims{
		Width:  int(math.Round(float64(width) * factor)),
		Height: int(math.Round(float64(height) * factor)),
	}, true
}
