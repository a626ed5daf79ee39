package assemble

import "strings"

// Palette CSS per theme. "auto" carries both palettes behind a
// prefers-color-scheme media query.
const (
	baseCSS = `body {
  font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
  line-height: 1.6;
  max-width: 48rem;
  margin: 0 auto;
  padding: 1rem;
}
.turn { padding: 0.75rem 1rem; margin: 0.75rem 0; border-radius: 0.5rem; }
.turn img { max-width: 100%; height: auto; }
.turn pre { overflow-x: auto; padding: 0.75rem; border-radius: 0.375rem; }
.turn table { border-collapse: collapse; }
.turn th, .turn td { border: 1px solid currentColor; padding: 0.25rem 0.5rem; }
.c2h-image-fallback { font-style: italic; }
.c2h-image-omitted { opacity: 0.7; }
`

	lightCSS = `body { background: #ffffff; color: #1a1a1a; }
.turn-user { background: #f0f4f9; }
.turn-assistant { background: #f7f7f8; }
.turn pre { background: #f0f0f0; }
a { color: #1a56db; }
`

	darkCSS = `body { background: #1e1e20; color: #ececec; }
.turn-user { background: #2a2b32; }
.turn-assistant { background: #343541; }
.turn pre { background: #0d1117; }
a { color: #7ab7ff; }
`
)

// themeCSS builds the style block body for a theme. Unknown themes fall
// back to auto.
func themeCSS(theme string) string {
	switch theme {
	case "light":
		return baseCSS + lightCSS
	case "dark":
		return baseCSS + darkCSS
	default:
		return baseCSS +
			lightCSS +
			"@media (prefers-color-scheme: dark) {\n" + scoped(darkCSS) + "}\n"
	}
}

// scoped indents a palette for nesting inside a media query.
func scoped(css string) string {
	return "  " + strings.ReplaceAll(strings.TrimSuffix(css, "\n"), "\n", "\n  ") + "\n"
}
