package assemble

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-chat2html/internal/dateutil"
)

// FallbackName is used when a title sanitizes down to nothing.
const FallbackName = "conversation"

// unsafeRunes are rejected in filenames on common filesystems.
const unsafeRunes = `<>:"/\|?*`

// Filename builds the suggested filename: {yyyymmdd}-{sanitizedTitle}{ext}.
// The date is the conversation's creation date when known, else the export
// time. ext includes the dot, e.g. ".html".
func Filename(title string, date time.Time, ext string) string {
	return dateutil.Stamp(date) + "-" + SanitizeTitle(title) + ext
}

// SanitizeTitle makes a title safe for filenames: compatibility-normalize,
// replace control and unsafe punctuation runes with a hyphen, collapse
// repeats, and trim. Unicode letters, accents, and emoji pass through.
// An empty result falls back to FallbackName.
func SanitizeTitle(title string) string {
	normalized := norm.NFKC.String(title)

	var sb strings.Builder
	sb.Grow(len(normalized))
	for _, r := range normalized {
		if unicode.IsControl(r) || unicode.IsSpace(r) || strings.ContainsRune(unsafeRunes, r) {
			sb.WriteRune('-')
			continue
		}
		sb.WriteRune(r)
	}

	out := sb.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	out = strings.Trim(out, "-")
	if out == "" {
		return FallbackName
	}
	return out
}
