// Package dateutil provides date parsing and stamping utilities.
package dateutil

import (
	"strings"
	"time"
)

// StampLayout is the compact date form used in suggested filenames.
const StampLayout = "20060102"

// docDateLayouts are the snapshot date formats tried in order. Snapshot
// tools disagree on precision; the date part is all the filename needs.
var docDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Stamp formats a time as yyyymmdd.
func Stamp(t time.Time) string {
	return t.Format(StampLayout)
}

// ParseDocDate parses a document date string, trying known snapshot layouts.
// Returns false when the value matches none of them.
func ParseDocDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range docDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
