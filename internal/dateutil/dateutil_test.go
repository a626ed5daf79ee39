package dateutil_test

import (
	"testing"
	"time"

	"github.com/alnah/go-chat2html/internal/dateutil"
)

func TestStamp(t *testing.T) {
	t.Parallel()

	got := dateutil.Stamp(time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC))
	if got != "20260314" {
		t.Errorf("Stamp = %q, want 20260314", got)
	}
}

func TestParseDocDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "RFC3339",
			value:  "2026-01-05T10:30:00Z",
			want:   time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "date only",
			value:  "2026-01-05",
			want:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "long form",
			value:  "January 5, 2026",
			want:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			value:  "  2026-01-05  ",
			want:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "empty",
			value:  "",
			wantOK: false,
		},
		{
			name:   "prose",
			value:  "sometime last week",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := dateutil.ParseDocDate(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("ParseDocDate(%q) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDocDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
