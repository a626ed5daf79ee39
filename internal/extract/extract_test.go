package extract_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alnah/go-chat2html/internal/extract"
)

// snapshot assembles a minimal conversation page around the given body.
func snapshot(head, body string) string {
	return `<!DOCTYPE html><html><head><title>Trip planning</title>` + head +
		`</head><body><main>` + body + `</main></body></html>`
}

const twoTurns = `<div data-message-author-role="user"><p>Where to?</p></div>` +
	`<div data-message-author-role="assistant"><p>Lisbon.</p></div>`

// ---------------------------------------------------------------------------
// TestParse - Container and turn discovery
// ---------------------------------------------------------------------------

func TestParseFindsTurnsInOrder(t *testing.T) {
	t.Parallel()

	doc, err := extract.Parse(snapshot("", twoTurns))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	turns := doc.Turns()
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
	if turns[0].Role != extract.RoleUser || turns[1].Role != extract.RoleAssistant {
		t.Errorf("roles = %v, %v; want user, assistant", turns[0].Role, turns[1].Role)
	}
	for i, turn := range turns {
		if turn.Index != i {
			t.Errorf("turns[%d].Index = %d", i, turn.Index)
		}
		if turn.FromParity {
			t.Errorf("turns[%d] used parity despite explicit marker", i)
		}
	}
}

func TestParseNoConversationContainer(t *testing.T) {
	t.Parallel()

	_, err := extract.Parse(`<!DOCTYPE html><html><body><p>not a chat</p></body></html>`)
	if !errors.Is(err, extract.ErrNoConversation) {
		t.Errorf("Parse = %v, want ErrNoConversation", err)
	}
}

func TestParseEmptyConversation(t *testing.T) {
	t.Parallel()

	_, err := extract.Parse(snapshot("", `<p>header only</p>`))
	if !errors.Is(err, extract.ErrNoTurns) {
		t.Errorf("Parse = %v, want ErrNoTurns", err)
	}
}

func TestParseConversationClassContainer(t *testing.T) {
	t.Parallel()

	markup := `<!DOCTYPE html><html><body><div class="conversation">` + twoTurns + `</div></body></html>`
	doc, err := extract.Parse(markup)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Turns()) != 2 {
		t.Errorf("len(turns) = %d, want 2", len(doc.Turns()))
	}
}

func TestParseNestedMarkersYieldOneTurn(t *testing.T) {
	t.Parallel()

	body := `<div data-message-author-role="assistant"><div data-message-author-role="assistant"><p>nested</p></div></div>`
	doc, err := extract.Parse(snapshot("", body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Turns()) != 1 {
		t.Errorf("len(turns) = %d, want 1 (outermost marker only)", len(doc.Turns()))
	}
}

// ---------------------------------------------------------------------------
// TestRoles - Explicit markers and parity fallback
// ---------------------------------------------------------------------------

func TestParseRoleParityFallback(t *testing.T) {
	t.Parallel()

	body := `<div class="conversation-turn"><p>a</p></div>` +
		`<div class="conversation-turn"><p>b</p></div>` +
		`<div class="conversation-turn"><p>c</p></div>`
	doc, err := extract.Parse(snapshot("", body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	turns := doc.Turns()
	if len(turns) != 3 {
		t.Fatalf("len(turns) = %d, want 3", len(turns))
	}
	wantRoles := []extract.Role{extract.RoleUser, extract.RoleAssistant, extract.RoleUser}
	for i, turn := range turns {
		if turn.Role != wantRoles[i] {
			t.Errorf("turns[%d].Role = %v, want %v", i, turn.Role, wantRoles[i])
		}
		if !turn.FromParity {
			t.Errorf("turns[%d].FromParity = false, want true", i)
		}
	}
}

// ---------------------------------------------------------------------------
// TestStreaming - In-progress generation signal
// ---------------------------------------------------------------------------

func TestParseStreamingSignal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want bool
	}{
		{
			name: "no signal",
			body: twoTurns,
			want: false,
		},
		{
			name: "streaming class",
			body: twoTurns + `<div class="result-streaming"><p>typing...</p></div>`,
			want: true,
		},
		{
			name: "streaming data attribute",
			body: `<div data-streaming="true">` + twoTurns + `</div>`,
			want: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := extract.Parse(snapshot("", tt.body))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if doc.Streaming() != tt.want {
				t.Errorf("Streaming() = %v, want %v", doc.Streaming(), tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMetadata - Title and creation date
// ---------------------------------------------------------------------------

func TestParseTitle(t *testing.T) {
	t.Parallel()

	doc, err := extract.Parse(snapshot("", twoTurns))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Title() != "Trip planning" {
		t.Errorf("Title() = %q, want %q", doc.Title(), "Trip planning")
	}
}

func TestParseCreatedDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		head   string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "meta created RFC3339",
			head:   `<meta name="created" content="2026-01-05T10:30:00Z">`,
			want:   time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "meta created date only",
			head:   `<meta name="created" content="2026-01-05">`,
			want:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "no meta",
			head:   "",
			wantOK: false,
		},
		{
			name:   "unparseable date",
			head:   `<meta name="created" content="sometime last week">`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := extract.Parse(snapshot(tt.head, twoTurns))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got, ok := doc.CreatedAt()
			if ok != tt.wantOK {
				t.Fatalf("CreatedAt() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("CreatedAt() = %v, want %v", got, tt.want)
			}
		})
	}
}
