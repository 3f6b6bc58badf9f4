package ui

import (
	"strings"
	"testing"

	"github.com/dl/flashcopy/internal/ansi"
	"github.com/dl/flashcopy/internal/matchindex"
)

func testConfig() RenderConfig {
	return RenderConfig{
		HighlightSeq:    "\x1b[1;33m",
		LabelSeq:        "\x1b[1;32m",
		PromptSeq:       "\x1b[1m",
		PromptIndicator: ">",
		PromptPosition:  "bottom",
		Placeholder:     "search...",
	}
}

func newTestRenderer(content string) *Renderer {
	return NewRenderer(&strings.Builder{}, testConfig(), content,
		func() (int, int) { return 80, 24 })
}

func TestNewRenderer_DropsPromptLine(t *testing.T) {
	r := newTestRenderer("line one\nline two\n$ \n")
	plain := r.PlainLines()
	if len(plain) != 2 {
		t.Fatalf("got %d lines, want 2", len(plain))
	}
	if plain[1] != "line two" {
		t.Errorf("last kept line = %q, want %q", plain[1], "line two")
	}
}

func TestDimLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain line wrapped in dim",
			input: "hello",
			want:  "\x1b[2mhello\x1b[0m",
		},
		{
			name:  "reset re-applies dim",
			input: "a\x1b[0mb",
			want:  "\x1b[2ma\x1b[0m\x1b[2mb\x1b[0m",
		},
		{
			name:  "already dimmed keeps single prefix",
			input: "\x1b[2mhello",
			want:  "\x1b[2mhello\x1b[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dimLine(tt.input); got != tt.want {
				t.Errorf("dimLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOverlayLine_LabelReplacesFollowingChar(t *testing.T) {
	r := newTestRenderer("hello world\n$\n")
	idx := matchindex.Build("hello world", matchindex.Options{})
	occs := idx.Query("hell", matchindex.QueryOptions{})
	if len(occs) != 1 || occs[0].Label == 0 {
		t.Fatalf("unexpected occurrences: %+v", occs)
	}

	out := r.overlayLine("hello world", "hello world", occs)
	plain := ansi.Strip(out)

	// The character after the match ("o") is overwritten by the label, so
	// the visible line keeps its length.
	want := "hell" + string(occs[0].Label) + " world"
	if plain != want {
		t.Errorf("plain overlay = %q, want %q", plain, want)
	}
	if !strings.Contains(out, r.cfg.HighlightSeq+"hell") {
		t.Errorf("matched span not highlighted: %q", out)
	}
	if !strings.Contains(out, r.cfg.LabelSeq+string(occs[0].Label)) {
		t.Errorf("label not styled: %q", out)
	}
}

func TestOverlayLine_LabelAppendedAtLineEnd(t *testing.T) {
	r := newTestRenderer("word\n$\n")
	idx := matchindex.Build("word", matchindex.Options{})
	occs := idx.Query("word", matchindex.QueryOptions{})
	if len(occs) != 1 || occs[0].Label == 0 {
		t.Fatalf("unexpected occurrences: %+v", occs)
	}

	out := r.overlayLine("word", "word", occs)
	plain := ansi.Strip(out)
	if plain != "word"+string(occs[0].Label) {
		t.Errorf("plain overlay = %q, want label appended", plain)
	}
}

func TestOverlayLine_MultipleMatchesRightToLeft(t *testing.T) {
	line := "foo foo foo"
	r := newTestRenderer(line + "\n$\n")
	idx := matchindex.Build(line, matchindex.Options{})
	occs := idx.Query("fo", matchindex.QueryOptions{})
	if len(occs) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(occs))
	}

	out := r.overlayLine(line, line, occs)
	plain := ansi.Strip(out)

	// Every label lands on the "o" following its matched "fo"; columns of
	// all three matches stay aligned with the original text.
	for _, occ := range occs {
		wantAt := occ.Column + occ.MatchEnd
		if got := rune(plain[wantAt]); got != occ.Label {
			t.Errorf("label %q not at plain position %d: line %q", occ.Label, wantAt, plain)
		}
	}
	if len(plain) != len(line) {
		t.Errorf("visible length changed: %d != %d", len(plain), len(line))
	}
}

func TestSearchBar(t *testing.T) {
	r := newTestRenderer("x\n$\n")

	bar := r.searchBar("", 80, 0)
	if !strings.Contains(ansi.Strip(bar), "search...") {
		t.Errorf("empty query bar missing placeholder: %q", bar)
	}

	bar = r.searchBar("qry", 80, 0)
	stripped := ansi.Strip(bar)
	if !strings.HasPrefix(stripped, "> qry") {
		t.Errorf("bar = %q, want prompt and query", stripped)
	}

	bar = r.searchBar("qry", 80, 4)
	if !strings.Contains(ansi.Strip(bar), "Idle, terminating in 4s...") {
		t.Errorf("warning missing: %q", ansi.Strip(bar))
	}

	// Too narrow for the warning: bar stays bare.
	bar = r.searchBar("qry", 20, 4)
	if strings.Contains(ansi.Strip(bar), "Idle") {
		t.Errorf("warning should be dropped on narrow terminal: %q", bar)
	}
}

func TestRender_FrameContainsContentAndBar(t *testing.T) {
	var out strings.Builder
	cfg := testConfig()
	r := NewRenderer(&out, cfg, "alpha beta\ngamma\n$ \n", func() (int, int) { return 40, 10 })
	idx := matchindex.Build("alpha beta\ngamma", matchindex.Options{})

	r.Render("alpha", idx.Query("alpha", matchindex.QueryOptions{}), 0)
	frame := out.String()

	if !strings.Contains(frame, "\x1b[2J") {
		t.Error("frame missing clear sequence")
	}
	if !strings.Contains(frame, "gamma") {
		t.Error("frame missing content line")
	}
	if !strings.Contains(frame, cfg.HighlightSeq+"alpha") {
		t.Error("frame missing highlighted match")
	}
	if !strings.Contains(frame, "\x1b[1;9r") {
		t.Error("frame missing scroll region protecting the bottom bar")
	}
}
