package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dl/flashcopy/internal/ansi"
	"github.com/dl/flashcopy/internal/matchindex"
)

const (
	sgrReset = "\x1b[0m"
	sgrDim   = "\x1b[2m"
)

// Styles holds the lipgloss styles for the search bar chrome. Highlight,
// label, and prompt colours come from user config as raw SGR sequences and
// are applied verbatim.
type Styles struct {
	Placeholder lipgloss.Style
	Warning     lipgloss.Style
	DebugBadge  lipgloss.Style
}

// DefaultStyles creates the search bar styles.
func DefaultStyles() Styles {
	return Styles{
		Placeholder: lipgloss.NewStyle().Faint(true),
		Warning:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")), // yellow
		DebugBadge:  lipgloss.NewStyle().Faint(true),
	}
}

// RenderConfig carries the user-visible presentation settings.
type RenderConfig struct {
	HighlightSeq    string // raw SGR prefix for matched spans
	LabelSeq        string // raw SGR prefix for label characters
	PromptSeq       string // raw SGR prefix for the prompt indicator
	PromptIndicator string
	PromptPosition  string // "top" or "bottom"
	Placeholder     string
	DebugBadge      bool
}

// Renderer draws the captured pane with match highlighting, label overlay,
// and the search bar, using scroll regions to pin the bar in place.
type Renderer struct {
	out    io.Writer
	cfg    RenderConfig
	styles Styles
	size   func() (width, height int)
	lines  []string // styled capture lines, shell prompt line dropped
	plain  []string // same lines with escapes stripped
}

// NewRenderer prepares a renderer for one captured pane. The last captured
// line (the user's shell prompt) is dropped so the search bar replaces it.
func NewRenderer(out io.Writer, cfg RenderConfig, content string, size func() (int, int)) *Renderer {
	content = strings.TrimRight(content, "\n")
	lines := strings.Split(content, "\n")
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	plain := make([]string, len(lines))
	for i, line := range lines {
		plain[i] = ansi.Strip(line)
	}
	return &Renderer{
		out:    out,
		cfg:    cfg,
		styles: DefaultStyles(),
		size:   size,
		lines:  lines,
		plain:  plain,
	}
}

// PlainLines returns the escape-stripped capture lines the renderer shows.
func (r *Renderer) PlainLines() []string {
	return r.plain
}

// Render draws one full frame. warnRemaining > 0 shows the idle-timeout
// countdown in the bar.
func (r *Renderer) Render(query string, occs []matchindex.Occurrence, warnRemaining int) {
	width, height := r.size()
	var b strings.Builder

	b.WriteString("\x1b[2J\x1b[H") // clear screen, home

	available := height - 1 // one line reserved for the search bar
	switch r.cfg.PromptPosition {
	case "top":
		b.WriteString(r.searchBar(query, width, warnRemaining))
		b.WriteString("\n")
		fmt.Fprintf(&b, "\x1b[2;%dr", height) // protect line 1
		b.WriteString("\x1b[2;1H")
	default:
		fmt.Fprintf(&b, "\x1b[1;%dr", height-1) // protect bottom line
		b.WriteString("\x1b[1;1H")
	}

	lines := r.lines
	if len(lines) > available {
		lines = lines[:available]
	}
	for i, line := range lines {
		onLine := matchindex.OnLine(occs, i)
		display := line
		if query != "" {
			display = dimLine(display)
		}
		if len(onLine) > 0 {
			display = r.overlayLine(display, r.plain[i], onLine)
		}
		b.WriteString(display)
		if i < len(lines)-1 {
			b.WriteString("\r\n")
		}
	}

	cursorCol := ansi.VisibleWidth(r.cfg.PromptIndicator) + 2 + len(query)
	if r.cfg.PromptPosition == "top" {
		fmt.Fprintf(&b, "\x1b[1;%dH", cursorCol)
	} else {
		fmt.Fprintf(&b, "\x1b[%d;1H", height)
		b.WriteString(r.searchBar(query, width, warnRemaining))
		fmt.Fprintf(&b, "\x1b[%dG", cursorCol)
	}

	io.WriteString(r.out, b.String())
}

// Reset restores the scroll region and clears the screen on exit.
func (r *Renderer) Reset() {
	io.WriteString(r.out, "\x1b[r\x1b[2J\x1b[H")
}

// dimLine dims a styled line, re-applying dim after every SGR reset so
// coloured content stays dark.
func dimLine(line string) string {
	var b strings.Builder
	if !strings.HasPrefix(line, sgrDim) {
		b.WriteString(sgrDim)
	}
	b.WriteString(strings.ReplaceAll(line, sgrReset, sgrReset+sgrDim))
	if !strings.HasSuffix(line, sgrReset) {
		b.WriteString(sgrReset)
	}
	return b.String()
}

// overlayLine highlights each labeled occurrence's matched span and writes
// the label over the plain character immediately following it (or appends
// at end of line). Occurrences are processed right to left so earlier
// positions stay valid while the string grows.
func (r *Renderer) overlayLine(styled, plain string, onLine []matchindex.Occurrence) string {
	occs := make([]matchindex.Occurrence, len(onLine))
	copy(occs, onLine)
	sort.Slice(occs, func(i, j int) bool { return occs[i].Column > occs[j].Column })

	for _, occ := range occs {
		if occ.Label == 0 {
			continue
		}

		matchStart := occ.Column + occ.MatchStart
		matchEnd := occ.Column + occ.MatchEnd
		label := r.cfg.LabelSeq + string(occ.Label) + sgrReset

		// Label first: replacing the single character after the match keeps
		// the line from shifting; positions to the left are unaffected.
		if matchEnd < len(plain) {
			at := ansi.StyledPos(styled, matchEnd)
			skip := ansi.StyledPos(styled[at:], 1)
			styled = styled[:at] + label + styled[at+skip:]
		} else {
			at := ansi.StyledPos(styled, matchEnd)
			styled = styled[:at] + label + styled[at:]
		}

		hs := ansi.StyledPos(styled, matchStart)
		he := ansi.StyledPos(styled, matchEnd)
		highlighted := sgrReset + r.cfg.HighlightSeq + plain[matchStart:matchEnd] + sgrReset
		styled = styled[:hs] + highlighted + styled[he:]
	}
	return styled
}

// searchBar builds the prompt line: indicator, query or placeholder ghost
// text, and a right-aligned idle warning or debug badge when space allows.
func (r *Renderer) searchBar(query string, width, warnRemaining int) string {
	var b strings.Builder
	b.WriteString(r.cfg.PromptSeq)
	b.WriteString(r.cfg.PromptIndicator)
	b.WriteString(sgrReset)
	b.WriteString(" ")
	switch {
	case query != "":
		b.WriteString(query)
	case r.cfg.Placeholder != "":
		b.WriteString(r.styles.Placeholder.Render(r.cfg.Placeholder))
	}
	bar := b.String()
	baseWidth := ansi.VisibleWidth(bar)

	var badge string
	switch {
	case warnRemaining > 0:
		badge = r.styles.Warning.Render(fmt.Sprintf("Idle, terminating in %ds...", warnRemaining))
	case r.cfg.DebugBadge:
		badge = r.styles.DebugBadge.Render("!! DEBUG ON !!")
	default:
		return bar
	}

	badgeWidth := ansi.VisibleWidth(badge)
	if baseWidth+badgeWidth+3 >= width {
		return bar
	}
	padding := width - baseWidth - badgeWidth - 1
	return bar + strings.Repeat(" ", padding) + badge
}
