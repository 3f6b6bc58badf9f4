// Package ui runs the interactive search session inside the popup: it owns
// the raw-mode key loop, query editing, idle timeout, and rendering, and
// delegates all matching to the matchindex core.
package ui

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/dl/flashcopy/internal/matchindex"
)

// wordDelimiters is the boundary set for Ctrl-W word deletion in the query.
const wordDelimiters = " \t-_.,;:!?/\\()[]{}"

// Params configure one interactive session.
type Params struct {
	Index        *matchindex.Index
	ReverseOrder bool
	LabelPool    string
	AutoPaste    bool // enables the ;/: paste modifier
	IdleTimeout  time.Duration
	IdleWarning  time.Duration
	Renderer     *Renderer
	Logger       *log.Logger
}

// Result is the outcome of a session. Selected is false when the user
// cancelled or the idle timeout fired.
type Result struct {
	Text     string
	Paste    bool
	Selected bool
}

// Session drives the interactive search loop.
type Session struct {
	p        Params
	query    string
	matches  []matchindex.Occurrence
	modifier bool // auto-paste modifier armed
}

// NewSession creates a session.
func NewSession(p Params) *Session {
	return &Session{p: p}
}

// Run reads keys until a selection, cancellation, or idle timeout. The
// terminal is put into raw mode for the duration and restored on return.
func (s *Session) Run() (Result, error) {
	reader, err := openKeyReader()
	if err != nil {
		return Result{}, err
	}
	defer reader.Close()
	defer s.p.Renderer.Reset()

	lastInput := time.Now()
	warningShown := false

	s.p.Renderer.Render(s.query, s.matches, 0)

	for {
		elapsed := time.Since(lastInput)
		if elapsed >= s.p.IdleTimeout {
			s.p.Logger.Debug("idle timeout, cancelling", "timeout", s.p.IdleTimeout)
			return Result{}, nil
		}

		remaining := 0
		if s.p.IdleWarning < s.p.IdleTimeout && elapsed >= s.p.IdleTimeout-s.p.IdleWarning {
			warningShown = true
			remaining = int((s.p.IdleTimeout - elapsed + time.Second - 1) / time.Second)
			s.p.Renderer.Render(s.query, s.matches, remaining)
		}

		key, err := reader.Next()
		if err != nil {
			s.p.Logger.Debug("input error, cancelling", "err", err)
			return Result{}, nil
		}
		if key.Kind == KeyNone {
			continue
		}

		lastInput = time.Now()
		if warningShown {
			warningShown = false
			s.p.Renderer.Render(s.query, s.matches, 0)
		}

		switch key.Kind {
		case KeyCtrlC:
			s.p.Logger.Debug("cancelled", "key", "ctrl-c")
			return Result{}, nil

		case KeyEscape:
			if s.modifier {
				// An armed paste modifier makes ESC too easy to hit by
				// accident; ignore it.
				continue
			}
			s.p.Logger.Debug("cancelled", "key", "esc")
			return Result{}, nil

		case KeyCtrlU:
			s.modifier = false
			s.update("")

		case KeyCtrlW:
			s.modifier = false
			s.update(deleteWordBack(s.query))

		case KeyBackspace:
			s.modifier = false
			if s.query != "" {
				s.update(trimLastRune(s.query))
			}

		case KeyEnter:
			if len(s.matches) > 0 {
				head := s.matches[0]
				s.p.Logger.Debug("selected head match", "text", head.Text, "paste", s.modifier)
				return Result{Text: head.CopyText, Paste: s.modifier, Selected: true}, nil
			}

		case KeyRune:
			if (key.Rune == ';' || key.Rune == ':') && s.p.AutoPaste {
				s.modifier = true
				continue
			}
			if !unicode.IsPrint(key.Rune) {
				continue
			}
			// Labels only once a query exists, so the very first keystroke
			// is always a query character.
			if s.query != "" && len(s.matches) > 0 {
				if occ, ok := matchindex.LookupByLabel(s.matches, key.Rune); ok {
					s.p.Logger.Debug("selected by label",
						"label", string(key.Rune), "text", occ.Text, "paste", s.modifier)
					return Result{Text: occ.CopyText, Paste: s.modifier, Selected: true}, nil
				}
			}
			s.update(s.query + string(key.Rune))
		}
	}
}

// update re-evaluates the query against the index and redraws.
func (s *Session) update(query string) {
	s.query = query
	s.matches = s.p.Index.Query(query, matchindex.QueryOptions{
		ReverseOrder: s.p.ReverseOrder,
		LabelPool:    s.p.LabelPool,
	})
	s.p.Logger.Debug("query", "text", query, "matches", len(s.matches))
	s.p.Renderer.Render(s.query, s.matches, 0)
}

// deleteWordBack removes the trailing word from query, treating the
// delimiter set as word boundaries.
func deleteWordBack(query string) string {
	q := strings.TrimRight(query, " \t")
	if q == "" {
		return ""
	}
	i := len(q) - 1
	for i >= 0 && strings.ContainsRune(wordDelimiters, rune(q[i])) {
		i--
	}
	for i >= 0 && !strings.ContainsRune(wordDelimiters, rune(q[i])) {
		i--
	}
	return q[:i+1]
}

func trimLastRune(s string) string {
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
