// Package ansi provides helpers for working with SGR-styled pane captures:
// stripping escape sequences for searching, and mapping plain-text byte
// positions back into the styled string for overlay rendering.
package ansi

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Strip removes all ANSI escape sequences from s.
func Strip(s string) string {
	return xansi.Strip(s)
}

// VisibleWidth returns the display cell width of s, ignoring escape
// sequences.
func VisibleWidth(s string) int {
	return xansi.StringWidth(s)
}

// HasEscapes reports whether s contains an ANSI escape sequence.
func HasEscapes(s string) bool {
	return strings.ContainsRune(s, '\x1b')
}

// StyledPos maps a byte position in the plain (stripped) form of styled to
// the corresponding byte position in styled itself. Escape sequences are
// skipped; a plainPos past the end of the plain text maps to len(styled)
// minus any trailing escape sequences already consumed.
func StyledPos(styled string, plainPos int) int {
	si := 0
	pi := 0
	for pi < plainPos && si < len(styled) {
		if styled[si] == '\x1b' {
			end := strings.IndexByte(styled[si:], 'm')
			if end < 0 {
				break
			}
			si += end + 1
			continue
		}
		si++
		pi++
	}
	return si
}
