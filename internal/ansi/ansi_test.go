package ansi

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"color codes removed", "\x1b[1;33mhello\x1b[0m world", "hello world"},
		{"empty", "", ""},
		{"only escapes", "\x1b[2m\x1b[0m", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.input); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStyledPos(t *testing.T) {
	tests := []struct {
		name     string
		styled   string
		plainPos int
		want     int
	}{
		{"no escapes", "hello", 3, 3},
		{"position zero stays before leading escape", "\x1b[1mhello", 0, 0},
		{"leading escape skipped", "\x1b[1mhello", 1, 5},
		{"escape mid string", "he\x1b[31mllo", 3, 8},
		{"position zero", "hello", 0, 0},
		{"past end clamps", "hi", 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StyledPos(tt.styled, tt.plainPos); got != tt.want {
				t.Errorf("StyledPos(%q, %d) = %d, want %d", tt.styled, tt.plainPos, got, tt.want)
			}
		})
	}
}

func TestVisibleWidth(t *testing.T) {
	if got := VisibleWidth("\x1b[1;32m> \x1b[0mquery"); got != 7 {
		t.Errorf("VisibleWidth = %d, want 7", got)
	}
}
