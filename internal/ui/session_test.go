package ui

import "testing"

func TestDeleteWordBack(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"empty", "", ""},
		{"single word", "hello", ""},
		{"two words keeps first", "hello world", "hello "},
		{"trailing space stripped first", "hello world  ", "hello "},
		{"hyphenated deletes last segment", "foo-bar", "foo-"},
		{"trailing delimiters skipped with word", "foo.bar...", "foo."},
		{"path segments", "a/b/c", "a/b/"},
		{"only delimiters", "...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deleteWordBack(tt.query); got != tt.want {
				t.Errorf("deleteWordBack(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestTrimLastRune(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"abc", "ab"},
		{"a", ""},
		{"héllo", "héll"},
	}

	for _, tt := range tests {
		if got := trimLastRune(tt.input); got != tt.want {
			t.Errorf("trimLastRune(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
