package tmux

import "testing"

func TestParseOptionLines(t *testing.T) {
	out := "@flash-copy-debug off\n" +
		"@flash-copy-prompt-colour \"\\033[1m\"\n" +
		"status on\n" +
		"\n" +
		"malformed\n"

	opts := parseOptionLines(out)

	if got := opts["@flash-copy-debug"]; got != "off" {
		t.Errorf("debug = %q, want %q", got, "off")
	}
	if got := opts["@flash-copy-prompt-colour"]; got != "\x1b[1m" {
		t.Errorf("prompt-colour = %q, want escape-decoded value", got)
	}
	if got := opts["status"]; got != "on" {
		t.Errorf("status = %q, want %q", got, "on")
	}
	if _, ok := opts["malformed"]; ok {
		t.Error("malformed line should be skipped")
	}
}

func TestUnquoteValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unquoted passthrough", "plain", "plain"},
		{"quoted plain", `"plain"`, "plain"},
		{"octal escape decoded", `"\033[1;33m"`, "\x1b[1;33m"},
		{"lone quote", `"`, `"`},
		{"empty", "", ""},
		{"unterminated keeps raw content", `"abc`, `"abc`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnquoteValue(tt.input); got != tt.want {
				t.Errorf("UnquoteValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "yes", "ON", "True"} {
		if !ParseBool(v) {
			t.Errorf("ParseBool(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"off", "false", "0", "no", ""} {
		if ParseBool(v) {
			t.Errorf("ParseBool(%q) = true, want false", v)
		}
	}
}

func TestOptionSetAccessors(t *testing.T) {
	opts := OptionSet{
		"flag":     "on",
		"count":    "42",
		"badcount": "x",
		"place":    "TOP",
		"empty":    "",
	}

	if !opts.Bool("flag", false) {
		t.Error("Bool(flag) = false")
	}
	if opts.Bool("missing", false) {
		t.Error("Bool(missing) should keep default")
	}
	if got := opts.Int("count", 0); got != 42 {
		t.Errorf("Int(count) = %d, want 42", got)
	}
	if got := opts.Int("badcount", 7); got != 7 {
		t.Errorf("Int(badcount) = %d, want default 7", got)
	}
	if got := opts.Str("empty", "def"); got != "def" {
		t.Errorf("Str(empty) = %q, want default", got)
	}
	if got := opts.Choice("place", []string{"top", "bottom"}, "bottom"); got != "top" {
		t.Errorf("Choice(place) = %q, want %q", got, "top")
	}
	if got := opts.Choice("flag", []string{"top", "bottom"}, "bottom"); got != "bottom" {
		t.Errorf("Choice(flag) = %q, want default", got)
	}
}

func TestWordSeparators(t *testing.T) {
	tests := []struct {
		name   string
		global OptionSet
		window OptionSet
		want   string
	}{
		{
			name:   "override wins",
			global: OptionSet{"@flash-copy-word-separators": "-_"},
			window: OptionSet{"word-separators": " "},
			want:   "-_",
		},
		{
			name:   "window option fallback",
			global: OptionSet{},
			window: OptionSet{"word-separators": " -"},
			want:   " -",
		},
		{
			name:   "neither set",
			global: OptionSet{},
			window: OptionSet{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordSeparators(tt.global, tt.window); got != tt.want {
				t.Errorf("WordSeparators = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlacementFor(t *testing.T) {
	tests := []struct {
		name string
		geo  Geometry
		want PopupPlacement
	}{
		{
			name: "top edge pane anchors at its top",
			geo:  Geometry{Left: 0, Top: 0, Bottom: 19, Width: 80, Height: 20},
			want: PopupPlacement{X: 0, Y: 0, Width: 80, Height: 20},
		},
		{
			name: "lower pane anchors below its border",
			geo:  Geometry{Left: 40, Top: 21, Bottom: 40, Width: 80, Height: 20},
			want: PopupPlacement{X: 40, Y: 41, Width: 80, Height: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlacementFor(tt.geo); got != tt.want {
				t.Errorf("PlacementFor = %+v, want %+v", got, tt.want)
			}
		})
	}
}
