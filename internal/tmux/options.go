package tmux

import (
	"context"
	"strconv"
	"strings"
)

// OptionSet is a parsed snapshot of a tmux option scope (global or window).
type OptionSet map[string]string

// GlobalOptions batch-reads all global options in one server round trip.
func (c *Client) GlobalOptions(ctx context.Context) OptionSet {
	out, err := c.output(ctx, "show-options", "-g")
	if err != nil {
		return OptionSet{}
	}
	return parseOptionLines(out)
}

// WindowOptions batch-reads all global window options.
func (c *Client) WindowOptions(ctx context.Context) OptionSet {
	out, err := c.output(ctx, "show-window-option", "-g")
	if err != nil {
		return OptionSet{}
	}
	return parseOptionLines(out)
}

// parseOptionLines parses "name value" lines, decoding quoted values.
func parseOptionLines(out string) OptionSet {
	opts := make(OptionSet)
	for _, line := range strings.Split(out, "\n") {
		name, value, found := strings.Cut(line, " ")
		if !found || name == "" {
			continue
		}
		opts[name] = UnquoteValue(strings.TrimSpace(value))
	}
	return opts
}

// UnquoteValue strips surrounding double quotes from a tmux option value
// and decodes backslash escapes (tmux quotes values containing escape
// sequences, e.g. "\033[1m"). Values that fail to decode keep their raw
// content with only the quotes removed.
func UnquoteValue(s string) string {
	if len(s) < 2 || !strings.HasPrefix(s, `"`) || !strings.HasSuffix(s, `"`) {
		return s
	}
	if dec, err := strconv.Unquote(s); err == nil {
		return dec
	}
	return s[1 : len(s)-1]
}

// ParseBool interprets a tmux-style boolean option value.
func ParseBool(s string) bool {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Bool returns a boolean option, or def when unset.
func (o OptionSet) Bool(name string, def bool) bool {
	v, ok := o[name]
	if !ok || v == "" {
		return def
	}
	return ParseBool(v)
}

// Str returns a string option, or def when unset.
func (o OptionSet) Str(name, def string) string {
	v, ok := o[name]
	if !ok || v == "" {
		return def
	}
	return v
}

// Int returns an integer option, or def when unset or unparseable.
func (o OptionSet) Int(name string, def int) int {
	v, ok := o[name]
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Choice returns the option value when it matches one of choices
// case-insensitively (in the choice's original case), or def otherwise.
func (o OptionSet) Choice(name string, choices []string, def string) string {
	v, ok := o[name]
	if !ok || v == "" {
		return def
	}
	for _, choice := range choices {
		if strings.EqualFold(choice, v) {
			return choice
		}
	}
	return def
}

// WordSeparators resolves the separator set used for copy-text extraction.
// A @flash-copy-word-separators override wins; otherwise the tmux
// word-separators window option applies. Empty means no separators.
func WordSeparators(global, window OptionSet) string {
	if v := global.Str("@flash-copy-word-separators", ""); v != "" {
		return v
	}
	return window.Str("word-separators", "")
}
