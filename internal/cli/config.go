package cli

import (
	"context"
	"fmt"

	"github.com/dl/flashcopy/internal/tmux"
)

// Config holds all configuration for one flashcopy invocation. Values come
// from the tmux option store in the launcher and travel to the popup
// process as flags.
type Config struct {
	PaneID            string
	SessionID         string // namespaces the handoff buffers
	ReverseSearch     bool
	CaseSensitive     bool
	WordSeparators    string
	LabelCharacters   string
	PromptPlaceholder string
	HighlightColour   string
	LabelColour       string
	PromptPosition    string
	PromptIndicator   string
	PromptColour      string
	AutoPaste         bool
	DebugEnabled      bool
	DebugLogFile      string
	IdleTimeout       int // seconds
	IdleWarning       int // seconds before timeout
}

// Defaults returns the built-in configuration, matching the plugin's
// documented option defaults.
func Defaults() Config {
	return Config{
		ReverseSearch:     true,
		PromptPlaceholder: "search...",
		HighlightColour:   "\x1b[1;33m",
		LabelColour:       "\x1b[1;32m",
		PromptPosition:    "bottom",
		PromptIndicator:   ">",
		PromptColour:      "\x1b[1m",
		AutoPaste:         true,
		IdleTimeout:       15,
		IdleWarning:       5,
	}
}

// Validate checks that the config is usable and returns an error if not.
func (c *Config) Validate() error {
	if c.PromptPosition != "top" && c.PromptPosition != "bottom" {
		return fmt.Errorf("invalid prompt position %q (want top or bottom)", c.PromptPosition)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("invalid idle timeout: %d", c.IdleTimeout)
	}
	if c.IdleWarning < 0 {
		return fmt.Errorf("invalid idle warning: %d", c.IdleWarning)
	}
	return nil
}

// LoadFromTmux reads the @flash-copy-* options from the tmux server,
// falling back to Defaults for anything unset. Option read failures
// degrade to defaults rather than erroring.
func LoadFromTmux(ctx context.Context, client *tmux.Client) Config {
	def := Defaults()
	global := client.GlobalOptions(ctx)
	window := client.WindowOptions(ctx)

	return Config{
		ReverseSearch:     global.Bool("@flash-copy-reverse-search", def.ReverseSearch),
		CaseSensitive:     global.Bool("@flash-copy-case-sensitive", def.CaseSensitive),
		WordSeparators:    tmux.WordSeparators(global, window),
		LabelCharacters:   global.Str("@flash-copy-label-characters", ""),
		PromptPlaceholder: global.Str("@flash-copy-prompt-placeholder-text", def.PromptPlaceholder),
		HighlightColour:   global.Str("@flash-copy-highlight-colour", def.HighlightColour),
		LabelColour:       global.Str("@flash-copy-label-colour", def.LabelColour),
		PromptPosition:    global.Choice("@flash-copy-prompt-position", []string{"top", "bottom"}, def.PromptPosition),
		PromptIndicator:   global.Str("@flash-copy-prompt-indicator", def.PromptIndicator),
		PromptColour:      global.Str("@flash-copy-prompt-colour", def.PromptColour),
		AutoPaste:         global.Bool("@flash-copy-auto-paste", def.AutoPaste),
		DebugEnabled:      global.Bool("@flash-copy-debug", def.DebugEnabled),
		DebugLogFile:      global.Str("@flash-copy-debug-log-file", ""),
		IdleTimeout:       global.Int("@flash-copy-idle-timeout", def.IdleTimeout),
		IdleWarning:       global.Int("@flash-copy-idle-warning", def.IdleWarning),
	}
}

// contentBuffer and resultBuffer name the tmux buffers used to hand the
// captured pane to the popup process and the selection back.
func contentBuffer(sessionID string) string {
	return "flashcopy-content-" + sessionID
}

func resultBuffer(sessionID string) string {
	return "flashcopy-result-" + sessionID
}
