// Package main implements flashcopy, a tmux popup for grabbing visible
// text: type a few characters, hit the label shown next to a match, and
// the text lands on the clipboard.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dl/flashcopy/internal/cli"
	"github.com/dl/flashcopy/internal/tmux"
)

// Version information (set by goreleaser)
var version = "dev"

func main() {
	var (
		debugMode    bool
		debugLogFile string
	)

	rootCmd := &cobra.Command{
		Use:   "flashcopy",
		Short: "Copy visible tmux pane text with two keystrokes",
		Long: `flashcopy opens a popup over the active tmux pane, indexes the visible
text, and lets you pick any match by typing part of it and pressing the
label shown next to it. The selection is copied to the system clipboard
and can optionally be pasted back into the pane.

Bind it in tmux.conf:

  bind-key f run-shell -b flashcopy

Configuration is read from @flash-copy-* tmux options.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := tmux.NewClient()
			cfg := cli.LoadFromTmux(context.Background(), client)
			if debugMode {
				cfg.DebugEnabled = true
			}
			if debugLogFile != "" {
				cfg.DebugLogFile = debugLogFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if code := cli.Run(cfg); code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&debugLogFile, "debug-log-file", "", "Debug log destination (default: XDG state dir)")

	runCfg := cli.Defaults()

	runCmd := &cobra.Command{
		Use:    "run",
		Short:  "Run the interactive search inside the popup",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCfg.DebugEnabled = debugMode
			runCfg.DebugLogFile = debugLogFile
			if err := runCfg.Validate(); err != nil {
				return err
			}
			if code := cli.RunSession(runCfg); code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	f := runCmd.Flags()
	f.StringVar(&runCfg.PaneID, "pane-id", "", "Source pane ID")
	f.StringVar(&runCfg.SessionID, "session", "", "Handoff buffer namespace")
	f.BoolVar(&runCfg.ReverseSearch, "reverse-search", runCfg.ReverseSearch, "Order matches bottom first")
	f.BoolVar(&runCfg.CaseSensitive, "case-sensitive", runCfg.CaseSensitive, "Match case sensitively")
	f.StringVar(&runCfg.WordSeparators, "word-separators", runCfg.WordSeparators, "Characters splitting words into copyable parts")
	f.StringVar(&runCfg.LabelCharacters, "label-characters", runCfg.LabelCharacters, "Label pool override")
	f.StringVar(&runCfg.PromptPlaceholder, "prompt-placeholder-text", runCfg.PromptPlaceholder, "Placeholder shown before typing")
	f.StringVar(&runCfg.HighlightColour, "highlight-colour", runCfg.HighlightColour, "SGR sequence for matched text")
	f.StringVar(&runCfg.LabelColour, "label-colour", runCfg.LabelColour, "SGR sequence for labels")
	f.StringVar(&runCfg.PromptPosition, "prompt-position", runCfg.PromptPosition, "Search bar position (top or bottom)")
	f.StringVar(&runCfg.PromptIndicator, "prompt-indicator", runCfg.PromptIndicator, "Prompt indicator text")
	f.StringVar(&runCfg.PromptColour, "prompt-colour", runCfg.PromptColour, "SGR sequence for the prompt")
	f.BoolVar(&runCfg.AutoPaste, "auto-paste", runCfg.AutoPaste, "Enable the ;/: paste modifier")
	f.IntVar(&runCfg.IdleTimeout, "idle-timeout", runCfg.IdleTimeout, "Seconds of inactivity before the popup closes")
	f.IntVar(&runCfg.IdleWarning, "idle-warning", runCfg.IdleWarning, "Seconds of countdown before the timeout")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}
