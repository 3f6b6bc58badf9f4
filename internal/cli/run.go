package cli

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/dl/flashcopy/internal/ansi"
	"github.com/dl/flashcopy/internal/clipboard"
	"github.com/dl/flashcopy/internal/logging"
	"github.com/dl/flashcopy/internal/matchindex"
	"github.com/dl/flashcopy/internal/tmux"
	"github.com/dl/flashcopy/internal/ui"
)

// Run is the launcher path, invoked from a tmux key binding: capture the
// pane, open the popup running this binary's run subcommand, then copy the
// selection the popup hands back.
// Returns exit code: 0 = done or cancelled, 2 = error.
func Run(cfg Config) int {
	logger, closer := logging.NewDebugLogger(cfg.DebugEnabled, cfg.DebugLogFile)
	if closer != nil {
		defer closer.Close()
	}
	errlog := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

	if !tmux.InsideTmux() {
		errlog.Error("not inside a tmux session")
		return 2
	}

	ctx := context.Background()
	client := tmux.NewClient()

	paneID := cfg.PaneID
	if paneID == "" {
		id, err := client.CurrentPaneID(ctx)
		if err != nil {
			errlog.Error("cannot determine active pane", "err", err)
			return 2
		}
		paneID = id
	}
	cfg.PaneID = paneID
	cfg.SessionID = uuid.NewString()
	logger.Debug("session start", "pane", paneID, "session", cfg.SessionID)

	content, err := client.CapturePane(ctx, paneID)
	if err != nil {
		errlog.Error("pane capture failed", "err", err)
		return 2
	}

	// Hand the capture to the popup process through a buffer so it does not
	// re-capture a pane now covered by the popup itself.
	if err := client.SetBuffer(ctx, contentBuffer(cfg.SessionID), content); err != nil {
		logger.Debug("content buffer write failed, popup will re-capture", "err", err)
	}
	defer client.DeleteBuffer(ctx, contentBuffer(cfg.SessionID))
	defer client.DeleteBuffer(ctx, resultBuffer(cfg.SessionID))

	placement := popupPlacement(ctx, client, paneID)

	exe, err := os.Executable()
	if err != nil {
		errlog.Error("cannot locate own binary", "err", err)
		return 2
	}

	exitCode, err := client.DisplayPopup(ctx, placement, sessionCommand(exe, cfg))
	if err != nil {
		errlog.Error("popup failed", "err", err)
		return 2
	}

	result, err := client.ShowBuffer(ctx, resultBuffer(cfg.SessionID))
	if err != nil {
		logger.Debug("no result buffer, treating as cancelled", "err", err)
		return 0
	}
	result = strings.TrimRight(result, "\n")
	if result == "" {
		logger.Debug("search cancelled")
		return 0
	}

	paste := cfg.AutoPaste && exitCode == tmux.ExitPaste
	copier := clipboard.New(client, logger)
	if err := copier.CopyAndPaste(ctx, result, paneID, paste); err != nil {
		errlog.Error("clipboard copy failed", "err", err)
		return 2
	}
	logger.Debug("copied selection", "length", len(result), "paste", paste)
	return 0
}

// RunSession is the in-popup path: rebuild state from flags, run the
// interactive search, and hand the selection back through the result
// buffer. The exit code carries the paste request to the launcher.
func RunSession(cfg Config) int {
	logger, closer := logging.NewDebugLogger(cfg.DebugEnabled, cfg.DebugLogFile)
	if closer != nil {
		defer closer.Close()
	}

	ctx := context.Background()
	client := tmux.NewClient()

	content, err := client.ShowBuffer(ctx, contentBuffer(cfg.SessionID))
	if err != nil || content == "" {
		logger.Debug("content buffer unavailable, re-capturing", "err", err)
		content, err = client.CapturePane(ctx, cfg.PaneID)
		if err != nil {
			logger.Debug("pane capture failed", "err", err)
			return 1
		}
	}

	index := matchindex.Build(ansi.Strip(content), matchindex.Options{
		CaseSensitive:  cfg.CaseSensitive,
		WordSeparators: cfg.WordSeparators,
	})

	renderer := ui.NewRenderer(os.Stderr, ui.RenderConfig{
		HighlightSeq:    cfg.HighlightColour,
		LabelSeq:        cfg.LabelColour,
		PromptSeq:       cfg.PromptColour,
		PromptIndicator: cfg.PromptIndicator,
		PromptPosition:  cfg.PromptPosition,
		Placeholder:     cfg.PromptPlaceholder,
		DebugBadge:      cfg.DebugEnabled,
	}, content, terminalSize)

	session := ui.NewSession(ui.Params{
		Index:        index,
		ReverseOrder: cfg.ReverseSearch,
		LabelPool:    cfg.LabelCharacters,
		AutoPaste:    cfg.AutoPaste,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
		IdleWarning:  time.Duration(cfg.IdleWarning) * time.Second,
		Renderer:     renderer,
		Logger:       logger,
	})

	result, err := session.Run()
	if err != nil {
		logger.Debug("session error", "err", err)
		result = ui.Result{}
	}

	// Always write the result buffer, empty on cancel, so the launcher can
	// tell completion from a popup that never started.
	if err := client.SetBuffer(ctx, resultBuffer(cfg.SessionID), result.Text); err != nil {
		logger.Debug("result buffer write failed", "err", err)
		return 1
	}

	if result.Selected && result.Paste {
		return tmux.ExitPaste
	}
	return 0
}

// popupPlacement overlays the popup on the source pane, degrading to the
// full window and then to a fixed size when geometry is unavailable.
func popupPlacement(ctx context.Context, client *tmux.Client, paneID string) tmux.PopupPlacement {
	if geo, err := client.PaneGeometry(ctx, paneID); err == nil {
		return tmux.PlacementFor(geo)
	}
	if w, h, err := client.WindowSize(ctx); err == nil {
		return tmux.PopupPlacement{Width: w, Height: h}
	}
	return tmux.PopupPlacement{Width: 160, Height: 40}
}

// sessionCommand builds the argv for the in-popup process, forwarding the
// resolved config as flags.
func sessionCommand(exe string, cfg Config) []string {
	return []string{
		exe, "run",
		"--pane-id", cfg.PaneID,
		"--session", cfg.SessionID,
		"--reverse-search=" + strconv.FormatBool(cfg.ReverseSearch),
		"--case-sensitive=" + strconv.FormatBool(cfg.CaseSensitive),
		"--word-separators", cfg.WordSeparators,
		"--label-characters", cfg.LabelCharacters,
		"--prompt-placeholder-text", cfg.PromptPlaceholder,
		"--highlight-colour", cfg.HighlightColour,
		"--label-colour", cfg.LabelColour,
		"--prompt-position", cfg.PromptPosition,
		"--prompt-indicator", cfg.PromptIndicator,
		"--prompt-colour", cfg.PromptColour,
		"--auto-paste=" + strconv.FormatBool(cfg.AutoPaste),
		"--debug=" + strconv.FormatBool(cfg.DebugEnabled),
		"--debug-log-file", cfg.DebugLogFile,
		"--idle-timeout", strconv.Itoa(cfg.IdleTimeout),
		"--idle-warning", strconv.Itoa(cfg.IdleWarning),
	}
}

// terminalSize reads the popup terminal's size, with the original tool's
// fallback dimensions.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return 80, 40
}
