// Package clipboard places selected text on the system clipboard from
// inside a tmux session, trying OSC52 first and native tools as fallbacks.
package clipboard

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/log"

	"github.com/dl/flashcopy/internal/tmux"
)

const toolTimeout = 5 * time.Second

// Copier copies text to the system clipboard and optionally pastes it back
// into the originating pane.
type Copier struct {
	tmux   *tmux.Client
	logger *log.Logger
}

// New creates a Copier. logger must not be nil; pass a discard logger to
// silence it.
func New(t *tmux.Client, logger *log.Logger) *Copier {
	return &Copier{tmux: t, logger: logger}
}

// Copy places text on the clipboard. Methods are tried in order: tmux
// set-buffer -w (OSC52 passthrough, tmux 3.2+), a direct OSC52 write to the
// controlling terminal, the platform tool (pbcopy, xclip, xsel), and as a
// last resort a plain tmux buffer usable only for pasting within tmux.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if !tmux.InsideTmux() {
		return errors.New("clipboard: not inside tmux")
	}

	if err := c.tmux.SetBufferToClipboard(ctx, text); err == nil {
		c.logger.Debug("clipboard copy", "method", "tmux-osc52")
		return nil
	}

	if err := writeOSC52(text); err == nil {
		c.logger.Debug("clipboard copy", "method", "osc52-direct")
		return nil
	}

	if tool := platformTool(); tool != nil {
		if err := runWithInput(ctx, tool, text); err == nil {
			c.logger.Debug("clipboard copy", "method", tool[0])
			return nil
		}
	}

	if err := c.tmux.SetBuffer(ctx, "flashcopy", text); err == nil {
		c.logger.Debug("clipboard copy", "method", "tmux-buffer")
		return nil
	}

	c.logger.Warn("clipboard copy failed, all methods exhausted")
	return errors.New("clipboard: no copy method available")
}

// CopyAndPaste copies text and, when autoPaste is set, re-injects it into
// the source pane via a scratch buffer. Paste failures are logged and
// swallowed; only the copy result is reported.
func (c *Copier) CopyAndPaste(ctx context.Context, text, paneID string, autoPaste bool) error {
	if err := c.Copy(ctx, text); err != nil {
		return err
	}

	if autoPaste && paneID != "" {
		const buf = "flashcopy-paste"
		if err := c.tmux.SetBuffer(ctx, buf, text); err != nil {
			c.logger.Warn("auto-paste buffer write failed", "err", err)
			return nil
		}
		if err := c.tmux.PasteBuffer(ctx, buf, paneID); err != nil {
			c.logger.Warn("auto-paste failed", "pane", paneID, "err", err)
			return nil
		}
		c.tmux.DeleteBuffer(ctx, buf)
		c.logger.Debug("auto-paste", "pane", paneID)
	}
	return nil
}

// writeOSC52 emits an OSC52 sequence on the controlling terminal, wrapped
// for tmux passthrough.
func writeOSC52(text string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer tty.Close()

	seq := osc52.New(text).Mode(osc52.TmuxMode)
	_, err = seq.WriteTo(tty)
	return err
}

// platformTool returns the native clipboard command for this OS, or nil.
func platformTool() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"pbcopy"}
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return []string{"xclip", "-selection", "clipboard"}
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return []string{"xsel", "--clipboard", "--input"}
		}
	}
	return nil
}

func runWithInput(ctx context.Context, argv []string, input string) error {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(input)
	return cmd.Run()
}
