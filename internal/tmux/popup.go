package tmux

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
)

// PopupPlacement positions a popup so it exactly overlays a pane.
type PopupPlacement struct {
	X      int
	Y      int
	Width  int
	Height int
}

// PlacementFor computes the popup placement for a pane. tmux anchors popups
// at the bottom-left cell, so panes below the top edge need the row under
// the pane border.
func PlacementFor(g Geometry) PopupPlacement {
	y := g.Top
	if g.Top != 0 {
		y = g.Bottom + 1
	}
	return PopupPlacement{
		X:      g.Left,
		Y:      y,
		Width:  g.Width,
		Height: g.Height,
	}
}

// ExitPaste is the exit status the in-popup process uses to request that
// the selection be pasted back into the source pane.
const ExitPaste = 10

// DisplayPopup opens a borderless popup running command and blocks until
// it exits. The returned exitCode is the popup command's status; tmux
// propagates it through display-popup -E.
func (c *Client) DisplayPopup(ctx context.Context, p PopupPlacement, command []string) (exitCode int, err error) {
	args := []string{
		"display-popup", "-E", "-B",
		"-x", strconv.Itoa(p.X),
		"-y", strconv.Itoa(p.Y),
		"-w", strconv.Itoa(p.Width),
		"-h", strconv.Itoa(p.Height),
	}
	args = append(args, command...)

	// No timeout here: the popup stays open for as long as the user
	// searches. The session's own idle timeout bounds the wait.
	cmd := exec.CommandContext(ctx, c.bin, args...)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, err
	}
	return 0, nil
}
