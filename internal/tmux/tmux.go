// Package tmux drives the host multiplexer through its CLI: pane capture,
// geometry, option reads, buffers, paste, and popup placement.
package tmux

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// commandTimeout bounds every tmux invocation so a wedged server cannot
// hang the interactive session.
const commandTimeout = 5 * time.Second

// Client runs tmux commands. The binary path can be overridden with the
// FLASHCOPY_TMUX environment variable.
type Client struct {
	bin string
}

// NewClient creates a tmux client.
func NewClient() *Client {
	bin := os.Getenv("FLASHCOPY_TMUX")
	if bin == "" {
		bin = "tmux"
	}
	return &Client{bin: bin}
}

// InsideTmux reports whether the process runs inside a tmux session.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// output runs a tmux command and returns its stdout.
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, c.bin, args...).Output()
	if err != nil {
		return "", fmt.Errorf("tmux %s: %w", args[0], err)
	}
	return string(out), nil
}

// run runs a tmux command, discarding output.
func (c *Client) run(ctx context.Context, args ...string) error {
	_, err := c.output(ctx, args...)
	return err
}

// CurrentPaneID returns the active pane ID (e.g. "%3").
func (c *Client) CurrentPaneID(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "display-message", "-p", "#{pane_id}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CapturePane captures the visible content of a pane with SGR sequences
// preserved and wrapped lines joined.
func (c *Client) CapturePane(ctx context.Context, paneID string) (string, error) {
	return c.output(ctx, "capture-pane", "-p", "-e", "-J", "-t", paneID)
}

// Geometry is a pane's position and size within the window.
type Geometry struct {
	PaneID string
	Left   int
	Top    int
	Right  int
	Bottom int
	Width  int
	Height int
}

// PaneGeometry returns the geometry of a pane.
func (c *Client) PaneGeometry(ctx context.Context, paneID string) (Geometry, error) {
	out, err := c.output(ctx, "display-message", "-t", paneID, "-p",
		"#{pane_id} #{pane_left} #{pane_top} #{pane_right} #{pane_bottom} #{pane_width} #{pane_height}")
	if err != nil {
		return Geometry{}, err
	}

	fields := strings.Fields(out)
	if len(fields) != 7 {
		return Geometry{}, fmt.Errorf("tmux display-message: unexpected output %q", out)
	}
	nums := make([]int, 6)
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Geometry{}, fmt.Errorf("tmux display-message: bad field %q: %w", f, err)
		}
		nums[i] = n
	}
	return Geometry{
		PaneID: fields[0],
		Left:   nums[0],
		Top:    nums[1],
		Right:  nums[2],
		Bottom: nums[3],
		Width:  nums[4],
		Height: nums[5],
	}, nil
}

// WindowSize returns the current window dimensions.
func (c *Client) WindowSize(ctx context.Context) (width, height int, err error) {
	out, err := c.output(ctx, "display-message", "-p", "#{window_width},#{window_height}")
	if err != nil {
		return 0, 0, err
	}
	parts := strings.Split(strings.TrimSpace(out), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("tmux display-message: unexpected output %q", out)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// SetBuffer stores text in a named tmux buffer.
func (c *Client) SetBuffer(ctx context.Context, name, text string) error {
	return c.run(ctx, "set-buffer", "-b", name, "--", text)
}

// SetBufferToClipboard stores text in the unnamed buffer and asks tmux to
// forward it to the system clipboard via OSC52 passthrough (tmux 3.2+).
func (c *Client) SetBufferToClipboard(ctx context.Context, text string) error {
	return c.run(ctx, "set-buffer", "-w", "--", text)
}

// ShowBuffer returns the contents of a named buffer.
func (c *Client) ShowBuffer(ctx context.Context, name string) (string, error) {
	return c.output(ctx, "show-buffer", "-b", name)
}

// DeleteBuffer removes a named buffer. Missing buffers are not an error.
func (c *Client) DeleteBuffer(ctx context.Context, name string) {
	_ = c.run(ctx, "delete-buffer", "-b", name)
}

// PasteBuffer pastes a named buffer into the target pane.
func (c *Client) PasteBuffer(ctx context.Context, name, paneID string) error {
	return c.run(ctx, "paste-buffer", "-b", name, "-t", paneID)
}
