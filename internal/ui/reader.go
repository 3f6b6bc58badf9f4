package ui

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// KeyKind classifies one decoded keystroke.
type KeyKind int

const (
	KeyNone KeyKind = iota // poll timeout, no input
	KeyRune
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyCtrlC
	KeyCtrlU
	KeyCtrlW
)

// Key is one keystroke read from the terminal.
type Key struct {
	Kind KeyKind
	Rune rune
}

// pollInterval is how long one read waits for input before returning
// KeyNone, letting the session loop interleave idle-timeout checks.
const pollInterval = 100 // milliseconds

// escDrainInterval is how long to wait for bytes following ESC before
// treating it as a bare Escape rather than a CSI sequence.
const escDrainInterval = 10

// keyReader reads single keystrokes from /dev/tty in raw mode.
type keyReader struct {
	tty   *os.File
	state *term.State
}

func openKeyReader() (*keyReader, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/tty: %w", err)
	}

	state, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		tty.Close()
		return nil, fmt.Errorf("set raw mode: %w", err)
	}

	return &keyReader{tty: tty, state: state}, nil
}

func (r *keyReader) Close() error {
	if r.state != nil {
		_ = term.Restore(int(r.tty.Fd()), r.state)
	}
	return r.tty.Close()
}

// Next returns the next keystroke, or KeyNone after the poll interval
// elapses with no input. EOF and read errors surface as Ctrl-C so the
// session cancels cleanly.
func (r *keyReader) Next() (Key, error) {
	if !r.wait(pollInterval) {
		return Key{Kind: KeyNone}, nil
	}

	b, ok := r.readByte()
	if !ok {
		return Key{Kind: KeyCtrlC}, nil
	}

	switch b {
	case 0x03:
		return Key{Kind: KeyCtrlC}, nil
	case 0x15:
		return Key{Kind: KeyCtrlU}, nil
	case 0x17:
		return Key{Kind: KeyCtrlW}, nil
	case 0x7f, 0x08:
		return Key{Kind: KeyBackspace}, nil
	case '\r', '\n':
		return Key{Kind: KeyEnter}, nil
	case 0x1b:
		// A bare ESC cancels; bytes arriving right behind it mean an
		// arrow/function key sequence, which we swallow.
		if r.wait(escDrainInterval) {
			r.drain()
			return Key{Kind: KeyNone}, nil
		}
		return Key{Kind: KeyEscape}, nil
	}

	if b < 0x20 {
		return Key{Kind: KeyNone}, nil
	}
	if b < utf8.RuneSelf {
		return Key{Kind: KeyRune, Rune: rune(b)}, nil
	}

	// Multibyte rune: continuation bytes follow immediately.
	buf := []byte{b}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		if !r.wait(escDrainInterval) {
			break
		}
		nb, ok := r.readByte()
		if !ok {
			break
		}
		buf = append(buf, nb)
	}
	ru, _ := utf8.DecodeRune(buf)
	if ru == utf8.RuneError {
		return Key{Kind: KeyNone}, nil
	}
	return Key{Kind: KeyRune, Rune: ru}, nil
}

// wait polls the tty for readable input for up to ms milliseconds.
func (r *keyReader) wait(ms int) bool {
	fds := []unix.PollFd{{Fd: int32(r.tty.Fd()), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, ms)
		if err == unix.EINTR {
			continue
		}
		return err == nil && n > 0
	}
}

func (r *keyReader) readByte() (byte, bool) {
	var b [1]byte
	n, err := r.tty.Read(b[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return b[0], true
}

// drain discards whatever is immediately readable (the tail of an escape
// sequence).
func (r *keyReader) drain() {
	for r.wait(0) {
		if _, ok := r.readByte(); !ok {
			return
		}
	}
}
