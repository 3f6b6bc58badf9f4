// Package logging builds the debug logger. The search core never logs;
// collaborators receive an explicitly constructed logger from the caller,
// which is a no-op unless debug mode is enabled.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation policy for the debug log.
const (
	maxSizeMB  = 5
	maxBackups = 2
)

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// DefaultLogPath returns the debug log location under the XDG state
// directory.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "flashcopy", "debug.log")
}

// NewDebugLogger returns a debug-level logger writing to a rotating file at
// path (DefaultLogPath when empty), and a closer for the underlying file.
// When enabled is false it returns a discard logger and no file is touched.
func NewDebugLogger(enabled bool, path string) (*log.Logger, io.Closer) {
	if !enabled {
		return Discard(), nil
	}
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Discard(), nil
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	logger := log.NewWithOptions(rotator, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})
	return logger, rotator
}
