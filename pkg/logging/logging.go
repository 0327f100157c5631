// Package logging configures the zerolog file logger. The TUI owns the
// terminal, so diagnostics go to a log file only.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Setup opens (or creates) triday.log in dir and returns a logger
// writing to it, plus a close func. The returned logger is safe to
// share; zerolog writes each event as one line.
func Setup(dir string) (zerolog.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}
	path := filepath.Join(dir, "triday.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}
