// Package logging builds the diagnostic logger shared by every surface.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/diogo/kondate/internal/config"
)

// LogFileName is the TUI log file inside the config log directory
const LogFileName = "kondate.log"

// ParseLevel maps a log_level value to a logrus level, defaulting to info
func ParseLevel(name string, verbose bool) logrus.Level {
	if verbose {
		return logrus.DebugLevel
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// New returns a text logger writing to out
func New(cfg config.Config, verbose bool, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(ParseLevel(cfg.LogLevel, verbose))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   out != os.Stderr,
	})
	return log
}

// NewFile returns a logger appending to ~/.kondate/logs/kondate.log.
// The TUI owns the terminal, so it cannot log to stderr.
func NewFile(cfg config.Config, verbose bool) (*logrus.Logger, io.Closer, error) {
	dir, err := config.GetLogDir()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(cfg, verbose, f), f, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
