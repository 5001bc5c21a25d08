// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup("")       // level from LOG_LEVEL env (default: info)
//	logging.Setup("debug")  // explicit level
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs a tint handler on stderr as the default slog logger.
// An empty level falls back to the LOG_LEVEL environment variable.
func Setup(level string) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	slog.SetDefault(New(os.Stderr, ParseLevel(level)))
}

// New returns a tint-backed logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
		NoColor:    !isTerminal(w),
	}))
}

// ParseLevel maps debug, warn and error to their levels; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
