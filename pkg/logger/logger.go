package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to stderr, so stdout stays free for command
// output.
func New(lvl string, addSource bool, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, lvl, addSource, format)
}

func NewWithWriter(w io.Writer, lvl string, addSource bool, format string) *slog.Logger {

	level := parseLevel(lvl)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	}
	var handler slog.Handler

	if strings.ToLower(format) == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Level maps the verbose and silent settings to a level name. Silent wins.
func Level(verbose, silent bool) string {
	switch {
	case silent:
		return "error"
	case verbose:
		return "debug"
	default:
		return "info"
	}
}

func parseLevel(level string) slog.Level {

	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
