package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format selects the slog handler used for output.
type Format string

const (
	// FormatJSON emits one JSON object per record.
	FormatJSON Format = "json"
	// FormatText emits key=value lines.
	FormatText Format = "text"
)

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("log: unknown format %q", s)
	}
}

func (f Format) handler(w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if f == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// ParseLevel parses a level name. The match is case-insensitive and accepts
// "warning" for warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log: unknown level %q", s)
	}
}
