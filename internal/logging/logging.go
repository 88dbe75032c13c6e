// Package logging builds the slog logger shared by every command.
//
// Diagnostics always go to stderr (or the configured writer) so they never
// mix with the report on stdout. Every record carries the run ID.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// ErrInvalidLevel is returned for an unknown level name.
	ErrInvalidLevel = errors.New("logging: unknown level")

	// ErrInvalidFormat is returned for a format other than text or json.
	ErrInvalidFormat = errors.New("logging: unknown format")
)

// Config configures New. The zero value logs Info and above as text to
// stderr.
type Config struct {
	Level  string // debug, info, warn or error
	Format string // text or json
	Output io.Writer
	RunID  string
}

// ParseLevel maps a level name to a slog.Level. The empty string is Info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return l, nil
}

// New returns a logger for cfg.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(out, opts)
	case "json":
		h = slog.NewJSONHandler(out, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}

	if cfg.RunID != "" {
		h = h.WithAttrs([]slog.Attr{slog.String("run_id", cfg.RunID)})
	}
	return slog.New(h), nil
}
