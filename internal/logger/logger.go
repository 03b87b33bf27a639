// Package logger configures structured logging for the qualcanal service.
//
// Logs are emitted through zerolog as JSON lines by default, or through the
// console writer for local runs. Components derive child loggers with
// WithComponent so every entry carries the emitting subsystem:
//
//	log := logger.WithComponent("scraper")
//	log.Info().Int("matches", n).Msg("fetched schedule")
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Config captures options for the process logger.
type Config struct {
	Level   string    // "debug", "info", "warn", "error"; defaults to info
	Format  Format    // defaults to JSON
	Output  io.Writer // defaults to os.Stdout
	Service string    // attached to every entry; defaults to "qualcanal"
}

var (
	mu   sync.RWMutex
	base zerolog.Logger
)

func init() {
	base = New(Config{})
}

// New builds a logger from cfg without touching the process default.
// An unknown level falls back to info.
func New(cfg Config) zerolog.Logger {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	service := cfg.Service
	if service == "" {
		service = "qualcanal"
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
}

// Configure replaces the process logger.
func Configure(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	l := New(cfg)
	mu.Lock()
	base = l
	mu.Unlock()
}

// ParseLevel maps a level name to a zerolog level. Empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return parsed, nil
}

// Base returns the process logger.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child of the process logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
