package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Output: &buf, Service: "test"})

	log.Info().Str("key", "value").Msg("test message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}

	checks := map[string]string{
		"level":   "info",
		"message": "test message",
		"key":     "value",
		"service": "test",
	}
	for field, want := range checks {
		if got := entry[field]; got != want {
			t.Errorf("entry[%q] = %v, want %q", field, got, want)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry has no time field")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level string
		log   func(zerolog.Logger)
		want  bool
	}{
		{"info at info", "info", func(l zerolog.Logger) { l.Info().Msg("x") }, true},
		{"debug below info", "info", func(l zerolog.Logger) { l.Debug().Msg("x") }, false},
		{"error at warn", "warn", func(l zerolog.Logger) { l.Error().Err(errors.New("boom")).Msg("x") }, true},
		{"debug at debug", "debug", func(l zerolog.Logger) { l.Debug().Msg("x") }, true},
		{"unknown level falls back to info", "chatty", func(l zerolog.Logger) { l.Debug().Msg("x") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(Config{Level: tt.level, Output: &buf}))

			if logged := buf.Len() > 0; logged != tt.want {
				t.Errorf("logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: FormatConsole, Output: &buf})

	log.Warn().Msg("console line")

	if strings.HasPrefix(buf.String(), "{") {
		t.Errorf("console output looks like JSON: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "console line") {
		t.Errorf("console output = %q, want message", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{" warn ", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	defer Configure(Config{})

	log := WithComponent("scraper")
	log.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"scraper"`) {
		t.Errorf("output = %q, want component field", buf.String())
	}
}
