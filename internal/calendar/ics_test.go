package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/qualcanal/qualcanal/internal/match"
)

var now = time.Date(2025, 9, 19, 12, 0, 0, 0, time.UTC)

func TestGenerateICS(t *testing.T) {
	matches := []*match.Match{
		{
			DateText:    "Dom 21 Set",
			Time:        "14:00",
			Home:        "Benfica",
			Away:        "Porto",
			Competition: "Liga Portugal",
			Channels:    []string{"Sport.Tv1", "Sport.Tv+"},
			Raw:         "Dom 21 Set 14:00 Benfica - Porto Liga Portugal Sport.Tv1 Sport.Tv+",
		},
		{Time: "18:00", Home: "Braga", Raw: "18:00 Braga"},
	}

	ics, written := GenerateICS(matches, now)

	if written != 1 {
		t.Errorf("GenerateICS() wrote %d events, want 1", written)
	}

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//qualcanal//qualcanal//PT",
		"BEGIN:VEVENT",
		"UID:",
		"DTSTAMP:20250919T120000Z",
		"DTSTART:20250921T130000Z", // 14:00 in Lisbon summer time
		"DTEND:20250921T150000Z",
		"SUMMARY:Benfica - Porto",
		"DESCRIPTION:Liga Portugal\\nCanais: Sport.Tv1\\, Sport.Tv+",
		"LOCATION:Sport.Tv1\\, Sport.Tv+",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if strings.Count(ics, "BEGIN:VEVENT") != 1 {
		t.Errorf("ICS has %d events, want 1", strings.Count(ics, "BEGIN:VEVENT"))
	}

	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
}

func TestGenerateICS_StableUID(t *testing.T) {
	m := []*match.Match{{DateText: "Dom 21 Set", Time: "14:00", Home: "Benfica", Away: "Porto", Raw: "same line"}}

	first, _ := GenerateICS(m, now)
	second, _ := GenerateICS(m, now.Add(time.Hour))

	uid := func(ics string) string {
		for _, line := range strings.Split(ics, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}

	if uid(first) == "" || uid(first) != uid(second) {
		t.Errorf("UID changed between renders: %q vs %q", uid(first), uid(second))
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	ics, written := GenerateICS(nil, now)

	if written != 0 {
		t.Errorf("written = %d, want 0", written)
	}
	if !strings.Contains(ics, "BEGIN:VCALENDAR") || strings.Contains(ics, "BEGIN:VEVENT") {
		t.Errorf("unexpected ICS: %q", ics)
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple text", "Simple text"},
		{"Text, with comma", "Text\\, with comma"},
		{"Text; with semicolon", "Text\\; with semicolon"},
		{"Text\nwith newline", "Text\\nwith newline"},
		{"Text\\with backslash", "Text\\\\with backslash"},
	}

	for _, tt := range tests {
		if got := escapeICS(tt.input); got != tt.expected {
			t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
