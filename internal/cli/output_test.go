package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/qualcanal/qualcanal/internal/match"
)

func TestWriteOutput_Text(t *testing.T) {
	result := &OutputResult{
		FetchedAt: time.Date(2025, 9, 21, 10, 0, 0, 0, time.UTC),
		Count:     2,
		Total:     2,
		Matches: []*match.Match{
			{DateText: "Dom 21 Set", Time: "14:00", Home: "Benfica", Away: "Porto", Competition: "Liga Portugal", Channels: []string{"Sport.Tv1", "Sport.Tv+"}, Raw: "raw one"},
			{Time: "18:00", Home: "Braga", Raw: "raw two"},
		},
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText, true); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	want := "Dom 21 Set  14:00  Benfica - Porto  [Liga Portugal]  Sport.Tv1, Sport.Tv+\n" +
		"     Raw: raw one\n" +
		"18:00  Braga\n" +
		"     Raw: raw two\n" +
		"\nTotal: 2 matches\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteOutput() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteOutput_TextEmpty(t *testing.T) {
	tests := []struct {
		name   string
		result *OutputResult
		want   string
	}{
		{"nothing fetched", &OutputResult{}, "No matches found.\n"},
		{"filtered out", &OutputResult{Total: 3, Filter: "Teams: Ajax"}, "No matches found for filter (Teams: Ajax).\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteOutput(&buf, tt.result, FormatText, false); err != nil {
				t.Fatalf("WriteOutput() error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteOutput() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, &OutputResult{}, FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"matches": []`) {
		t.Errorf("WriteOutput() = %s, want empty matches array", buf.String())
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	if err := WriteOutput(&bytes.Buffer{}, &OutputResult{}, "yaml", false); err == nil {
		t.Error("WriteOutput() expected error for unknown format")
	}
}

func TestWriteOutput_ICS(t *testing.T) {
	result := &OutputResult{
		FetchedAt: time.Date(2025, 9, 19, 10, 0, 0, 0, time.UTC),
		Count:     1,
		Total:     1,
		Matches: []*match.Match{
			{DateText: "Dom 21 Set", Time: "14:00", Home: "Benfica", Away: "Porto", Raw: "raw one"},
		},
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatICS, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	got := buf.String()
	for _, field := range []string{"BEGIN:VCALENDAR", "SUMMARY:Benfica - Porto", "DTSTAMP:20250919T100000Z"} {
		if !strings.Contains(got, field) {
			t.Errorf("ICS output missing %q", field)
		}
	}
}
