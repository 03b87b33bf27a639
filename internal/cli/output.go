package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/qualcanal/qualcanal/internal/calendar"
	"github.com/qualcanal/qualcanal/internal/match"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// OutputResult contains data to be output
type OutputResult struct {
	FetchedAt time.Time      `json:"fetched_at"`
	Source    string         `json:"source"`
	Count     int            `json:"count"`
	Total     int            `json:"total"`
	Matches   []*match.Match `json:"matches"`
	Filter    string         `json:"filter,omitempty"`
	// Stale is set when the source was unreachable and the stored snapshot was used.
	Stale     bool           `json:"stale,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	case FormatICS:
		ics, _ := calendar.GenerateICS(result.Matches, result.FetchedAt)
		_, err := io.WriteString(w, ics)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	if result.Matches == nil {
		result.Matches = []*match.Match{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text, one match per line:
//
//	Dom 21 Set  14:00  Benfica - Porto  [Liga Portugal]  Sport.Tv1
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Count == 0 {
		if result.Total > 0 {
			fmt.Fprintf(w, "No matches found for filter (%s).\n", result.Filter)
		} else {
			fmt.Fprintln(w, "No matches found.")
		}
		return nil
	}

	for _, m := range result.Matches {
		fmt.Fprintln(w, formatMatch(m))
		if verbose {
			fmt.Fprintf(w, "     Raw: %s\n", m.Raw)
		}
	}

	if result.Stale {
		fmt.Fprintf(w, "\nSource unreachable; showing snapshot from %s\n", result.FetchedAt.Format(time.RFC3339))
	}

	if result.Count != result.Total {
		fmt.Fprintf(w, "\nTotal: %d of %d matches (%s)\n", result.Count, result.Total, result.Filter)
	} else {
		fmt.Fprintf(w, "\nTotal: %d matches\n", result.Count)
	}

	return nil
}

func formatMatch(m *match.Match) string {
	var parts []string

	if m.DateText != "" {
		parts = append(parts, m.DateText)
	}
	if m.Time != "" {
		parts = append(parts, m.Time)
	}

	switch {
	case m.Teams() != "":
		parts = append(parts, m.Teams())
	case m.Home != "":
		parts = append(parts, m.Home)
	case m.Away != "":
		parts = append(parts, m.Away)
	}

	if m.Competition != "" {
		parts = append(parts, "["+m.Competition+"]")
	}
	if len(m.Channels) > 0 {
		parts = append(parts, strings.Join(m.Channels, ", "))
	}

	return strings.Join(parts, "  ")
}
