// Package calendar turns match records into an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qualcanal/qualcanal/internal/match"
)

// MatchDuration is the length given to every calendar entry.
const MatchDuration = 2 * time.Hour

// uidNamespace scopes the name-based UUIDs derived from raw lines.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://ondebola.com/"))

// GenerateICS renders matches as one VCALENDAR. Matches whose date or time
// cannot be resolved are skipped; the count of written events is returned.
func GenerateICS(matches []*match.Match, now time.Time) (string, int) {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//qualcanal//qualcanal//PT\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:Qual canal\r\n")

	written := 0
	for _, m := range matches {
		kickoff, ok := ParseKickoff(m.DateText, m.Time, now, Lisbon)
		if !ok {
			continue
		}
		writeEvent(&ics, m, kickoff, now)
		written++
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String(), written
}

func writeEvent(ics *strings.Builder, m *match.Match, kickoff, now time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	// Stable across fetches so calendar clients update instead of duplicating.
	fmt.Fprintf(ics, "UID:%s@qualcanal\r\n", uuid.NewSHA1(uidNamespace, []byte(m.Raw)))
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", formatICSTime(now))
	fmt.Fprintf(ics, "DTSTART:%s\r\n", formatICSTime(kickoff))
	fmt.Fprintf(ics, "DTEND:%s\r\n", formatICSTime(kickoff.Add(MatchDuration)))

	summary := m.Teams()
	if summary == "" {
		summary = strings.TrimSpace(m.Home + " " + m.Away)
	}
	if summary == "" {
		summary = m.Raw
	}
	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(summary))

	var description []string
	if m.Competition != "" {
		description = append(description, m.Competition)
	}
	if len(m.Channels) > 0 {
		description = append(description, "Canais: "+strings.Join(m.Channels, ", "))
	}
	if len(description) > 0 {
		fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(strings.Join(description, "\n")))
	}

	if len(m.Channels) > 0 {
		fmt.Fprintf(ics, "LOCATION:%s\r\n", escapeICS(strings.Join(m.Channels, ", ")))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar text values (RFC 5545)
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
