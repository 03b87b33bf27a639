// Package filter narrows a match batch down to what a caller asked for.
//
// Criteria are matched case-insensitively and without regard to accents, so
// "famalicao" finds "Famalicão" and "sport tv" finds "Sport TV1":
//   - Teams: home or away contains one of the terms
//   - Competitions: competition contains one of the terms
//   - Channels: any channel contains one of the terms
//   - Weekdays: the date text starts with one of the weekdays
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Teams = []string{"Benfica"}
//	f.Channels = filter.ParseTerms("sport tv, dazn")
//	served := f.Apply(matches)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/qualcanal/qualcanal/internal/match"
)

// Filter represents match filtering criteria
type Filter struct {
	Teams        []string       `json:"teams,omitempty"`
	Competitions []string       `json:"competitions,omitempty"`
	Channels     []string       `json:"channels,omitempty"`
	Weekdays     []time.Weekday `json:"weekdays,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
func NewFilter() *Filter {
	return &Filter{
		Teams:        []string{},
		Competitions: []string{},
		Channels:     []string{},
		Weekdays:     []time.Weekday{},
	}
}

// IsEmpty reports whether the filter would match every match.
func (f *Filter) IsEmpty() bool {
	return len(f.Teams) == 0 &&
		len(f.Competitions) == 0 &&
		len(f.Channels) == 0 &&
		len(f.Weekdays) == 0
}

// Matches checks if m passes all active criteria. Records without a date
// text are not excluded by Weekdays.
func (f *Filter) Matches(m *match.Match) bool {
	if f.IsEmpty() {
		return true
	}

	if len(f.Teams) > 0 && !containsAny([]string{m.Home, m.Away}, f.Teams) {
		return false
	}

	if len(f.Competitions) > 0 && !containsAny([]string{m.Competition}, f.Competitions) {
		return false
	}

	if len(f.Channels) > 0 && !containsAny(m.Channels, f.Channels) {
		return false
	}

	if len(f.Weekdays) > 0 {
		if day, ok := Weekday(m.DateText); ok && !hasWeekday(f.Weekdays, day) {
			return false
		}
	}

	return true
}

// Apply returns the matches that pass the filter, in their original order.
// An empty filter returns the input unchanged.
func (f *Filter) Apply(matches []*match.Match) []*match.Match {
	if f.IsEmpty() {
		return matches
	}

	filtered := make([]*match.Match, 0, len(matches))
	for _, m := range matches {
		if f.Matches(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered
}

// String returns a human-readable description of the active criteria.
// Format: "Teams: Benfica | Channels: dazn | Days: Sáb, Dom"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if len(f.Teams) > 0 {
		parts = append(parts, fmt.Sprintf("Teams: %s", strings.Join(f.Teams, ", ")))
	}

	if len(f.Competitions) > 0 {
		parts = append(parts, fmt.Sprintf("Competitions: %s", strings.Join(f.Competitions, ", ")))
	}

	if len(f.Channels) > 0 {
		parts = append(parts, fmt.Sprintf("Channels: %s", strings.Join(f.Channels, ", ")))
	}

	if len(f.Weekdays) > 0 {
		days := make([]string, len(f.Weekdays))
		for i, d := range f.Weekdays {
			days[i] = weekdayNames[d]
		}
		parts = append(parts, fmt.Sprintf("Days: %s", strings.Join(days, ", ")))
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	return &Filter{
		Teams:        append([]string{}, f.Teams...),
		Competitions: append([]string{}, f.Competitions...),
		Channels:     append([]string{}, f.Channels...),
		Weekdays:     append([]time.Weekday{}, f.Weekdays...),
	}
}

func containsAny(fields, terms []string) bool {
	for _, field := range fields {
		if field == "" {
			continue
		}
		folded := Fold(field)
		for _, term := range terms {
			if strings.Contains(folded, Fold(term)) {
				return true
			}
		}
	}
	return false
}

func hasWeekday(days []time.Weekday, day time.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
