// Package diff compares a fresh fetch against a stored snapshot.
package diff

import (
	"slices"
	"sort"
	"strings"

	"github.com/qualcanal/qualcanal/internal/filter"
	"github.com/qualcanal/qualcanal/internal/match"
)

// Change kinds reported by Compare.
const (
	ChangeTime        = "time"
	ChangeDate        = "date"
	ChangeCompetition = "competition"
	ChangeChannels    = "channels"
)

// Change is one field that differs between two sightings of the same fixture.
type Change struct {
	Key      string       `json:"key"`
	Kind     string       `json:"kind"`
	OldValue string       `json:"old_value"`
	NewValue string       `json:"new_value"`
	Match    *match.Match `json:"match"`
}

// Result contains the outcome of comparing two match lists.
type Result struct {
	New     []*match.Match `json:"new"`
	Removed []*match.Match `json:"removed"`
	Changed []*Change      `json:"changed"`
	// ByCompetition groups New by competition; "" holds the unlabelled ones.
	ByCompetition map[string][]*match.Match `json:"-"`
}

// Empty reports whether nothing changed.
func (r *Result) Empty() bool {
	return len(r.New) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// StableKey identifies a fixture across fetches. Team pairs are stable while
// kickoff times and channel lists move, so the key is built from the teams
// alone and falls back to the raw line when a side is missing.
func StableKey(m *match.Match) string {
	if m.Home != "" && m.Away != "" {
		return filter.Fold(m.Home) + "|" + filter.Fold(m.Away)
	}
	return "raw|" + filter.Fold(m.Raw)
}

// Compare reports matches added to, removed from, or modified in current
// relative to previous. A nil or empty filter compares everything.
func Compare(previous, current []*match.Match, f *filter.Filter) *Result {
	result := &Result{
		New:           make([]*match.Match, 0),
		Removed:       make([]*match.Match, 0),
		Changed:       make([]*Change, 0),
		ByCompetition: make(map[string][]*match.Match),
	}

	if f != nil && !f.IsEmpty() {
		previous = f.Apply(previous)
		current = f.Apply(current)
	}

	before := index(previous)
	after := index(current)

	for _, m := range current {
		key := StableKey(m)
		old, exists := before[key]
		if !exists {
			result.New = append(result.New, m)
			result.ByCompetition[m.Competition] = append(result.ByCompetition[m.Competition], m)
			continue
		}
		result.Changed = append(result.Changed, detectChanges(key, old, m)...)
	}

	for _, m := range previous {
		if _, exists := after[StableKey(m)]; !exists {
			result.Removed = append(result.Removed, m)
		}
	}

	sort.SliceStable(result.Changed, func(i, j int) bool {
		return result.Changed[i].Key < result.Changed[j].Key
	})

	return result
}

// index keeps the first match per stable key, mirroring feed dedup order.
func index(matches []*match.Match) map[string]*match.Match {
	out := make(map[string]*match.Match, len(matches))
	for _, m := range matches {
		key := StableKey(m)
		if _, ok := out[key]; !ok {
			out[key] = m
		}
	}
	return out
}

func detectChanges(key string, previous, current *match.Match) []*Change {
	var changes []*Change

	add := func(kind, oldValue, newValue string) {
		changes = append(changes, &Change{
			Key:      key,
			Kind:     kind,
			OldValue: oldValue,
			NewValue: newValue,
			Match:    current,
		})
	}

	if previous.DateText != current.DateText {
		add(ChangeDate, previous.DateText, current.DateText)
	}
	if previous.Time != current.Time {
		add(ChangeTime, previous.Time, current.Time)
	}
	if previous.Competition != current.Competition {
		add(ChangeCompetition, previous.Competition, current.Competition)
	}
	if !slices.Equal(previous.Channels, current.Channels) {
		add(ChangeChannels, strings.Join(previous.Channels, ", "), strings.Join(current.Channels, ", "))
	}

	return changes
}
