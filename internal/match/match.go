package match

import (
	"encoding/json"
	"strings"
)

// DedupKeyLen is the number of runes of Raw used to detect duplicate records.
const DedupKeyLen = 200

// Match represents one scheduled broadcast scraped from the source page.
// Empty strings stand for absent values.
type Match struct {
	DateText    string
	Time        string
	Home        string
	Away        string
	Competition string
	Channels    []string
	Raw         string
}

// wireMatch is the served JSON shape. Absent optionals encode as null.
type wireMatch struct {
	DateText    *string  `json:"date_text"`
	Time        *string  `json:"time"`
	Home        *string  `json:"home"`
	Away        *string  `json:"away"`
	Teams       *string  `json:"teams"`
	Competition *string  `json:"competition"`
	Channels    []string `json:"channels"`
	Raw         string   `json:"raw"`
}

// Clean collapses every run of whitespace into a single space and trims the result.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Teams returns "home - away" when both sides are known, otherwise "".
func (m *Match) Teams() string {
	if m.Home == "" || m.Away == "" {
		return ""
	}
	return m.Home + " - " + m.Away
}

// DedupKey returns the first DedupKeyLen runes of Raw.
func (m *Match) DedupKey() string {
	n := 0
	for i := range m.Raw {
		if n == DedupKeyLen {
			return m.Raw[:i]
		}
		n++
	}
	return m.Raw
}

// MarshalJSON encodes the match in the feed shape, including the derived teams field.
func (m Match) MarshalJSON() ([]byte, error) {
	channels := m.Channels
	if channels == nil {
		channels = []string{}
	}
	return json.Marshal(wireMatch{
		DateText:    optional(m.DateText),
		Time:        optional(m.Time),
		Home:        optional(m.Home),
		Away:        optional(m.Away),
		Teams:       optional(m.Teams()),
		Competition: optional(m.Competition),
		Channels:    channels,
		Raw:         m.Raw,
	})
}

// UnmarshalJSON decodes the feed shape. The teams field is derived and ignored.
func (m *Match) UnmarshalJSON(data []byte) error {
	var w wireMatch
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = Match{
		DateText:    deref(w.DateText),
		Time:        deref(w.Time),
		Home:        deref(w.Home),
		Away:        deref(w.Away),
		Competition: deref(w.Competition),
		Channels:    w.Channels,
		Raw:         w.Raw,
	}
	return nil
}

// Dedup keeps the first match seen for each DedupKey, preserving order.
func Dedup(matches []*Match) []*Match {
	seen := make(map[string]bool, len(matches))
	unique := make([]*Match, 0, len(matches))
	for _, m := range matches {
		key := m.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, m)
	}
	return unique
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
