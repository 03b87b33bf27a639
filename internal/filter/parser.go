package filter

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Seg",
	time.Tuesday:   "Ter",
	time.Wednesday: "Qua",
	time.Thursday:  "Qui",
	time.Friday:    "Sex",
	time.Saturday:  "Sáb",
	time.Sunday:    "Dom",
}

// weekdayPrefixes maps folded three-letter prefixes to weekdays.
var weekdayPrefixes = map[string]time.Weekday{
	"seg": time.Monday,
	"ter": time.Tuesday,
	"qua": time.Wednesday,
	"qui": time.Thursday,
	"sex": time.Friday,
	"sab": time.Saturday,
	"dom": time.Sunday,
}

// Fold lower-cases s and strips combining marks: "Sáb" becomes "sab".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// ParseTerms splits a comma-separated list, trimming blanks and dropping
// empty or repeated terms.
func ParseTerms(input string) []string {
	terms := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(input, ",") {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" || seen[Fold(part)] {
			continue
		}
		seen[Fold(part)] = true
		terms = append(terms, part)
	}
	return terms
}

// Weekday reads the weekday from a date text such as "Dom 21 Set" or
// "Sábado, 20 de Setembro".
func Weekday(dateText string) (time.Weekday, bool) {
	folded := []rune(Fold(strings.TrimSpace(dateText)))
	if len(folded) < 3 {
		return 0, false
	}
	day, ok := weekdayPrefixes[string(folded[:3])]
	return day, ok
}

// ParseWeekdays parses a comma-separated list of Portuguese weekday names or
// abbreviations. "fds" and "fim de semana" expand to Saturday and Sunday.
func ParseWeekdays(input string) ([]time.Weekday, error) {
	days := []time.Weekday{}
	seen := make(map[time.Weekday]bool)
	add := func(d time.Weekday) {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}

	for _, term := range ParseTerms(input) {
		switch Fold(term) {
		case "fds", "fim de semana", "fim-de-semana":
			add(time.Saturday)
			add(time.Sunday)
			continue
		}

		day, ok := Weekday(term)
		if !ok {
			return nil, fmt.Errorf("invalid weekday: %s", term)
		}
		add(day)
	}

	return days, nil
}

// Parse builds a Filter from comma-separated criteria as they arrive from
// query parameters or command-line flags. Empty strings add no criteria.
func Parse(teams, competitions, channels, days string) (*Filter, error) {
	weekdays, err := ParseWeekdays(days)
	if err != nil {
		return nil, err
	}
	return &Filter{
		Teams:        ParseTerms(teams),
		Competitions: ParseTerms(competitions),
		Channels:     ParseTerms(channels),
		Weekdays:     weekdays,
	}, nil
}
