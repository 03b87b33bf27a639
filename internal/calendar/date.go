package calendar

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/qualcanal/qualcanal/internal/filter"
)

var months = map[string]time.Month{
	"jan": time.January, "fev": time.February, "mar": time.March,
	"abr": time.April, "mai": time.May, "jun": time.June,
	"jul": time.July, "ago": time.August, "set": time.September,
	"out": time.October, "nov": time.November, "dez": time.December,
}

// Lisbon is the source's local time zone. It falls back to UTC when the zone
// database is unavailable.
var Lisbon = loadLocation("Europe/Lisbon")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDay reads the day and month from a date text such as "Dom 21 Set" or
// "21 de Setembro". The weekday is ignored.
func ParseDay(dateText string) (time.Month, int, bool) {
	fields := strings.Fields(filter.Fold(dateText))
	for k, field := range fields {
		day, err := strconv.Atoi(strings.TrimSuffix(field, ","))
		if err != nil || day < 1 || day > 31 {
			continue
		}
		for _, next := range fields[k+1:] {
			if next == "de" {
				continue
			}
			if len(next) >= 3 {
				if month, ok := months[next[:3]]; ok {
					return month, day, true
				}
			}
			break
		}
	}
	return 0, 0, false
}

// ParseKickoff resolves a yearless date text and an HH:MM time into an
// instant in loc. The year is the one that puts the date closest to ref, so a
// January fixture seen in December lands in the following year.
func ParseKickoff(dateText, timeText string, ref time.Time, loc *time.Location) (time.Time, bool) {
	month, day, ok := ParseDay(dateText)
	if !ok {
		return time.Time{}, false
	}
	hour, minute, ok := parseClock(timeText)
	if !ok {
		return time.Time{}, false
	}

	ref = ref.In(loc)
	best := time.Time{}
	for _, year := range []int{ref.Year() - 1, ref.Year(), ref.Year() + 1} {
		candidate := time.Date(year, month, day, hour, minute, 0, 0, loc)
		if candidate.Month() != month {
			continue
		}
		if best.IsZero() || absDuration(candidate.Sub(ref)) < absDuration(best.Sub(ref)) {
			best = candidate
		}
	}
	return best, !best.IsZero()
}

func parseClock(hhmm string) (int, int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok {
		return 0, 0, false
	}
	hour, err1 := strconv.Atoi(h)
	minute, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
