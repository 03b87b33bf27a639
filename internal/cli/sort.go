package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/qualcanal/qualcanal/internal/calendar"
	"github.com/qualcanal/qualcanal/internal/filter"
	"github.com/qualcanal/qualcanal/internal/match"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortBySource      SortOrder = "source"
	SortByTime        SortOrder = "time"
	SortByHome        SortOrder = "home"
	SortByCompetition SortOrder = "competition"
)

func (o SortOrder) valid() bool {
	switch o {
	case SortBySource, SortByTime, SortByHome, SortByCompetition:
		return true
	}
	return false
}

// sortMatches sorts matches in place. SortBySource keeps page order.
func sortMatches(matches []*match.Match, order SortOrder) {
	switch order {
	case SortByTime:
		sort.SliceStable(matches, func(i, j int) bool {
			return compareBySchedule(matches[i], matches[j])
		})
	case SortByHome:
		sort.SliceStable(matches, func(i, j int) bool {
			hi, hj := filter.Fold(matches[i].Home), filter.Fold(matches[j].Home)
			if hi != hj {
				return hi < hj
			}
			return compareBySchedule(matches[i], matches[j])
		})
	case SortByCompetition:
		sort.SliceStable(matches, func(i, j int) bool {
			ci, cj := filter.Fold(matches[i].Competition), filter.Fold(matches[j].Competition)
			if ci != cj {
				return ci < cj
			}
			return compareBySchedule(matches[i], matches[j])
		})
	}
}

// compareBySchedule orders by date, then time. Matches without a readable
// date or time go after those with one.
func compareBySchedule(i, j *match.Match) bool {
	di, dj := dayOfYear(i.DateText), dayOfYear(j.DateText)
	if di != dj {
		if di < 0 || dj < 0 {
			return di >= 0
		}
		return di < dj
	}

	ti, tj := minutes(i.Time), minutes(j.Time)
	if ti != tj {
		if ti < 0 || tj < 0 {
			return ti >= 0
		}
		return ti < tj
	}
	return false
}

// dayOfYear turns "Dom 21 Set" into a sortable month*100+day, or -1.
func dayOfYear(dateText string) int {
	month, day, ok := calendar.ParseDay(dateText)
	if !ok {
		return -1
	}
	return int(month)*100 + day
}

// minutes turns "HH:MM" into minutes since midnight, or -1.
func minutes(hhmm string) int {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return -1
	}
	hours, err1 := strconv.Atoi(h)
	mins, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil {
		return -1
	}
	return hours*60 + mins
}
