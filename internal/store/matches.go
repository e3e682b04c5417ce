package store

import (
	"sort"
	"strings"
	"time"

	"roster-app/internal/model"
)

var matchTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// MatchStart combines a match's date and time into one instant in loc.
func MatchStart(m model.Match, loc *time.Location) (time.Time, bool) {
	value := strings.TrimSpace(strings.TrimSpace(m.Date) + " " + strings.TrimSpace(m.Time))
	for _, layout := range matchTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// sortMatches flattens every team's matches and orders them by start time.
// Matches whose start cannot be read go last; ties keep roster order.
func sortMatches(teams []model.Team, loc *time.Location) []model.Match {
	type keyed struct {
		match model.Match
		start time.Time
		ok    bool
	}
	entries := []keyed{}
	for _, t := range teams {
		for _, m := range t.Matches {
			start, ok := MatchStart(m, loc)
			entries = append(entries, keyed{match: m, start: start, ok: ok})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ok != entries[j].ok {
			return entries[i].ok
		}
		return entries[i].start.Before(entries[j].start)
	})
	matches := make([]model.Match, 0, len(entries))
	for _, e := range entries {
		matches = append(matches, e.match)
	}
	return matches
}

// splitMatches keeps the input order. A match starting exactly at now is upcoming.
func splitMatches(matches []model.Match, now time.Time, loc *time.Location) (upcoming, past []model.Match) {
	upcoming = []model.Match{}
	past = []model.Match{}
	for _, m := range matches {
		start, ok := MatchStart(m, loc)
		if ok && !start.Before(now) {
			upcoming = append(upcoming, m)
		} else {
			past = append(past, m)
		}
	}
	return upcoming, past
}
