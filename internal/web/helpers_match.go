package web

import (
	"errors"
	"strings"
	"time"

	"roster-app/internal/model"
	"roster-app/internal/status"
	"roster-app/internal/store"
)

type matchWindow string

const (
	windowAll      matchWindow = "all"
	windowUpcoming matchWindow = "upcoming"
	windowPast     matchWindow = "past"
)

func parseMatchWindow(value string) (matchWindow, error) {
	switch matchWindow(strings.ToLower(strings.TrimSpace(value))) {
	case "", windowAll:
		return windowAll, nil
	case windowUpcoming:
		return windowUpcoming, nil
	case windowPast:
		return windowPast, nil
	}
	return "", errors.New("when must be one of all, upcoming, past")
}

func validateNewMatch(m model.NewMatch) (model.NewMatch, error) {
	m.Date = strings.TrimSpace(m.Date)
	m.Time = strings.TrimSpace(m.Time)
	m.HomeTeam = strings.TrimSpace(m.HomeTeam)
	m.AwayTeam = strings.TrimSpace(m.AwayTeam)
	m.Location = strings.TrimSpace(m.Location)
	if m.Date == "" || m.Time == "" || m.HomeTeam == "" || m.AwayTeam == "" || m.Location == "" {
		return m, errors.New("date, time, homeTeam, awayTeam and location are required")
	}
	if _, err := time.Parse("2006-01-02", m.Date); err != nil {
		return m, errors.New("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", m.Time); err != nil {
		return m, errors.New("time must be HH:MM")
	}
	return m, nil
}

func validateNewAthlete(a model.NewAthlete) (model.NewAthlete, error) {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	if a.FirstName == "" || a.LastName == "" {
		return a, errors.New("firstName and lastName are required")
	}
	return a, nil
}

func (s *Server) matchViews(matches []model.Match) []MatchView {
	names := map[string]string{}
	for _, t := range s.store.Teams() {
		names[t.ID] = t.Name
	}
	now := s.engine.Now()
	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		start, ok := store.MatchStart(m, s.opts.Location)
		views = append(views, MatchView{
			Match:     m,
			TeamName:  names[m.TeamID],
			DateLabel: status.FormatDate(m.Date),
			Upcoming:  ok && !start.Before(now),
		})
	}
	return views
}
