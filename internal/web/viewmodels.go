package web

import (
	"roster-app/internal/model"
	"roster-app/internal/status"
)

type TeamView struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Athletes []status.AthleteReport  `json:"athletes"`
	Matches  []model.Match           `json:"matches"`
	Badge    model.NotificationBadge `json:"badge"`
}

type StatusView struct {
	AthleteID string           `json:"athleteId"`
	Status    model.StatusType `json:"status"`
	Label     string           `json:"label"`
}

type MatchView struct {
	model.Match
	TeamName  string `json:"teamName"`
	DateLabel string `json:"dateLabel"`
	Upcoming  bool   `json:"upcoming"`
}

type createTeamRequest struct {
	Name string `json:"name"`
}
