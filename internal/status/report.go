package status

import "roster-app/internal/model"

type AthleteReport struct {
	Athlete model.Athlete    `json:"athlete"`
	Status  model.StatusType `json:"status"`
	Label   string           `json:"label"`
}

type TeamSummary struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	AthleteCount int                     `json:"athleteCount"`
	MatchCount   int                     `json:"matchCount"`
	Badge        model.NotificationBadge `json:"badge"`
}

func (e *Engine) AthleteReport(a model.Athlete) AthleteReport {
	s := e.ClassifyAthlete(a)
	return AthleteReport{Athlete: a, Status: s, Label: s.Label()}
}

func (e *Engine) AthleteReports(team model.Team) []AthleteReport {
	reports := make([]AthleteReport, 0, len(team.Athletes))
	for _, a := range team.Athletes {
		reports = append(reports, e.AthleteReport(a))
	}
	return reports
}

func (e *Engine) Summarize(teams []model.Team) []TeamSummary {
	summaries := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		summaries = append(summaries, TeamSummary{
			ID:           t.ID,
			Name:         t.Name,
			AthleteCount: len(t.Athletes),
			MatchCount:   len(t.Matches),
			Badge:        e.TeamBadges(t),
		})
	}
	return summaries
}
