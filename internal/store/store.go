package store

import (
	"context"
	"time"

	"roster-app/internal/model"
)

// Store is the roster handle passed to every consumer. Mutations report
// whether their target resolved; a miss leaves the roster unchanged.
type Store interface {
	Load(ctx context.Context) []model.Team
	Teams() []model.Team

	GetTeam(teamID string) (model.Team, bool)
	AddTeam(name string) model.Team
	UpdateTeam(teamID string, patch model.TeamPatch) (model.Team, bool)
	DeleteTeam(teamID string) bool

	GetAthlete(teamID, athleteID string) (model.Athlete, bool)
	AddAthlete(teamID string, athlete model.NewAthlete) (model.Athlete, bool)
	UpdateAthlete(teamID, athleteID string, patch model.AthletePatch) (model.Athlete, bool)
	DeleteAthlete(teamID, athleteID string) bool

	AddMatch(teamID string, match model.NewMatch) (model.Match, bool)
	UpdateMatch(teamID, matchID string, patch model.MatchPatch) (model.Match, bool)
	DeleteMatch(teamID, matchID string) bool

	AllMatches() []model.Match
	UpcomingMatches(now time.Time) []model.Match
	PastMatches(now time.Time) []model.Match

	Flush(ctx context.Context) error
	Close(ctx context.Context) error
}
