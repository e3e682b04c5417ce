package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"roster-app/internal/model"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var _ Store = (*RosterStore)(nil)

type RosterOptions struct {
	Writer WriterConfig
	Clock  clockwork.Clock
	// Location is used to read match dates and times, which carry no zone.
	Location *time.Location
	NewID    func() string
}

// RosterStore keeps the roster in memory and mirrors every change to a Slot.
// Published collections are never edited in place; each mutation builds a new
// one.
type RosterStore struct {
	mu      sync.RWMutex
	teams   []model.Team
	matches []model.Match

	slot     Slot
	writer   *Writer
	location *time.Location
	newID    func() string
}

func NewRosterStore(slot Slot, opts RosterOptions) *RosterStore {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &RosterStore{
		teams:    []model.Team{},
		matches:  []model.Match{},
		slot:     slot,
		writer:   NewWriter(slot, opts.Clock, opts.Writer),
		location: opts.Location,
		newID:    opts.NewID,
	}
}

// Load replaces the in-memory roster with the slot contents. A missing or
// unreadable slot yields an empty roster.
func (s *RosterStore) Load(ctx context.Context) []model.Team {
	teams := s.readSlot(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = teams
	s.matches = sortMatches(teams, s.location)
	return model.CloneTeams(teams)
}

func (s *RosterStore) readSlot(ctx context.Context) []model.Team {
	data, err := s.slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		log.Info().Msg("roster slot is empty, starting with no teams")
		return []model.Team{}
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to read roster slot, starting with no teams")
		return []model.Team{}
	}
	teams, err := decodeTeams(data)
	if err != nil {
		log.Warn().Err(err).Msg("roster slot is corrupt, starting with no teams")
		return []model.Team{}
	}
	log.Info().Int("teams", len(teams)).Msg("roster loaded")
	return teams
}

func (s *RosterStore) Teams() []model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneTeams(s.teams)
}

func (s *RosterStore) GetTeam(teamID string) (model.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.teamIndex(teamID); i >= 0 {
		return s.teams[i].Clone(), true
	}
	return model.Team{}, false
}

func (s *RosterStore) AddTeam(name string) model.Team {
	s.mu.Lock()
	defer s.mu.Unlock()

	team := model.Team{
		ID:       s.newID(),
		Name:     name,
		Athletes: []model.Athlete{},
		Matches:  []model.Match{},
	}
	next := make([]model.Team, 0, len(s.teams)+1)
	next = append(next, s.teams...)
	next = append(next, team)
	s.publish(next)
	return team.Clone()
}

func (s *RosterStore) UpdateTeam(teamID string, patch model.TeamPatch) (model.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.teamIndex(teamID)
	if i < 0 {
		return model.Team{}, false
	}
	next := s.copyTeams()
	next[i] = patch.Apply(next[i])
	s.publish(next)
	return next[i].Clone(), true
}

func (s *RosterStore) DeleteTeam(teamID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.teamIndex(teamID)
	if i < 0 {
		return false
	}
	next := make([]model.Team, 0, len(s.teams)-1)
	next = append(next, s.teams[:i]...)
	next = append(next, s.teams[i+1:]...)
	s.publish(next)
	return true
}

func (s *RosterStore) GetAthlete(teamID, athleteID string) (model.Athlete, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.teamIndex(teamID)
	if i < 0 {
		return model.Athlete{}, false
	}
	if j := athleteIndex(s.teams[i].Athletes, athleteID); j >= 0 {
		return s.teams[i].Athletes[j], true
	}
	return model.Athlete{}, false
}

func (s *RosterStore) AddAthlete(teamID string, athlete model.NewAthlete) (model.Athlete, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.teamIndex(teamID)
	if i < 0 {
		return model.Athlete{}, false
	}
	created := athlete.WithID(s.newID())
	next := s.copyTeams()
	athletes := make([]model.Athlete, 0, len(next[i].Athletes)+1)
	athletes = append(athletes, next[i].Athletes...)
	next[i].Athletes = append(athletes, created)
	s.publish(next)
	return created, true
}

func (s *RosterStore) UpdateAthlete(teamID, athleteID string, patch model.AthletePatch) (model.Athlete, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.teamIndex(teamID)
	if i < 0 {
		return model.Athlete{}, false
	}
	j := athleteIndex(s.teams[i].Athletes, athleteID)
	if j < 0 {
		return model.Athlete{}, false
	}
	next := s.copyTeams()
	athletes := make([]model.Athlete, len(next[i].Athletes))
	copy(athletes, next[i].Athletes)
	athletes[j] = patch.Apply(athletes[j])
	next[i].Athletes = athletes
	s.publish(next)
	return athletes[j], true
}

func (s *RosterStore) DeleteAthlete(teamID, athleteID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.teamIndex(teamID)
	if i < 0 {
		return false
	}
	current := s.teams[i].Athletes
	j := athleteIndex(current, athleteID)
	if j < 0 {
		return false
	}
	next := s.copyTeams()
	athletes := make([]model.Athlete, 0, len(current)-1)
	athletes = append(athletes, current[:j]...)
	next[i].Athletes = append(athletes, current[j+1:]...)
	s.publish(next)
	return true
}

func (s *RosterStore) AddMatch(teamID string, match model.NewMatch) (model.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.teamIndex(teamID)
	if i < 0 {
		return model.Match{}, false
	}
	created := match.WithID(s.newID(), teamID)
	next := s.copyTeams()
	matches := make([]model.Match, 0, len(next[i].Matches)+1)
	matches = append(matches, next[i].Matches...)
	next[i].Matches = append(matches, created)
	s.publish(next)
	return created, true
}

func (s *RosterStore) UpdateMatch(teamID, matchID string, patch model.MatchPatch) (model.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.teamIndex(teamID)
	if i < 0 {
		return model.Match{}, false
	}
	j := matchIndex(s.teams[i].Matches, matchID)
	if j < 0 {
		return model.Match{}, false
	}
	next := s.copyTeams()
	matches := make([]model.Match, len(next[i].Matches))
	copy(matches, next[i].Matches)
	matches[j] = patch.Apply(matches[j])
	next[i].Matches = matches
	s.publish(next)
	return matches[j], true
}

func (s *RosterStore) DeleteMatch(teamID, matchID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.teamIndex(teamID)
	if i < 0 {
		return false
	}
	current := s.teams[i].Matches
	j := matchIndex(current, matchID)
	if j < 0 {
		return false
	}
	next := s.copyTeams()
	matches := make([]model.Match, 0, len(current)-1)
	matches = append(matches, current[:j]...)
	next[i].Matches = append(matches, current[j+1:]...)
	s.publish(next)
	return true
}

func (s *RosterStore) AllMatches() []model.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Match, len(s.matches))
	copy(out, s.matches)
	return out
}

func (s *RosterStore) UpcomingMatches(now time.Time) []model.Match {
	upcoming, _ := splitMatches(s.AllMatches(), now, s.location)
	return upcoming
}

func (s *RosterStore) PastMatches(now time.Time) []model.Match {
	_, past := splitMatches(s.AllMatches(), now, s.location)
	return past
}

func (s *RosterStore) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

// LastWriteError reports the most recent persistence failure, if any.
func (s *RosterStore) LastWriteError() error {
	return s.writer.LastError()
}

func (s *RosterStore) Close(ctx context.Context) error {
	err := s.writer.Close(ctx)
	if cerr := s.slot.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// publish must be called with mu held.
func (s *RosterStore) publish(next []model.Team) {
	s.teams = next
	s.matches = sortMatches(next, s.location)
	s.writer.Submit(next)
}

// copyTeams returns a new outer slice; the per-team collections are still
// shared and must be replaced, not edited.
func (s *RosterStore) copyTeams() []model.Team {
	next := make([]model.Team, len(s.teams))
	copy(next, s.teams)
	return next
}

func (s *RosterStore) teamIndex(teamID string) int {
	for i, t := range s.teams {
		if t.ID == teamID {
			return i
		}
	}
	return -1
}

func athleteIndex(athletes []model.Athlete, athleteID string) int {
	for i, a := range athletes {
		if a.ID == athleteID {
			return i
		}
	}
	return -1
}

func matchIndex(matches []model.Match, matchID string) int {
	for i, m := range matches {
		if m.ID == matchID {
			return i
		}
	}
	return -1
}
