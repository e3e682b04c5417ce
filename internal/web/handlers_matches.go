package web

import (
	"net/http"

	"roster-app/internal/model"
	"roster-app/internal/store"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleMatchesList(w http.ResponseWriter, r *http.Request) {
	window, err := parseMatchWindow(r.URL.Query().Get("when"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var matches []model.Match
	switch window {
	case windowUpcoming:
		matches = s.store.UpcomingMatches(s.engine.Now())
	case windowPast:
		matches = s.store.PastMatches(s.engine.Now())
	default:
		matches = s.store.AllMatches()
	}
	writeJSON(w, http.StatusOK, s.matchViews(matches))
}

func (s *Server) handleTeamMatches(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	if _, ok := s.store.GetTeam(teamID); !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	matches := []model.Match{}
	for _, m := range s.store.AllMatches() {
		if m.TeamID == teamID {
			matches = append(matches, m)
		}
	}
	writeJSON(w, http.StatusOK, s.matchViews(matches))
}

func (s *Server) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	var req model.NewMatch
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := validateNewMatch(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	match, ok := s.store.AddMatch(chi.URLParam(r, "teamID"), req)
	if !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, match)
}

func (s *Server) handleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	var patch model.MatchPatch
	if err := readJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	teamID, matchID := chi.URLParam(r, "teamID"), chi.URLParam(r, "matchID")
	if _, ok := s.store.GetTeam(teamID); !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	match, ok := s.store.UpdateMatch(teamID, matchID, patch)
	if !ok {
		writeNotFound(w, store.ErrMatchNotFound)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleMatchDelete(w http.ResponseWriter, r *http.Request) {
	teamID, matchID := chi.URLParam(r, "teamID"), chi.URLParam(r, "matchID")
	if _, ok := s.store.GetTeam(teamID); !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	if !s.store.DeleteMatch(teamID, matchID) {
		writeNotFound(w, store.ErrMatchNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
