package web

import (
	"net/http"
	"strings"

	"roster-app/internal/model"
	"roster-app/internal/store"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleTeamsList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Summarize(s.store.Teams()))
}

func (s *Server) handleTeamCreate(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	team := s.store.AddTeam(name)
	writeJSON(w, http.StatusCreated, s.teamView(team))
}

func (s *Server) handleTeamShow(w http.ResponseWriter, r *http.Request) {
	team, ok := s.store.GetTeam(chi.URLParam(r, "teamID"))
	if !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.teamView(team))
}

func (s *Server) handleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	var patch model.TeamPatch
	if err := readJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name must not be empty")
			return
		}
		patch.Name = &name
	}
	team, ok := s.store.UpdateTeam(chi.URLParam(r, "teamID"), patch)
	if !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.teamView(team))
}

func (s *Server) handleTeamDelete(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteTeam(chi.URLParam(r, "teamID")) {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) teamView(team model.Team) TeamView {
	return TeamView{
		ID:       team.ID,
		Name:     team.Name,
		Athletes: s.engine.AthleteReports(team),
		Matches:  team.Matches,
		Badge:    s.engine.TeamBadges(team),
	}
}
