package web

import (
	"net/http"

	"roster-app/internal/model"
	"roster-app/internal/store"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAthleteCreate(w http.ResponseWriter, r *http.Request) {
	var req model.NewAthlete
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := validateNewAthlete(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	athlete, ok := s.store.AddAthlete(chi.URLParam(r, "teamID"), req)
	if !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, s.engine.AthleteReport(athlete))
}

func (s *Server) handleAthleteShow(w http.ResponseWriter, r *http.Request) {
	athlete, ok := s.lookupAthlete(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.AthleteReport(athlete))
}

func (s *Server) handleAthleteStatus(w http.ResponseWriter, r *http.Request) {
	athlete, ok := s.lookupAthlete(w, r)
	if !ok {
		return
	}
	st := s.engine.ClassifyAthlete(athlete)
	writeJSON(w, http.StatusOK, StatusView{AthleteID: athlete.ID, Status: st, Label: st.Label()})
}

func (s *Server) handleAthleteUpdate(w http.ResponseWriter, r *http.Request) {
	var patch model.AthletePatch
	if err := readJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	teamID, athleteID := chi.URLParam(r, "teamID"), chi.URLParam(r, "athleteID")
	if _, ok := s.store.GetTeam(teamID); !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	athlete, ok := s.store.UpdateAthlete(teamID, athleteID, patch)
	if !ok {
		writeNotFound(w, store.ErrAthleteNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.AthleteReport(athlete))
}

func (s *Server) handleAthleteDelete(w http.ResponseWriter, r *http.Request) {
	teamID, athleteID := chi.URLParam(r, "teamID"), chi.URLParam(r, "athleteID")
	if _, ok := s.store.GetTeam(teamID); !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return
	}
	if !s.store.DeleteAthlete(teamID, athleteID) {
		writeNotFound(w, store.ErrAthleteNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookupAthlete(w http.ResponseWriter, r *http.Request) (model.Athlete, bool) {
	teamID := chi.URLParam(r, "teamID")
	if _, ok := s.store.GetTeam(teamID); !ok {
		writeNotFound(w, store.ErrTeamNotFound)
		return model.Athlete{}, false
	}
	athlete, ok := s.store.GetAthlete(teamID, chi.URLParam(r, "athleteID"))
	if !ok {
		writeNotFound(w, store.ErrAthleteNotFound)
		return model.Athlete{}, false
	}
	return athlete, true
}
