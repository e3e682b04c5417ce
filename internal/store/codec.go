package store

import (
	"encoding/json"
	"fmt"

	"roster-app/internal/model"
)

func encodeTeams(teams []model.Team) ([]byte, error) {
	if teams == nil {
		teams = []model.Team{}
	}
	data, err := json.Marshal(normalizeTeams(teams))
	if err != nil {
		return nil, fmt.Errorf("encode teams: %w", err)
	}
	return data, nil
}

func decodeTeams(data []byte) ([]model.Team, error) {
	var teams []model.Team
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	return normalizeTeams(teams), nil
}

// normalizeTeams replaces nil collections with empty ones so the document
// always carries arrays.
func normalizeTeams(teams []model.Team) []model.Team {
	out := make([]model.Team, len(teams))
	for i, t := range teams {
		if t.Athletes == nil {
			t.Athletes = []model.Athlete{}
		}
		if t.Matches == nil {
			t.Matches = []model.Match{}
		}
		out[i] = t
	}
	return out
}
