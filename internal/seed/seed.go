// Package seed imports roster fixtures from a YAML file.
package seed

import (
	"fmt"
	"os"
	"strings"

	"roster-app/internal/model"
	"roster-app/internal/store"

	"gopkg.in/yaml.v3"
)

// File is the fixture layout: a list of teams with their athletes and matches.
// Keys match the stored roster document (membership number is "matricola").
// Ids in the file are ignored; the store assigns fresh ones.
type File struct {
	Teams []model.Team `yaml:"teams"`
}

func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse seed: %w", err)
	}
	for i, t := range f.Teams {
		if strings.TrimSpace(t.Name) == "" {
			return File{}, fmt.Errorf("seed team %d has no name", i+1)
		}
	}
	return f, nil
}

func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Apply adds every fixture team to s and returns how many teams were created.
func Apply(s store.Store, f File) int {
	created := 0
	for _, t := range f.Teams {
		team := s.AddTeam(strings.TrimSpace(t.Name))
		for _, a := range t.Athletes {
			s.AddAthlete(team.ID, newAthlete(a))
		}
		for _, m := range t.Matches {
			s.AddMatch(team.ID, model.NewMatch{
				Date:            m.Date,
				Time:            m.Time,
				HomeTeam:        m.HomeTeam,
				AwayTeam:        m.AwayTeam,
				Location:        m.Location,
				LocationAddress: m.LocationAddress,
				Championship:    m.Championship,
				Notes:           m.Notes,
			})
		}
		created++
	}
	return created
}

func newAthlete(a model.Athlete) model.NewAthlete {
	return model.NewAthlete{
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		MedicalCertExpiry: a.MedicalCertExpiry,
		Phone:             a.Phone,
		ShirtSize:         a.ShirtSize,
		ShortsSize:        a.ShortsSize,
		Role:              a.Role,
		SelfCertExpiry:    a.SelfCertExpiry,
		IDCardNumber:      a.IDCardNumber,
		IDCardImage:       a.IDCardImage,
		FiscalCode:        a.FiscalCode,
		FiscalCodeImage:   a.FiscalCodeImage,
		JerseyNumber:      a.JerseyNumber,
		MembershipNumber:  a.MembershipNumber,
		BirthDate:         a.BirthDate,
		IsMember:          a.IsMember,
		HasPaid:           a.HasPaid,
	}
}
