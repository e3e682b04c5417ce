package model

import "strings"

type StatusType string

const (
	StatusOK   StatusType = "ok"
	StatusMiss StatusType = "miss"
	StatusWarn StatusType = "warn"
	StatusAlt  StatusType = "alt"
)

func (s StatusType) Valid() bool {
	switch s {
	case StatusOK, StatusMiss, StatusWarn, StatusAlt:
		return true
	}
	return false
}

// Label is the short badge text shown next to an athlete.
func (s StatusType) Label() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusMiss:
		return "MISS"
	case StatusWarn:
		return "WARN"
	case StatusAlt:
		return "ALT!"
	}
	return ""
}

type Athlete struct {
	ID                string `json:"id" yaml:"id"`
	FirstName         string `json:"firstName" yaml:"firstName"`
	LastName          string `json:"lastName" yaml:"lastName"`
	MedicalCertExpiry string `json:"medicalCertExpiry,omitempty" yaml:"medicalCertExpiry,omitempty"`
	Phone             string `json:"phone,omitempty" yaml:"phone,omitempty"`
	ShirtSize         string `json:"shirtSize,omitempty" yaml:"shirtSize,omitempty"`
	ShortsSize        string `json:"shortsSize,omitempty" yaml:"shortsSize,omitempty"`
	Role              string `json:"role,omitempty" yaml:"role,omitempty"`
	SelfCertExpiry    string `json:"selfCertExpiry,omitempty" yaml:"selfCertExpiry,omitempty"`
	IDCardNumber      string `json:"idCardNumber,omitempty" yaml:"idCardNumber,omitempty"`
	IDCardImage       string `json:"idCardImage,omitempty" yaml:"idCardImage,omitempty"`
	FiscalCode        string `json:"fiscalCode,omitempty" yaml:"fiscalCode,omitempty"`
	FiscalCodeImage   string `json:"fiscalCodeImage,omitempty" yaml:"fiscalCodeImage,omitempty"`
	JerseyNumber      string `json:"jerseyNumber,omitempty" yaml:"jerseyNumber,omitempty"`
	MembershipNumber  string `json:"matricola,omitempty" yaml:"matricola,omitempty"`
	BirthDate         string `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	IsMember          bool   `json:"isMember" yaml:"isMember"`
	HasPaid           bool   `json:"hasPaid" yaml:"hasPaid"`
}

func (a Athlete) FullName() string {
	first := strings.TrimSpace(a.FirstName)
	last := strings.TrimSpace(a.LastName)
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}

type Match struct {
	ID              string `json:"id" yaml:"id"`
	TeamID          string `json:"teamId" yaml:"teamId"`
	Date            string `json:"date" yaml:"date"`
	Time            string `json:"time" yaml:"time"`
	HomeTeam        string `json:"homeTeam" yaml:"homeTeam"`
	AwayTeam        string `json:"awayTeam" yaml:"awayTeam"`
	Location        string `json:"location" yaml:"location"`
	LocationAddress string `json:"locationAddress,omitempty" yaml:"locationAddress,omitempty"`
	Championship    string `json:"championship,omitempty" yaml:"championship,omitempty"`
	Notes           string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type Team struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Athletes []Athlete `json:"athletes" yaml:"athletes"`
	Matches  []Match   `json:"matches" yaml:"matches"`
}

// Clone returns a copy of the team that shares no slices with t.
func (t Team) Clone() Team {
	out := t
	out.Athletes = make([]Athlete, len(t.Athletes))
	copy(out.Athletes, t.Athletes)
	out.Matches = make([]Match, len(t.Matches))
	copy(out.Matches, t.Matches)
	return out
}

func CloneTeams(teams []Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = t.Clone()
	}
	return out
}

type NotificationBadge struct {
	Warn int `json:"warn"`
	Alt  int `json:"alt"`
}
