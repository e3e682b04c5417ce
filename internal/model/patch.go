package model

// NewAthlete carries the fields of an athlete that does not have an id yet.
type NewAthlete struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	MedicalCertExpiry string `json:"medicalCertExpiry,omitempty"`
	Phone             string `json:"phone,omitempty"`
	ShirtSize         string `json:"shirtSize,omitempty"`
	ShortsSize        string `json:"shortsSize,omitempty"`
	Role              string `json:"role,omitempty"`
	SelfCertExpiry    string `json:"selfCertExpiry,omitempty"`
	IDCardNumber      string `json:"idCardNumber,omitempty"`
	IDCardImage       string `json:"idCardImage,omitempty"`
	FiscalCode        string `json:"fiscalCode,omitempty"`
	FiscalCodeImage   string `json:"fiscalCodeImage,omitempty"`
	JerseyNumber      string `json:"jerseyNumber,omitempty"`
	MembershipNumber  string `json:"matricola,omitempty"`
	BirthDate         string `json:"birthDate,omitempty"`
	IsMember          bool   `json:"isMember"`
	HasPaid           bool   `json:"hasPaid"`
}

func (n NewAthlete) WithID(id string) Athlete {
	return Athlete{
		ID:                id,
		FirstName:         n.FirstName,
		LastName:          n.LastName,
		MedicalCertExpiry: n.MedicalCertExpiry,
		Phone:             n.Phone,
		ShirtSize:         n.ShirtSize,
		ShortsSize:        n.ShortsSize,
		Role:              n.Role,
		SelfCertExpiry:    n.SelfCertExpiry,
		IDCardNumber:      n.IDCardNumber,
		IDCardImage:       n.IDCardImage,
		FiscalCode:        n.FiscalCode,
		FiscalCodeImage:   n.FiscalCodeImage,
		JerseyNumber:      n.JerseyNumber,
		MembershipNumber:  n.MembershipNumber,
		BirthDate:         n.BirthDate,
		IsMember:          n.IsMember,
		HasPaid:           n.HasPaid,
	}
}

// NewMatch carries the fields of a match before it gets an id and an owning team.
type NewMatch struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	HomeTeam        string `json:"homeTeam"`
	AwayTeam        string `json:"awayTeam"`
	Location        string `json:"location"`
	LocationAddress string `json:"locationAddress,omitempty"`
	Championship    string `json:"championship,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func (n NewMatch) WithID(id, teamID string) Match {
	return Match{
		ID:              id,
		TeamID:          teamID,
		Date:            n.Date,
		Time:            n.Time,
		HomeTeam:        n.HomeTeam,
		AwayTeam:        n.AwayTeam,
		Location:        n.Location,
		LocationAddress: n.LocationAddress,
		Championship:    n.Championship,
		Notes:           n.Notes,
	}
}

// Patch types hold optional replacements; a nil field keeps the current value.

type TeamPatch struct {
	Name *string `json:"name,omitempty"`
}

func (p TeamPatch) Apply(t Team) Team {
	if p.Name != nil {
		t.Name = *p.Name
	}
	return t
}

type AthletePatch struct {
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	MedicalCertExpiry *string `json:"medicalCertExpiry,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	ShirtSize         *string `json:"shirtSize,omitempty"`
	ShortsSize        *string `json:"shortsSize,omitempty"`
	Role              *string `json:"role,omitempty"`
	SelfCertExpiry    *string `json:"selfCertExpiry,omitempty"`
	IDCardNumber      *string `json:"idCardNumber,omitempty"`
	IDCardImage       *string `json:"idCardImage,omitempty"`
	FiscalCode        *string `json:"fiscalCode,omitempty"`
	FiscalCodeImage   *string `json:"fiscalCodeImage,omitempty"`
	JerseyNumber      *string `json:"jerseyNumber,omitempty"`
	MembershipNumber  *string `json:"matricola,omitempty"`
	BirthDate         *string `json:"birthDate,omitempty"`
	IsMember          *bool   `json:"isMember,omitempty"`
	HasPaid           *bool   `json:"hasPaid,omitempty"`
}

func (p AthletePatch) Apply(a Athlete) Athlete {
	setString(&a.FirstName, p.FirstName)
	setString(&a.LastName, p.LastName)
	setString(&a.MedicalCertExpiry, p.MedicalCertExpiry)
	setString(&a.Phone, p.Phone)
	setString(&a.ShirtSize, p.ShirtSize)
	setString(&a.ShortsSize, p.ShortsSize)
	setString(&a.Role, p.Role)
	setString(&a.SelfCertExpiry, p.SelfCertExpiry)
	setString(&a.IDCardNumber, p.IDCardNumber)
	setString(&a.IDCardImage, p.IDCardImage)
	setString(&a.FiscalCode, p.FiscalCode)
	setString(&a.FiscalCodeImage, p.FiscalCodeImage)
	setString(&a.JerseyNumber, p.JerseyNumber)
	setString(&a.MembershipNumber, p.MembershipNumber)
	setString(&a.BirthDate, p.BirthDate)
	if p.IsMember != nil {
		a.IsMember = *p.IsMember
	}
	if p.HasPaid != nil {
		a.HasPaid = *p.HasPaid
	}
	return a
}

type MatchPatch struct {
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	HomeTeam        *string `json:"homeTeam,omitempty"`
	AwayTeam        *string `json:"awayTeam,omitempty"`
	Location        *string `json:"location,omitempty"`
	LocationAddress *string `json:"locationAddress,omitempty"`
	Championship    *string `json:"championship,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

func (p MatchPatch) Apply(m Match) Match {
	setString(&m.Date, p.Date)
	setString(&m.Time, p.Time)
	setString(&m.HomeTeam, p.HomeTeam)
	setString(&m.AwayTeam, p.AwayTeam)
	setString(&m.Location, p.Location)
	setString(&m.LocationAddress, p.LocationAddress)
	setString(&m.Championship, p.Championship)
	setString(&m.Notes, p.Notes)
	return m
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
