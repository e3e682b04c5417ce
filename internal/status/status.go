// Package status derives athlete compliance statuses and team notification badges.
package status

import (
	"strings"
	"time"

	"roster-app/internal/model"

	"github.com/jonboulle/clockwork"
)

// WarnHorizon is how far ahead an expiry date starts producing a warning.
const WarnHorizon = 30 * 24 * time.Hour

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"02-01-2006",
}

type Engine struct {
	clock clockwork.Clock
}

func NewEngine(clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{clock: clock}
}

func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// ClassifyAthlete returns miss when a required field is empty, otherwise the
// worst of the medical and self-certification expiry checks. Fields are not
// trimmed here; a blank but non-empty value counts as present.
func (e *Engine) ClassifyAthlete(a model.Athlete) model.StatusType {
	required := []string{a.FirstName, a.LastName, a.MedicalCertExpiry, a.Phone, a.BirthDate}
	for _, field := range required {
		if field == "" {
			return model.StatusMiss
		}
	}

	now := e.clock.Now()
	medical := checkDate(a.MedicalCertExpiry, now)
	selfCert := checkDate(a.SelfCertExpiry, now)

	if medical == model.StatusAlt || selfCert == model.StatusAlt {
		return model.StatusAlt
	}
	if medical == model.StatusWarn || selfCert == model.StatusWarn {
		return model.StatusWarn
	}
	return model.StatusOK
}

// TeamBadges counts athletes needing attention. Missing data counts as a warning.
func (e *Engine) TeamBadges(team model.Team) model.NotificationBadge {
	var badge model.NotificationBadge
	for _, a := range team.Athletes {
		switch e.ClassifyAthlete(a) {
		case model.StatusAlt:
			badge.Alt++
		case model.StatusWarn, model.StatusMiss:
			badge.Warn++
		}
	}
	return badge
}

// checkDate treats an unparseable date as expired.
func checkDate(value string, now time.Time) model.StatusType {
	if value == "" {
		return model.StatusOK
	}
	date, ok := ParseDate(value)
	if !ok {
		return model.StatusAlt
	}
	if date.Before(now) {
		return model.StatusAlt
	}
	if date.Before(now.Add(WarnHorizon)) {
		return model.StatusWarn
	}
	return model.StatusOK
}

// ParseDate accepts ISO dates (read as UTC midnight), RFC 3339 timestamps and
// day-first dates as displayed in the roster.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a stored date as DD-MM-YYYY, or returns it unchanged when it
// cannot be parsed.
func FormatDate(value string) string {
	parsed, ok := ParseDate(value)
	if !ok {
		return value
	}
	return parsed.Format("02-01-2006")
}
