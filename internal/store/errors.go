package store

import "errors"

// ErrSlotEmpty is returned by a Slot that has never been written.
var ErrSlotEmpty = errors.New("slot is empty")

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrAthleteNotFound = errors.New("athlete not found")
	ErrMatchNotFound   = errors.New("match not found")
)
