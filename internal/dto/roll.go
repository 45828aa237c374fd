package dto

import "time"

// CreateRollRequest carries the payload for registering a new roll.
// Pointer fields distinguish "absent" from a literal zero.
type CreateRollRequest struct {
	Length *float64 `json:"length" validate:"required"`
	Weight *float64 `json:"weight" validate:"required"`
}

// StatsQuery is the parsed window for the stats endpoint.
type StatsQuery struct {
	StartDate time.Time
	EndDate   time.Time
}
