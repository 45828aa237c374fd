package models

import "time"

// Roll is a physical material unit tracked by the inventory.
// A roll is created once, soft-deleted at most once, and never mutated
// otherwise; DateRemoved nil means the roll is still in stock.
type Roll struct {
	ID          int64      `db:"id" json:"id"`
	Length      float64    `db:"length" json:"length"`
	Weight      float64    `db:"weight" json:"weight"`
	DateAdded   time.Time  `db:"date_added" json:"date_added"`
	DateRemoved *time.Time `db:"date_removed" json:"date_removed"`
}

// Removed reports whether the roll has been soft-deleted.
func (r *Roll) Removed() bool {
	return r != nil && r.DateRemoved != nil
}

// RollFilter constrains listing queries. Every bound is optional and
// inclusive; a nil bound imposes no constraint.
type RollFilter struct {
	LengthMin      *float64
	LengthMax      *float64
	WeightMin      *float64
	WeightMax      *float64
	DateAddedMin   *time.Time
	DateAddedMax   *time.Time
	DateRemovedMin *time.Time
	DateRemovedMax *time.Time
}

// RollStats is the aggregate computed over an inclusive date window.
// The added-derived fields cover rolls whose DateAdded falls in the window;
// the gap fields cover rolls whose DateRemoved falls in the window, with the
// gap expressed in fractional hours between addition and removal.
type RollStats struct {
	AddedCount   int     `json:"added_count"`
	RemovedCount int     `json:"removed_count"`
	AvgLength    float64 `json:"avg_length"`
	AvgWeight    float64 `json:"avg_weight"`
	MinLength    float64 `json:"min_length"`
	MaxLength    float64 `json:"max_length"`
	MinWeight    float64 `json:"min_weight"`
	MaxWeight    float64 `json:"max_weight"`
	TotalWeight  float64 `json:"total_weight"`
	MinGap       float64 `json:"min_gap"`
	MaxGap       float64 `json:"max_gap"`
}
