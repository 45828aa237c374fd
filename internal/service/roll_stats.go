package service

import "github.com/rollyard/roll-inventory-api/internal/models"

// computeRollStats aggregates the added and removed sets of a window into
// the flat stats record. When the added set is empty every added-derived
// field is 0, never NaN; likewise the gap fields when no removed roll
// carries both timestamps.
func computeRollStats(added, removed []models.Roll) models.RollStats {
	stats := models.RollStats{
		AddedCount:   len(added),
		RemovedCount: len(removed),
	}

	for i, roll := range added {
		if i == 0 {
			stats.MinLength = roll.Length
			stats.MaxLength = roll.Length
			stats.MinWeight = roll.Weight
			stats.MaxWeight = roll.Weight
		}
		if roll.Length < stats.MinLength {
			stats.MinLength = roll.Length
		}
		if roll.Length > stats.MaxLength {
			stats.MaxLength = roll.Length
		}
		if roll.Weight < stats.MinWeight {
			stats.MinWeight = roll.Weight
		}
		if roll.Weight > stats.MaxWeight {
			stats.MaxWeight = roll.Weight
		}
		stats.AvgLength += roll.Length
		stats.TotalWeight += roll.Weight
	}
	if stats.AddedCount > 0 {
		stats.AvgWeight = stats.TotalWeight / float64(stats.AddedCount)
		stats.AvgLength /= float64(stats.AddedCount)
	}

	first := true
	for _, roll := range removed {
		// The selection already guarantees date_removed; the date_added
		// presence check mirrors the gap definition exactly.
		if roll.DateRemoved == nil || roll.DateAdded.IsZero() {
			continue
		}
		gap := roll.DateRemoved.Sub(roll.DateAdded).Hours()
		if first {
			stats.MinGap = gap
			stats.MaxGap = gap
			first = false
			continue
		}
		if gap < stats.MinGap {
			stats.MinGap = gap
		}
		if gap > stats.MaxGap {
			stats.MaxGap = gap
		}
	}

	return stats
}
