package slides

// HeatmapDays is the number of day cells in the year grid.
const HeatmapDays = 365

// Tier is a discrete heatmap intensity.
type Tier int

// Intensity tiers, from no activity to six hours or more.
const (
	TierNone Tier = iota
	TierLow
	TierMedium
	TierHigh
	TierMax
)

// TierCount is the number of tiers.
const TierCount = 5

// TierFor maps a day's seconds to its tier using fixed hour thresholds.
func TierFor(seconds int64) Tier {
	switch {
	case seconds <= 0:
		return TierNone
	case seconds < 3600:
		return TierLow
	case seconds < 3*3600:
		return TierMedium
	case seconds < 6*3600:
		return TierHigh
	default:
		return TierMax
	}
}
