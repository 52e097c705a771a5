package risk

// Tier is the five-level label over the [0,1] score used by the entity
// views and filters.
type Tier string

const (
	TierVeryLow  Tier = "very_low"
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierVeryHigh Tier = "very_high"
)

// Band is the four-level label over the [0,10] scale used by reports.
type Band string

const (
	BandLow      Band = "low"
	BandMedium   Band = "medium"
	BandHigh     Band = "high"
	BandCritical Band = "critical"
)

// ClassifyTier maps a [0,1] score to its five-level tier. Intervals are
// closed-open with the final one closed, so boundary scores land in the
// higher tier: very_low [0,.2), low [.2,.4), medium [.4,.6), high [.6,.8),
// very_high [.8,1]. Out-of-range input is clamped, keeping the function
// total.
func ClassifyTier(score float64) Tier {
	score = clamp01(score)
	switch {
	case score >= 0.8:
		return TierVeryHigh
	case score >= 0.6:
		return TierHigh
	case score >= 0.4:
		return TierMedium
	case score >= 0.2:
		return TierLow
	default:
		return TierVeryLow
	}
}

// ClassifyBand maps a [0,10] score to its four-level band: low [0,4),
// medium [4,7), high [7,9), critical [9,10]. Boundary scores land in the
// higher band; out-of-range input is clamped.
func ClassifyBand(score10 float64) Band {
	if score10 < 0 {
		score10 = 0
	}
	if score10 > 10 {
		score10 = 10
	}
	switch {
	case score10 >= 9:
		return BandCritical
	case score10 >= 7:
		return BandHigh
	case score10 >= 4:
		return BandMedium
	default:
		return BandLow
	}
}
