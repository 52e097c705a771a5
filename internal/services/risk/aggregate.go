package risk

// aggregate combines the factor list into one composite score in [0,1].
//
// The curve is dominance-plus-saturating-companions: the strongest factor
// sets the base, and every other factor consumes a gain*weight share of the
// remaining headroom:
//
//	score = 1 - (1-maxW) * Π (1 - gain*wᵢ)   over the non-dominant factors
//
// Consequences, each pinned by a test:
//   - a single factor scores exactly its own weight (no wash-out),
//   - adding any factor with weight >= 0 never lowers the score,
//   - no factor count can push the score past 1,
//   - many weak factors saturate instead of accumulating linearly.
//
// An empty list scores 0; in practice the entity-type prior guarantees at
// least one factor.
func aggregate(factors []Factor, gain float64) float64 {
	if len(factors) == 0 {
		return 0
	}

	maxIdx := 0
	for i, f := range factors {
		if clamp01(f.Weight) > clamp01(factors[maxIdx].Weight) {
			maxIdx = i
		}
	}
	maxW := clamp01(factors[maxIdx].Weight)

	headroom := 1.0
	for i, f := range factors {
		if i == maxIdx {
			continue
		}
		headroom *= 1 - gain*clamp01(f.Weight)
	}

	return clamp01(1 - (1-maxW)*headroom)
}
