package risk

import "sentra/internal/models"

// Config holds every constant the engine uses. It is passed explicitly into
// NewEngine so tests and callers can pin the thresholds they need.
type Config struct {
	// TypePriors assigns each declared entity type its base suspicion
	// weight. The defaults are monotone in the documented ordering:
	// shell_company > financial_intermediary > corporation > non_profit >
	// individual > other.
	TypePriors map[models.EntityType]float64

	// SourceReliability multiplies evidence confidence per source.
	SourceReliability map[models.EvidenceSource]float64

	// CompanionGain is the g in the aggregation curve
	// 1 - (1-maxW)*Π(1-g*wᵢ): the share of remaining headroom each
	// non-dominant factor consumes.
	CompanionGain float64

	// Transaction-pattern thresholds. A pattern fires only when its
	// statistic exceeds the threshold; its weight then grows proportionally
	// with the statistic, capped at 1.
	VelocityThreshold      int     // transactions per rolling window
	AsymmetryThreshold     float64 // |sent-received|/(sent+received)
	ConcentrationThreshold float64 // largest counterparty volume share
	RoundNumberThreshold   float64 // round/structured amount share

	// Base weights per transaction pattern, applied at the threshold point.
	VelocityWeight      float64
	AsymmetryWeight     float64
	ConcentrationWeight float64
	StructuringWeight   float64
	CircularWeight      float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		TypePriors: map[models.EntityType]float64{
			models.EntityTypeShellCompany: 0.80,
			models.EntityTypeIntermediary: 0.60,
			models.EntityTypeCorporation:  0.45,
			models.EntityTypeNonProfit:    0.40,
			models.EntityTypeIndividual:   0.30,
			models.EntityTypeOther:        0.20,
		},
		SourceReliability: map[models.EvidenceSource]float64{
			models.SourceSanctions:  1.00,
			models.SourceRegistry:   0.90,
			models.SourceNews:       0.70,
			models.SourceAIAnalysis: 0.60,
			models.SourceManual:     0.50,
		},
		CompanionGain:          0.15,
		VelocityThreshold:      10,
		AsymmetryThreshold:     0.75,
		ConcentrationThreshold: 0.60,
		RoundNumberThreshold:   0.30,
		VelocityWeight:         0.50,
		AsymmetryWeight:        0.45,
		ConcentrationWeight:    0.50,
		StructuringWeight:      0.55,
		CircularWeight:         0.70,
	}
}

// withDefaults fills any zero-valued section so a partially built Config
// cannot produce a degenerate engine.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TypePriors == nil {
		c.TypePriors = def.TypePriors
	}
	if c.SourceReliability == nil {
		c.SourceReliability = def.SourceReliability
	}
	if c.CompanionGain <= 0 {
		c.CompanionGain = def.CompanionGain
	}
	if c.VelocityThreshold <= 0 {
		c.VelocityThreshold = def.VelocityThreshold
	}
	if c.AsymmetryThreshold <= 0 {
		c.AsymmetryThreshold = def.AsymmetryThreshold
	}
	if c.ConcentrationThreshold <= 0 {
		c.ConcentrationThreshold = def.ConcentrationThreshold
	}
	if c.RoundNumberThreshold <= 0 {
		c.RoundNumberThreshold = def.RoundNumberThreshold
	}
	if c.VelocityWeight <= 0 {
		c.VelocityWeight = def.VelocityWeight
	}
	if c.AsymmetryWeight <= 0 {
		c.AsymmetryWeight = def.AsymmetryWeight
	}
	if c.ConcentrationWeight <= 0 {
		c.ConcentrationWeight = def.ConcentrationWeight
	}
	if c.StructuringWeight <= 0 {
		c.StructuringWeight = def.StructuringWeight
	}
	if c.CircularWeight <= 0 {
		c.CircularWeight = def.CircularWeight
	}
	return c
}
