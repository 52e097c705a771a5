package risk

import (
	"sort"
	"time"
)

// Engine computes risk assessments. It holds no mutable state and is safe
// for concurrent use across entities.
type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine creates an engine over the given configuration. Zero-valued
// config sections fall back to the defaults.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg: cfg.withDefaults(),
		now: time.Now,
	}
}

// Score computes the assessment for one entity snapshot. It never fails:
// missing transactions, evidence, or AI analysis degrade to fewer factors,
// and the entity-type prior guarantees a defined floor.
func (e *Engine) Score(in Input) Assessment {
	factors := e.extractFactors(in)
	sortFactors(factors)

	score := aggregate(factors, e.cfg.CompanionGain)

	completeness := in.Completeness
	if completeness == "" {
		completeness = CompletenessNone
	}

	return Assessment{
		Score:        score,
		Level:        ClassifyTier(score),
		Band:         ClassifyBand(score * 10),
		Factors:      factors,
		Completeness: completeness,
		ComputedAt:   e.now().UTC(),
	}
}

// sortFactors orders the explanation: weight descending, ties broken by
// factor source then description so repeated runs return identical output.
// The engine returns the full list; truncation to top N is a presentation
// concern.
func sortFactors(factors []Factor) {
	sort.SliceStable(factors, func(i, j int) bool {
		if factors[i].Weight != factors[j].Weight {
			return factors[i].Weight > factors[j].Weight
		}
		if factors[i].Source != factors[j].Source {
			return factors[i].Source < factors[j].Source
		}
		return factors[i].Description < factors[j].Description
	})
}
