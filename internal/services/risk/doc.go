/*
Package risk implements the risk scoring engine.

The engine is a pure function of its inputs: given the same entity profile,
transaction statistics, evidence list, and AI analysis document, it returns
the same score, tier, and factor list. All thresholds, priors, and source
reliability multipliers come from an explicit Config; nothing is read from
ambient state.

Usage:

	engine := risk.NewEngine(risk.DefaultConfig())

	assessment := engine.Score(risk.Input{
	    Profile:      profile,
	    Stats:        stats,
	    Evidence:     items,
	    Analysis:     analysis, // may be nil
	    Completeness: risk.CompletenessPartial,
	})

Scoring properties:

  - Bounded: the composite score is always in [0,1] regardless of how many
    factors fired.
  - Monotone: adding a factor never decreases the score.
  - Dominance-preserving: a single strong factor alone yields a score equal
    to its own weight; a flood of weak factors saturates well below the
    maximum.
  - Total: an entity with zero transactions and zero evidence still scores
    (the entity-type prior alone).

The aggregation curve is

	score = 1 - (1-maxW) * Π (1 - g*wᵢ)

over the remaining factors, where g is Config.CompanionGain. Each additional
factor consumes a g·wᵢ share of the remaining headroom, which gives the
diminishing marginal contribution the properties above require.
*/
package risk
