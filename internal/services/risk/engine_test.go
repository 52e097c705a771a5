package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentra/internal/models"
)

func fixedClockEngine(cfg Config) *Engine {
	e := NewEngine(cfg)
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return at }
	return e
}

func TestScore_ShellCompanyNoSignals(t *testing.T) {
	engine := fixedClockEngine(DefaultConfig())

	a := engine.Score(Input{
		Profile: EntityProfile{ID: 1, Name: "Opal Holdings", Type: models.EntityTypeShellCompany},
	})

	// Type prior alone: the documented floor for shell companies.
	assert.Equal(t, 0.80, a.Score)
	assert.Equal(t, TierVeryHigh, a.Level)
	assert.Equal(t, BandHigh, a.Band)
	require.Len(t, a.Factors, 1)
	assert.Equal(t, FactorEntityType, a.Factors[0].Source)
	assert.Equal(t, CompletenessNone, a.Completeness)
}

func TestScore_UnclassifiedEntityFloor(t *testing.T) {
	engine := fixedClockEngine(DefaultConfig())

	a := engine.Score(Input{
		Profile: EntityProfile{ID: 2, Name: "???", Type: models.EntityType("mystery")},
	})

	// Unknown type normalizes to "other"; the score is its prior, never an
	// error and never undefined.
	assert.Equal(t, 0.20, a.Score)
	assert.Equal(t, TierLow, a.Level)
	require.Len(t, a.Factors, 1)
}

func TestScore_SanctionsDominance(t *testing.T) {
	engine := fixedClockEngine(DefaultConfig())

	a := engine.Score(Input{
		Profile: EntityProfile{ID: 3, Name: "Crown Trading", Type: models.EntityTypeOther},
		Evidence: []EvidenceItem{
			{Source: models.SourceSanctions, Content: "listed on consolidated sanctions list", Confidence: 0.9},
		},
		Completeness: CompletenessFull,
	})

	// The sanctions hit dominates: score close to 0.9 x 1.0, not averaged
	// down by the weak type prior.
	assert.InDelta(t, 0.9, a.Score, 0.05)
	assert.GreaterOrEqual(t, a.Score, 0.9)
	assert.Equal(t, TierVeryHigh, a.Level)
	assert.Equal(t, FactorEvidenceMatch, a.Factors[0].Source)
}

func TestScore_WeakNewsFloodSaturates(t *testing.T) {
	engine := fixedClockEngine(DefaultConfig())

	items := make([]EvidenceItem, 50)
	for i := range items {
		items[i] = EvidenceItem{
			Source:     models.SourceNews,
			Content:    "minor fraud allegation resurfaces",
			Confidence: 0.1,
		}
	}

	a := engine.Score(Input{
		Profile:      EntityProfile{ID: 4, Name: "Vero Corp", Type: models.EntityTypeCorporation},
		Evidence:     items,
		Completeness: CompletenessFull,
	})

	// Fifty low-confidence articles must not manufacture a critical score.
	assert.Less(t, a.Score, 0.8)
	assert.NotEqual(t, BandCritical, a.Band)
	// They still count for something beyond the bare prior.
	assert.Greater(t, a.Score, 0.45)
}

func TestScore_AITimeoutDegradesToPartial(t *testing.T) {
	engine := fixedClockEngine(DefaultConfig())

	a := engine.Score(Input{
		Profile: EntityProfile{ID: 5, Name: "Northbridge Ltd", Type: models.EntityTypeCorporation},
		Stats:   TransactionStats{VelocityPerWindow: 25},
		Evidence: []EvidenceItem{
			{Source: models.SourceNews, Content: "bribery probe widens", Confidence: 0.6},
		},
		Analysis:     nil, // AI call timed out
		Completeness: CompletenessPartial,
	})

	assert.Equal(t, CompletenessPartial, a.Completeness)
	for _, f := range a.Factors {
		assert.NotEqual(t, FactorAIFlag, f.Source, "timed-out AI call must contribute no factors")
	}
	// Transaction and evidence factors still scored.
	assert.Greater(t, a.Score, 0.5)
}

func TestScore_Idempotent(t *testing.T) {
	engine := fixedClockEngine(DefaultConfig())

	in := Input{
		Profile: EntityProfile{ID: 6, Name: "Meridian Fund", Type: models.EntityTypeIntermediary},
		Stats: TransactionStats{
			Count:              40,
			VelocityPerWindow:  14,
			ConcentrationRatio: 0.7,
			RoundNumberRatio:   0.5,
		},
		Evidence: []EvidenceItem{
			{Source: models.SourceRegistry, Content: "regulator enforcement notice", Confidence: 0.8},
			{Source: models.SourceNews, Content: "laundering allegations", Confidence: 0.4},
		},
		Analysis: &AIAnalysis{
			RiskIndicators: []RiskIndicator{{Description: "opaque ownership chain", Severity: 0.7}},
		},
		Completeness: CompletenessFull,
	}

	first := engine.Score(in)
	second := engine.Score(in)
	assert.Equal(t, first, second, "same snapshot must yield bit-identical output")
}

func TestScore_ExplanationOrdering(t *testing.T) {
	engine := fixedClockEngine(DefaultConfig())

	in := Input{
		Profile: EntityProfile{ID: 7, Name: "Paragon Group", Type: models.EntityTypeCorporation},
		Evidence: []EvidenceItem{
			// Both weigh 0.9: the tie breaks on factor source, then description.
			{Source: models.SourceSanctions, Content: "sanctions designation", Confidence: 0.9},
			{Source: models.SourceRegistry, Content: "regulator enforcement order", Confidence: 1.0},
		},
	}

	a := engine.Score(in)

	require.NotEmpty(t, a.Factors)
	for i := 1; i < len(a.Factors); i++ {
		prev, cur := a.Factors[i-1], a.Factors[i]
		if prev.Weight == cur.Weight {
			if prev.Source == cur.Source {
				assert.LessOrEqual(t, prev.Description, cur.Description)
			} else {
				assert.Less(t, prev.Source, cur.Source)
			}
		} else {
			assert.Greater(t, prev.Weight, cur.Weight)
		}
	}

	// Ordering is stable across repeated calls.
	again := engine.Score(in)
	assert.Equal(t, a.Factors, again.Factors)
}

func TestScore_MonotoneUnderExtraEvidence(t *testing.T) {
	engine := fixedClockEngine(DefaultConfig())

	base := Input{
		Profile: EntityProfile{ID: 8, Name: "Halcyon SA", Type: models.EntityTypeNonProfit},
		Evidence: []EvidenceItem{
			{Source: models.SourceNews, Content: "corruption inquiry", Confidence: 0.5},
		},
	}
	before := engine.Score(base).Score

	withMore := base
	withMore.Evidence = append(append([]EvidenceItem{}, base.Evidence...),
		EvidenceItem{Source: models.SourceManual, Content: "analyst note: nominee directors", Confidence: 0.3})
	after := engine.Score(withMore).Score

	assert.GreaterOrEqual(t, after, before)
}

func TestAssessment_Score10(t *testing.T) {
	a := Assessment{Score: 0.42}
	assert.InDelta(t, 4.2, a.Score10(), 1e-12)
}
