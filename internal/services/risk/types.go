package risk

import (
	"time"

	"github.com/shopspring/decimal"

	"sentra/internal/models"
)

// FactorSource identifies which signal family produced a factor.
type FactorSource string

const (
	FactorEntityType         FactorSource = "entity_type"
	FactorTransactionPattern FactorSource = "transaction_pattern"
	FactorEvidenceMatch      FactorSource = "evidence_match"
	FactorAIFlag             FactorSource = "ai_flag"
)

// Factor is one weighted contributor to the composite score.
type Factor struct {
	Description string       `json:"description"`
	Weight      float64      `json:"weight"` // [0,1]
	Source      FactorSource `json:"source"`
}

// EntityProfile is the slice of an entity the engine needs.
type EntityProfile struct {
	ID          uint
	Name        string
	Type        models.EntityType
	Description string
	CreatedAt   time.Time
}

// TransactionStats summarizes an entity's transaction history. It is
// computed upstream (see services/network) so the engine stays free of
// data access.
type TransactionStats struct {
	Count                  int
	TotalSent              decimal.Decimal
	TotalReceived          decimal.Decimal
	DistinctCounterparties int
	// ConcentrationRatio is the share of total volume attributable to the
	// single largest counterparty, in [0,1].
	ConcentrationRatio float64
	// RoundNumberRatio is the share of transactions at suspiciously round
	// amounts or just under the reporting threshold, in [0,1].
	RoundNumberRatio float64
	// VelocityPerWindow is the maximum transaction count observed in any
	// rolling window (window length is an analyzer setting).
	VelocityPerWindow int
	// CircularFlow reports whether some counterparty appears as both sender
	// and receiver against this entity.
	CircularFlow bool
}

// EvidenceItem is one normalized piece of external evidence.
type EvidenceItem struct {
	Source     models.EvidenceSource
	Content    string
	Confidence float64 // [0,1]; clamped defensively by the engine
}

// RiskIndicator is one explicit risk flag from the AI analysis document.
type RiskIndicator struct {
	Description string  `json:"description"`
	Severity    float64 `json:"severity"` // [0,1]
}

// AIAnalysis is the structured analysis document returned by the AI
// collaborator. Every field is optional; a nil *AIAnalysis means the call
// failed or was never made, which is "no signal", never "no risk".
type AIAnalysis struct {
	Summary             string          `json:"summary,omitempty"`
	RiskIndicators      []RiskIndicator `json:"risk_indicators,omitempty"`
	Anomalies           []string        `json:"anomalies,omitempty"`
	TransactionPatterns []string        `json:"transaction_patterns,omitempty"`
}

// Completeness records how much of the external evidence gathering
// succeeded before scoring. It qualifies how much trust to place in the
// number; it does not change the number.
type Completeness string

const (
	CompletenessFull    Completeness = "full"
	CompletenessPartial Completeness = "partial"
	CompletenessNone    Completeness = "none"
)

// Input is one scoring snapshot.
type Input struct {
	Profile      EntityProfile
	Stats        TransactionStats
	Evidence     []EvidenceItem
	Analysis     *AIAnalysis
	Completeness Completeness
}

// Assessment is the engine's output.
type Assessment struct {
	Score        float64      `json:"score"` // [0,1]
	Level        Tier         `json:"level"`
	Band         Band         `json:"band"`
	Factors      []Factor     `json:"factors"` // weight desc, ties by source then description
	Completeness Completeness `json:"completeness"`
	ComputedAt   time.Time    `json:"computed_at"`
}

// Score10 returns the composite score on the [0,10] scale used by reports.
func (a Assessment) Score10() float64 {
	return a.Score * 10
}
