package report

import (
	"time"

	"sentra/internal/models"
	"sentra/internal/services/risk"
)

// TopFactorCount caps how many factors a dossier lists. The engine
// returns the full explanation; the dossier shows the leaders.
const TopFactorCount = 10

// Dossier is the rendered report payload.
type Dossier struct {
	ReportID    string          `json:"report_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Entity      EntitySection   `json:"entity"`
	Assessment  *RiskSection    `json:"assessment,omitempty"`
	Evidence    []SourceGroup   `json:"evidence"`
	Activity    ActivitySection `json:"activity"`
}

type EntitySection struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Type        models.EntityType `json:"type"`
	Description string            `json:"description,omitempty"`
	FirstSeen   time.Time         `json:"first_seen"`
}

type RiskSection struct {
	Score        float64       `json:"score"`    // [0,1]
	Score10      float64       `json:"score_10"` // [0,10]
	Level        string        `json:"level"`
	Band         string        `json:"band"`
	Completeness string        `json:"completeness"`
	TopFactors   []risk.Factor `json:"top_factors"`
	LastUpdated  time.Time     `json:"last_updated"`
}

type SourceGroup struct {
	Source models.EvidenceSource `json:"source"`
	Items  []EvidenceEntry       `json:"items"`
}

type EvidenceEntry struct {
	Content    string    `json:"content"`
	Confidence float64   `json:"confidence"`
	AddedAt    time.Time `json:"added_at"`
}

type ActivitySection struct {
	TransactionCount       int    `json:"transaction_count"`
	TotalSent              string `json:"total_sent"`
	TotalReceived          string `json:"total_received"`
	DistinctCounterparties int    `json:"distinct_counterparties"`
	CircularFlow           bool   `json:"circular_flow"`
}
