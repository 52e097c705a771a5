package models

import "time"

// EvidenceSource tags where a piece of evidence came from.
type EvidenceSource string

const (
	SourceRegistry   EvidenceSource = "registry"
	SourceNews       EvidenceSource = "news"
	SourceSanctions  EvidenceSource = "sanctions_list"
	SourceAIAnalysis EvidenceSource = "ai_analysis"
	SourceManual     EvidenceSource = "manual"
)

// EvidenceSources lists every valid evidence source tag.
var EvidenceSources = []EvidenceSource{
	SourceRegistry,
	SourceNews,
	SourceSanctions,
	SourceAIAnalysis,
	SourceManual,
}

// Evidence is a single piece of external information about an entity.
// Rows are append-only: repeated gathering accumulates items per source,
// it never overwrites them.
type Evidence struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	EntityID   uint           `gorm:"not null;index" json:"entity_id"`
	Source     EvidenceSource `gorm:"type:varchar(32);not null" json:"source"`
	Content    string         `gorm:"type:text" json:"content"`
	Confidence float64        `gorm:"not null;default:0" json:"confidence"` // [0,1]
	CreatedAt  time.Time      `json:"created_at"`
}
