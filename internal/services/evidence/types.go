package evidence

import (
	"sentra/internal/models"
	"sentra/internal/services/risk"
)

// Item is one normalized piece of gathered evidence.
type Item struct {
	Source     models.EvidenceSource `json:"source"`
	Content    string                `json:"content"`
	Confidence float64               `json:"confidence"`
}

// RiskItem converts the item into the risk engine's input shape.
func (i Item) RiskItem() risk.EvidenceItem {
	return risk.EvidenceItem{
		Source:     i.Source,
		Content:    i.Content,
		Confidence: i.Confidence,
	}
}

// Record converts the item into a persistable evidence row.
func (i Item) Record(entityID uint) models.Evidence {
	return models.Evidence{
		EntityID:   entityID,
		Source:     i.Source,
		Content:    i.Content,
		Confidence: i.Confidence,
	}
}

// Result is the outcome of one gathering round.
type Result struct {
	Items []Item
	// Analysis is the structured AI document, nil when the AI source is
	// unconfigured or failed.
	Analysis     *risk.AIAnalysis
	Succeeded    []models.EvidenceSource
	Failed       []models.EvidenceSource
	Completeness risk.Completeness
}

// RiskItems returns all gathered items in the risk engine's input shape.
func (r Result) RiskItems() []risk.EvidenceItem {
	items := make([]risk.EvidenceItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, it.RiskItem())
	}
	return items
}

// Records returns all gathered items as persistable evidence rows.
func (r Result) Records(entityID uint) []models.Evidence {
	records := make([]models.Evidence, 0, len(r.Items))
	for _, it := range r.Items {
		records = append(records, it.Record(entityID))
	}
	return records
}
