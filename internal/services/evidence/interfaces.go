package evidence

import (
	"context"

	"sentra/internal/models"
	"sentra/internal/services/risk"
)

// Source is one external lookup backend.
type Source interface {
	Name() models.EvidenceSource
	Lookup(ctx context.Context, entity *models.Entity) ([]Item, error)
}

// Analyzer produces a structured AI assessment of an entity given a
// digest of its observed activity.
type Analyzer interface {
	Analyze(ctx context.Context, entity *models.Entity, activity string) (*risk.AIAnalysis, error)
}

// Gatherer runs all configured sources for an entity.
type Gatherer interface {
	Gather(ctx context.Context, entity *models.Entity, activity string) Result
}
