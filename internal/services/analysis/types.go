package analysis

import (
	"context"

	"sentra/internal/models"
)

// ScoreCache is the slice of the cache layer the pipeline uses.
// *cache.CacheService satisfies it; a nil cache disables caching.
type ScoreCache interface {
	CacheRiskScore(ctx context.Context, score *models.RiskScore) error
	GetRiskScore(ctx context.Context, entityID uint) (*models.RiskScore, error)
	InvalidateEntity(ctx context.Context, entityID uint) error
}

// BatchResult summarizes a batch analysis run.
type BatchResult struct {
	Analyzed []uint          `json:"analyzed"`
	Failed   map[uint]string `json:"failed,omitempty"`
}
