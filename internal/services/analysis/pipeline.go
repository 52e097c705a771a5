package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sentra/internal/models"
	"sentra/internal/repositories"
	"sentra/internal/services/evidence"
	"sentra/internal/services/network"
	"sentra/internal/services/risk"
)

// DefaultBatchConcurrency bounds how many entities are analyzed at once
// in a batch run. Each analysis fans out its own evidence calls, so the
// effective outbound concurrency is a multiple of this.
const DefaultBatchConcurrency = 4

// Pipeline wires repositories, evidence gathering, and the risk engine
// into one analysis flow.
type Pipeline struct {
	entities    repositories.EntityRepository
	txs         repositories.TransactionRepository
	evidences   repositories.EvidenceRepository
	scores      repositories.RiskScoreRepository
	cache       ScoreCache
	gatherer    evidence.Gatherer
	analyzer    *network.Analyzer
	engine      *risk.Engine
	logger      *zap.Logger
	concurrency int
}

// NewPipeline creates an analysis pipeline. The cache may be nil.
func NewPipeline(
	entities repositories.EntityRepository,
	txs repositories.TransactionRepository,
	evidences repositories.EvidenceRepository,
	scores repositories.RiskScoreRepository,
	cache ScoreCache,
	gatherer evidence.Gatherer,
	analyzer *network.Analyzer,
	engine *risk.Engine,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		entities:    entities,
		txs:         txs,
		evidences:   evidences,
		scores:      scores,
		cache:       cache,
		gatherer:    gatherer,
		analyzer:    analyzer,
		engine:      engine,
		logger:      logger,
		concurrency: DefaultBatchConcurrency,
	}
}

// AnalyzeEntity runs the full pipeline for one entity and returns the
// persisted score row.
func (p *Pipeline) AnalyzeEntity(ctx context.Context, entityID uint) (*models.RiskScore, error) {
	entity, err := p.entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	txs, err := p.txs.GetByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	stats := p.analyzer.Stats(entityID, txs)

	res := p.gatherer.Gather(ctx, entity, activityDigest(entity, stats))
	if err := p.evidences.Append(ctx, res.Records(entityID)); err != nil {
		return nil, err
	}

	// Ingested entities start with an empty description; backfill it from
	// the AI summary so profiles are readable without a manual pass.
	if entity.Description == "" && res.Analysis != nil && res.Analysis.Summary != "" {
		if err := p.entities.UpdateDescription(ctx, entityID, res.Analysis.Summary); err != nil {
			p.logger.Warn("description backfill failed", zap.Uint("entity_id", entityID), zap.Error(err))
		}
	}

	// Score over everything on record, not just this round: manual
	// submissions and earlier gathering rounds stay in play.
	rows, err := p.evidences.GetByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}

	assessment := p.engine.Score(risk.Input{
		Profile: risk.EntityProfile{
			ID:          entity.ID,
			Name:        entity.Name,
			Type:        entity.Type,
			Description: entity.Description,
			CreatedAt:   entity.CreatedAt,
		},
		Stats:        stats,
		Evidence:     evidenceItems(rows),
		Analysis:     res.Analysis,
		Completeness: res.Completeness,
	})

	score := &models.RiskScore{
		EntityID:     entityID,
		Score:        assessment.Score,
		Level:        string(assessment.Level),
		Band:         string(assessment.Band),
		Factors:      models.JSON{"factors": assessment.Factors},
		Completeness: string(assessment.Completeness),
		LastUpdated:  assessment.ComputedAt,
	}
	if err := p.scores.Save(ctx, score); err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.InvalidateEntity(ctx, entityID); err != nil {
			p.logger.Warn("cache invalidation failed", zap.Uint("entity_id", entityID), zap.Error(err))
		}
		if err := p.cache.CacheRiskScore(ctx, score); err != nil {
			p.logger.Warn("score caching failed", zap.Uint("entity_id", entityID), zap.Error(err))
		}
	}

	p.logger.Info("entity analyzed",
		zap.Uint("entity_id", entityID),
		zap.String("entity", entity.Name),
		zap.Float64("score", assessment.Score),
		zap.String("level", string(assessment.Level)),
		zap.String("completeness", string(assessment.Completeness)))

	return score, nil
}

// AnalyzeBatch analyzes the given entities with bounded concurrency.
// Per-entity failures are collected, never propagated.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, entityIDs []uint) BatchResult {
	var (
		mu     sync.Mutex
		result = BatchResult{Failed: map[uint]string{}}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, id := range entityIDs {
		id := id
		g.Go(func() error {
			_, err := p.AnalyzeEntity(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.logger.Warn("batch entity failed", zap.Uint("entity_id", id), zap.Error(err))
				result.Failed[id] = err.Error()
				return nil
			}
			result.Analyzed = append(result.Analyzed, id)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Analyzed, func(i, j int) bool { return result.Analyzed[i] < result.Analyzed[j] })
	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result
}

// AnalyzeAll analyzes every known entity.
func (p *Pipeline) AnalyzeAll(ctx context.Context) (BatchResult, error) {
	ids, err := p.entities.ListIDs(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	return p.AnalyzeBatch(ctx, ids), nil
}

// GetScore returns the stored assessment for an entity, cache first.
func (p *Pipeline) GetScore(ctx context.Context, entityID uint) (*models.RiskScore, error) {
	if p.cache != nil {
		if cached, err := p.cache.GetRiskScore(ctx, entityID); err == nil && cached != nil {
			return cached, nil
		}
	}
	score, err := p.scores.GetByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		if err := p.cache.CacheRiskScore(ctx, score); err != nil {
			p.logger.Warn("score caching failed", zap.Uint("entity_id", entityID), zap.Error(err))
		}
	}
	return score, nil
}

func evidenceItems(rows []models.Evidence) []risk.EvidenceItem {
	items := make([]risk.EvidenceItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, risk.EvidenceItem{
			Source:     row.Source,
			Content:    row.Content,
			Confidence: row.Confidence,
		})
	}
	return items
}

// activityDigest renders the behavioral statistics as a short text block
// for the AI analyzer.
func activityDigest(entity *models.Entity, stats risk.TransactionStats) string {
	return fmt.Sprintf(
		"%d transactions; sent %s, received %s; %d distinct counterparties; "+
			"top counterparty share %.2f; round-amount ratio %.2f; "+
			"max %d transactions per window; circular flow: %t",
		stats.Count,
		stats.TotalSent.StringFixed(2),
		stats.TotalReceived.StringFixed(2),
		stats.DistinctCounterparties,
		stats.ConcentrationRatio,
		stats.RoundNumberRatio,
		stats.VelocityPerWindow,
		stats.CircularFlow,
	)
}
