package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sentra/internal/models"
	"sentra/internal/repositories"
	"sentra/internal/services/network"
	"sentra/internal/services/risk"
)

// Generator builds and stores entity dossiers.
type Generator struct {
	entities  repositories.EntityRepository
	txs       repositories.TransactionRepository
	evidences repositories.EvidenceRepository
	scores    repositories.RiskScoreRepository
	reports   repositories.ReportRepository
	analyzer  *network.Analyzer
	logger    *zap.Logger
	now       func() time.Time
}

// NewGenerator creates a dossier generator.
func NewGenerator(
	entities repositories.EntityRepository,
	txs repositories.TransactionRepository,
	evidences repositories.EvidenceRepository,
	scores repositories.RiskScoreRepository,
	reports repositories.ReportRepository,
	analyzer *network.Analyzer,
	logger *zap.Logger,
) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		entities:  entities,
		txs:       txs,
		evidences: evidences,
		scores:    scores,
		reports:   reports,
		analyzer:  analyzer,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate assembles the dossier for an entity and persists it. An
// entity without an assessment still gets a dossier; the assessment
// section is simply absent.
func (g *Generator) Generate(ctx context.Context, entityID uint) (*Dossier, error) {
	entity, err := g.entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	dossier := &Dossier{
		ReportID:    uuid.New().String(),
		GeneratedAt: g.now().UTC(),
		Entity: EntitySection{
			ID:          entity.ID,
			Name:        entity.Name,
			Type:        entity.Type,
			Description: entity.Description,
			FirstSeen:   entity.CreatedAt,
		},
	}

	score, err := g.scores.GetByEntity(ctx, entityID)
	switch {
	case err == nil:
		dossier.Assessment = &RiskSection{
			Score:        score.Score,
			Score10:      risk.Assessment{Score: score.Score}.Score10(),
			Level:        score.Level,
			Band:         score.Band,
			Completeness: score.Completeness,
			TopFactors:   topFactors(score.Factors),
			LastUpdated:  score.LastUpdated,
		}
	case errors.Is(err, repositories.ErrScoreNotFound):
		// dossier without assessment
	default:
		return nil, err
	}

	rows, err := g.evidences.GetByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	dossier.Evidence = groupBySource(rows)

	txs, err := g.txs.GetByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	stats := g.analyzer.Stats(entityID, txs)
	dossier.Activity = ActivitySection{
		TransactionCount:       stats.Count,
		TotalSent:              stats.TotalSent.StringFixed(2),
		TotalReceived:          stats.TotalReceived.StringFixed(2),
		DistinctCounterparties: stats.DistinctCounterparties,
		CircularFlow:           stats.CircularFlow,
	}

	content, err := toJSONMap(dossier)
	if err != nil {
		return nil, err
	}
	row := &models.Report{
		ReportID:   dossier.ReportID,
		EntityID:   entityID,
		Title:      fmt.Sprintf("Risk dossier: %s", entity.Name),
		ReportType: "entity_dossier",
		Content:    content,
	}
	if err := g.reports.Create(ctx, row); err != nil {
		return nil, err
	}

	g.logger.Info("dossier generated",
		zap.Uint("entity_id", entityID),
		zap.String("report_id", dossier.ReportID))

	return dossier, nil
}

// topFactors decodes the stored factor list and keeps the leaders. The
// stored list is already ordered by weight.
func topFactors(stored models.JSON) []risk.Factor {
	raw, ok := stored["factors"]
	if !ok {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var factors []risk.Factor
	if err := json.Unmarshal(data, &factors); err != nil {
		return nil
	}
	if len(factors) > TopFactorCount {
		factors = factors[:TopFactorCount]
	}
	return factors
}

// groupBySource buckets evidence rows in the canonical source order.
func groupBySource(rows []models.Evidence) []SourceGroup {
	buckets := make(map[models.EvidenceSource][]EvidenceEntry)
	for _, row := range rows {
		buckets[row.Source] = append(buckets[row.Source], EvidenceEntry{
			Content:    row.Content,
			Confidence: row.Confidence,
			AddedAt:    row.CreatedAt,
		})
	}

	groups := make([]SourceGroup, 0, len(buckets))
	for _, source := range models.EvidenceSources {
		if items, ok := buckets[source]; ok {
			groups = append(groups, SourceGroup{Source: source, Items: items})
		}
	}
	return groups
}

func toJSONMap(v interface{}) (models.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report content: %w", err)
	}
	var m models.JSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to encode report content: %w", err)
	}
	return m, nil
}
