package evidence

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"sentra/internal/config"
	"sentra/internal/models"
	"sentra/internal/services/risk"
)

// Aggregator fans an entity lookup out to every configured source.
type Aggregator struct {
	sources  []Source
	analyzer Analyzer
	timeout  time.Duration
	logger   *zap.Logger
}

// NewAggregator builds an aggregator from the evidence configuration.
// Sources without a base URL are skipped; the AI analyzer additionally
// requires an API key.
func NewAggregator(cfg config.EvidenceConfig, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}

	var sources []Source
	if cfg.Registry.BaseURL != "" {
		sources = append(sources, newRegistrySource(cfg.Registry))
	}
	if cfg.News.BaseURL != "" {
		sources = append(sources, newNewsSource(cfg.News))
	}
	if cfg.Sanctions.BaseURL != "" {
		sources = append(sources, newSanctionsSource(cfg.Sanctions))
	}

	var analyzer Analyzer
	if cfg.AI.BaseURL != "" && cfg.AI.APIKey != "" {
		analyzer = newAIAnalyzer(cfg.AI, cfg.AIModel)
	}

	return &Aggregator{
		sources:  sources,
		analyzer: analyzer,
		timeout:  cfg.SourceTimeout,
		logger:   logger,
	}
}

// NewAggregatorWith wires explicit sources and analyzer. Used by tests
// and by callers that bring their own backends.
func NewAggregatorWith(sources []Source, analyzer Analyzer, perSourceTimeout time.Duration, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		sources:  sources,
		analyzer: analyzer,
		timeout:  perSourceTimeout,
		logger:   logger,
	}
}

// Gather queries every configured source concurrently and collects what
// succeeded. It never returns an error: a total failure is reported as
// CompletenessNone with zero items.
func (a *Aggregator) Gather(ctx context.Context, entity *models.Entity, activity string) Result {
	total := len(a.sources)
	if a.analyzer != nil {
		total++
	}
	if total == 0 {
		return Result{Completeness: risk.CompletenessNone}
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		items     []Item
		analysis  *risk.AIAnalysis
		succeeded []models.EvidenceSource
		failed    []models.EvidenceSource
	)

	for _, src := range a.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			srcCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			found, err := src.Lookup(srcCtx, entity)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Warn("evidence source failed",
					zap.String("source", string(src.Name())),
					zap.String("entity", entity.Name),
					zap.Error(err))
				failed = append(failed, src.Name())
				return
			}
			items = append(items, found...)
			succeeded = append(succeeded, src.Name())
		}(src)
	}

	if a.analyzer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			aiCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			doc, err := a.analyzer.Analyze(aiCtx, entity, activity)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Warn("ai analysis failed",
					zap.String("entity", entity.Name),
					zap.Error(err))
				failed = append(failed, models.SourceAIAnalysis)
				return
			}
			analysis = doc
			items = append(items, analysisItems(doc)...)
			succeeded = append(succeeded, models.SourceAIAnalysis)
		}()
	}

	wg.Wait()

	completeness := risk.CompletenessPartial
	switch {
	case len(succeeded) == 0:
		completeness = risk.CompletenessNone
	case len(succeeded) == total:
		completeness = risk.CompletenessFull
	}

	return Result{
		Items:        items,
		Analysis:     analysis,
		Succeeded:    succeeded,
		Failed:       failed,
		Completeness: completeness,
	}
}

// analysisItems flattens the AI document into evidence rows so the
// narrative findings are preserved alongside registry and media hits.
func analysisItems(doc *risk.AIAnalysis) []Item {
	if doc == nil {
		return nil
	}
	var items []Item
	if doc.Summary != "" {
		items = append(items, Item{
			Source:     models.SourceAIAnalysis,
			Content:    doc.Summary,
			Confidence: AIConfidence,
		})
	}
	for _, anomaly := range doc.Anomalies {
		if anomaly == "" {
			continue
		}
		items = append(items, Item{
			Source:     models.SourceAIAnalysis,
			Content:    "Anomaly: " + anomaly,
			Confidence: AIConfidence,
		})
	}
	return items
}
