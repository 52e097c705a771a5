package evidence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentra/internal/models"
	"sentra/internal/services/risk"
)

type stubSource struct {
	name   models.EvidenceSource
	items  []Item
	err    error
	delay  time.Duration
}

func (s *stubSource) Name() models.EvidenceSource { return s.name }

func (s *stubSource) Lookup(ctx context.Context, _ *models.Entity) ([]Item, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.items, s.err
}

type stubAnalyzer struct {
	doc *risk.AIAnalysis
	err error
}

func (a *stubAnalyzer) Analyze(_ context.Context, _ *models.Entity, _ string) (*risk.AIAnalysis, error) {
	return a.doc, a.err
}

func testEntity() *models.Entity {
	return &models.Entity{ID: 1, Name: "Meridian Holdings", Type: models.EntityTypeShellCompany}
}

func TestGatherNoSourcesConfigured(t *testing.T) {
	agg := NewAggregatorWith(nil, nil, time.Second, nil)
	res := agg.Gather(context.Background(), testEntity(), "")

	assert.Equal(t, risk.CompletenessNone, res.Completeness)
	assert.Empty(t, res.Items)
	assert.Nil(t, res.Analysis)
}

func TestGatherAllSourcesSucceed(t *testing.T) {
	sources := []Source{
		&stubSource{name: models.SourceRegistry, items: []Item{
			{Source: models.SourceRegistry, Content: "Registry record: Meridian Holdings, status dissolved", Confidence: RegistryConfidence},
		}},
		&stubSource{name: models.SourceNews, items: []Item{
			{Source: models.SourceNews, Content: "Meridian Holdings under fraud investigation", Confidence: NewsConfidence},
		}},
	}
	agg := NewAggregatorWith(sources, nil, time.Second, nil)
	res := agg.Gather(context.Background(), testEntity(), "")

	assert.Equal(t, risk.CompletenessFull, res.Completeness)
	assert.Len(t, res.Items, 2)
	assert.ElementsMatch(t,
		[]models.EvidenceSource{models.SourceRegistry, models.SourceNews},
		res.Succeeded)
	assert.Empty(t, res.Failed)
}

func TestGatherPartialOnSourceFailure(t *testing.T) {
	sources := []Source{
		&stubSource{name: models.SourceRegistry, items: []Item{
			{Source: models.SourceRegistry, Content: "Registry record", Confidence: RegistryConfidence},
		}},
		&stubSource{name: models.SourceSanctions, err: errors.New("connection refused")},
	}
	agg := NewAggregatorWith(sources, nil, time.Second, nil)
	res := agg.Gather(context.Background(), testEntity(), "")

	assert.Equal(t, risk.CompletenessPartial, res.Completeness)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, []models.EvidenceSource{models.SourceSanctions}, res.Failed)
}

func TestGatherPartialOnSourceTimeout(t *testing.T) {
	sources := []Source{
		&stubSource{name: models.SourceRegistry, items: []Item{
			{Source: models.SourceRegistry, Content: "Registry record", Confidence: RegistryConfidence},
		}},
		&stubSource{name: models.SourceNews, delay: 5 * time.Second},
	}
	agg := NewAggregatorWith(sources, nil, 20*time.Millisecond, nil)

	start := time.Now()
	res := agg.Gather(context.Background(), testEntity(), "")

	assert.Less(t, time.Since(start), time.Second, "slow source must not block the round")
	assert.Equal(t, risk.CompletenessPartial, res.Completeness)
	assert.Equal(t, []models.EvidenceSource{models.SourceNews}, res.Failed)
}

func TestGatherNoneWhenEverythingFails(t *testing.T) {
	sources := []Source{
		&stubSource{name: models.SourceRegistry, err: errors.New("boom")},
		&stubSource{name: models.SourceNews, err: errors.New("boom")},
	}
	agg := NewAggregatorWith(sources, &stubAnalyzer{err: errors.New("boom")}, time.Second, nil)
	res := agg.Gather(context.Background(), testEntity(), "")

	assert.Equal(t, risk.CompletenessNone, res.Completeness)
	assert.Empty(t, res.Items)
	assert.Nil(t, res.Analysis)
	assert.Len(t, res.Failed, 3)
}

func TestGatherIncludesAnalysis(t *testing.T) {
	doc := &risk.AIAnalysis{
		Summary:   "High outbound concentration to a single counterparty.",
		Anomalies: []string{"burst of 14 transfers in one day"},
		RiskIndicators: []risk.RiskIndicator{
			{Description: "possible layering", Severity: 0.7},
		},
	}
	agg := NewAggregatorWith(nil, &stubAnalyzer{doc: doc}, time.Second, nil)
	res := agg.Gather(context.Background(), testEntity(), "digest")

	require.NotNil(t, res.Analysis)
	assert.Equal(t, risk.CompletenessFull, res.Completeness)

	// Summary and each anomaly become ai_analysis evidence rows.
	require.Len(t, res.Items, 2)
	for _, it := range res.Items {
		assert.Equal(t, models.SourceAIAnalysis, it.Source)
		assert.InDelta(t, AIConfidence, it.Confidence, 1e-9)
	}
	assert.Equal(t, "Anomaly: burst of 14 transfers in one day", res.Items[1].Content)
}

func TestGatherAIFailureKeepsOtherSources(t *testing.T) {
	sources := []Source{
		&stubSource{name: models.SourceSanctions, items: []Item{
			{Source: models.SourceSanctions, Content: "Sanctions match: Meridian Holdings on list OFAC-SDN (match score 0.97)", Confidence: SanctionsConfidence},
		}},
	}
	agg := NewAggregatorWith(sources, &stubAnalyzer{err: errors.New("rate limited")}, time.Second, nil)
	res := agg.Gather(context.Background(), testEntity(), "")

	assert.Equal(t, risk.CompletenessPartial, res.Completeness)
	assert.Nil(t, res.Analysis)
	require.Len(t, res.Items, 1)
	assert.Equal(t, models.SourceSanctions, res.Items[0].Source)
}

func TestResultConversions(t *testing.T) {
	res := Result{Items: []Item{
		{Source: models.SourceNews, Content: "laundering probe", Confidence: 0.7},
	}}

	riskItems := res.RiskItems()
	require.Len(t, riskItems, 1)
	assert.Equal(t, models.SourceNews, riskItems[0].Source)
	assert.InDelta(t, 0.7, riskItems[0].Confidence, 1e-9)

	records := res.Records(42)
	require.Len(t, records, 1)
	assert.Equal(t, uint(42), records[0].EntityID)
	assert.Equal(t, "laundering probe", records[0].Content)
}

func TestIsAdverse(t *testing.T) {
	assert.True(t, isAdverse("Regulator opens money laundering investigation"))
	assert.True(t, isAdverse("Executives indicted for bribery"))
	assert.False(t, isAdverse("Company announces quarterly results"))
}
