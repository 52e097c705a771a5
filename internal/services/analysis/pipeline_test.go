package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sentra/internal/models"
	"sentra/internal/repositories"
	"sentra/internal/services/evidence"
	"sentra/internal/services/network"
	"sentra/internal/services/risk"
)

type mockEntityRepo struct{ mock.Mock }

func (m *mockEntityRepo) GetByID(ctx context.Context, id uint) (*models.Entity, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*models.Entity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntityRepo) GetByName(ctx context.Context, name string) (*models.Entity, error) {
	args := m.Called(ctx, name)
	if e := args.Get(0); e != nil {
		return e.(*models.Entity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntityRepo) List(ctx context.Context, filter repositories.EntityFilter, limit, offset int) ([]models.Entity, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]models.Entity), args.Get(1).(int64), args.Error(2)
}

func (m *mockEntityRepo) ListIDs(ctx context.Context) ([]uint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockEntityRepo) ListAll(ctx context.Context) ([]models.Entity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Entity), args.Error(1)
}

func (m *mockEntityRepo) Upsert(ctx context.Context, entity *models.Entity) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockEntityRepo) UpdateDescription(ctx context.Context, id uint, description string) error {
	return m.Called(ctx, id, description).Error(0)
}

type mockTxRepo struct{ mock.Mock }

func (m *mockTxRepo) CreateBatch(ctx context.Context, txs []models.Transaction) (int, error) {
	args := m.Called(ctx, txs)
	return args.Int(0), args.Error(1)
}

func (m *mockTxRepo) GetByEntity(ctx context.Context, entityID uint) ([]models.Transaction, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *mockTxRepo) GetByEntityPaged(ctx context.Context, entityID uint, limit, offset int) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, entityID, limit, offset)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *mockTxRepo) ListAll(ctx context.Context) ([]models.Transaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

type mockEvidenceRepo struct{ mock.Mock }

func (m *mockEvidenceRepo) Append(ctx context.Context, items []models.Evidence) error {
	return m.Called(ctx, items).Error(0)
}

func (m *mockEvidenceRepo) GetByEntity(ctx context.Context, entityID uint) ([]models.Evidence, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).([]models.Evidence), args.Error(1)
}

type mockScoreRepo struct{ mock.Mock }

func (m *mockScoreRepo) Save(ctx context.Context, score *models.RiskScore) error {
	return m.Called(ctx, score).Error(0)
}

func (m *mockScoreRepo) GetByEntity(ctx context.Context, entityID uint) (*models.RiskScore, error) {
	args := m.Called(ctx, entityID)
	if s := args.Get(0); s != nil {
		return s.(*models.RiskScore), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreRepo) GetLatestScores(ctx context.Context) (map[uint]float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uint]float64), args.Error(1)
}

type stubGatherer struct {
	result evidence.Result
}

func (g *stubGatherer) Gather(_ context.Context, _ *models.Entity, _ string) evidence.Result {
	return g.result
}

func newTestPipeline(
	entities *mockEntityRepo,
	txs *mockTxRepo,
	evidences *mockEvidenceRepo,
	scores *mockScoreRepo,
	gatherer evidence.Gatherer,
) *Pipeline {
	return NewPipeline(
		entities, txs, evidences, scores,
		nil, // no cache
		gatherer,
		network.NewAnalyzer(0),
		risk.NewEngine(risk.DefaultConfig()),
		nil,
	)
}

func TestAnalyzeEntitySanctionedShell(t *testing.T) {
	entity := &models.Entity{ID: 7, Name: "Meridian Holdings", Type: models.EntityTypeShellCompany}
	gathered := evidence.Result{
		Items: []evidence.Item{{
			Source:     models.SourceSanctions,
			Content:    "Sanctions match: Meridian Holdings on list OFAC-SDN (match score 0.97)",
			Confidence: 0.95,
		}},
		Completeness: risk.CompletenessFull,
	}

	entities := new(mockEntityRepo)
	txs := new(mockTxRepo)
	evidences := new(mockEvidenceRepo)
	scores := new(mockScoreRepo)

	entities.On("GetByID", mock.Anything, uint(7)).Return(entity, nil)
	txs.On("GetByEntity", mock.Anything, uint(7)).Return([]models.Transaction{}, nil)
	evidences.On("Append", mock.Anything, mock.MatchedBy(func(rows []models.Evidence) bool {
		return len(rows) == 1 && rows[0].EntityID == 7
	})).Return(nil)
	evidences.On("GetByEntity", mock.Anything, uint(7)).Return([]models.Evidence{
		{EntityID: 7, Source: models.SourceSanctions, Content: gathered.Items[0].Content, Confidence: 0.95},
	}, nil)
	scores.On("Save", mock.Anything, mock.Anything).Return(nil)

	p := newTestPipeline(entities, txs, evidences, scores, &stubGatherer{result: gathered})

	score, err := p.AnalyzeEntity(context.Background(), 7)
	require.NoError(t, err)

	// Sanctions hit on a shell company dominates: well above the 0.80
	// type prior, classified at the top tier.
	assert.GreaterOrEqual(t, score.Score, 0.9)
	assert.Equal(t, string(risk.TierVeryHigh), score.Level)
	assert.Equal(t, string(risk.CompletenessFull), score.Completeness)
	assert.Equal(t, uint(7), score.EntityID)
	assert.False(t, score.LastUpdated.IsZero())

	entities.AssertExpectations(t)
	evidences.AssertExpectations(t)
	scores.AssertExpectations(t)
}

func TestAnalyzeEntityBackfillsDescription(t *testing.T) {
	entity := &models.Entity{ID: 4, Name: "Helix Trading", Type: models.EntityTypeCorporation}
	gathered := evidence.Result{
		Analysis:     &risk.AIAnalysis{Summary: "Mid-size trading firm with regional counterparties."},
		Completeness: risk.CompletenessPartial,
	}

	entities := new(mockEntityRepo)
	txs := new(mockTxRepo)
	evidences := new(mockEvidenceRepo)
	scores := new(mockScoreRepo)

	entities.On("GetByID", mock.Anything, uint(4)).Return(entity, nil)
	entities.On("UpdateDescription", mock.Anything, uint(4), gathered.Analysis.Summary).Return(nil)
	txs.On("GetByEntity", mock.Anything, uint(4)).Return([]models.Transaction{}, nil)
	evidences.On("Append", mock.Anything, mock.Anything).Return(nil)
	evidences.On("GetByEntity", mock.Anything, uint(4)).Return([]models.Evidence{}, nil)
	scores.On("Save", mock.Anything, mock.Anything).Return(nil)

	p := newTestPipeline(entities, txs, evidences, scores, &stubGatherer{result: gathered})

	_, err := p.AnalyzeEntity(context.Background(), 4)
	require.NoError(t, err)
	entities.AssertExpectations(t)
}

func TestAnalyzeEntityNotFound(t *testing.T) {
	entities := new(mockEntityRepo)
	entities.On("GetByID", mock.Anything, uint(99)).Return(nil, repositories.ErrEntityNotFound)

	p := newTestPipeline(entities, new(mockTxRepo), new(mockEvidenceRepo), new(mockScoreRepo), &stubGatherer{})

	_, err := p.AnalyzeEntity(context.Background(), 99)
	assert.ErrorIs(t, err, repositories.ErrEntityNotFound)
}

func TestAnalyzeBatchIsolatesFailures(t *testing.T) {
	good := &models.Entity{ID: 1, Name: "Good Corp", Type: models.EntityTypeCorporation}

	entities := new(mockEntityRepo)
	txs := new(mockTxRepo)
	evidences := new(mockEvidenceRepo)
	scores := new(mockScoreRepo)

	entities.On("GetByID", mock.Anything, uint(1)).Return(good, nil)
	entities.On("GetByID", mock.Anything, uint(2)).Return(nil, repositories.ErrEntityNotFound)
	txs.On("GetByEntity", mock.Anything, uint(1)).Return([]models.Transaction{}, nil)
	evidences.On("Append", mock.Anything, mock.Anything).Return(nil)
	evidences.On("GetByEntity", mock.Anything, uint(1)).Return([]models.Evidence{}, nil)
	scores.On("Save", mock.Anything, mock.Anything).Return(nil)

	p := newTestPipeline(entities, txs, evidences, scores,
		&stubGatherer{result: evidence.Result{Completeness: risk.CompletenessNone}})

	res := p.AnalyzeBatch(context.Background(), []uint{1, 2})

	assert.Equal(t, []uint{1}, res.Analyzed)
	require.Len(t, res.Failed, 1)
	assert.Contains(t, res.Failed[2], "not found")
}

func TestGetScoreFallsBackToStore(t *testing.T) {
	stored := &models.RiskScore{
		EntityID:    3,
		Score:       0.45,
		Level:       string(risk.TierMedium),
		LastUpdated: time.Now().UTC(),
	}
	scores := new(mockScoreRepo)
	scores.On("GetByEntity", mock.Anything, uint(3)).Return(stored, nil)

	p := newTestPipeline(new(mockEntityRepo), new(mockTxRepo), new(mockEvidenceRepo), scores, &stubGatherer{})

	got, err := p.GetScore(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}
