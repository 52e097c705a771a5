package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sentra/internal/models"
)

var ErrScoreNotFound = errors.New("risk score not found")

// RiskScoreRepository stores the latest assessment per entity.
type RiskScoreRepository interface {
	Save(ctx context.Context, score *models.RiskScore) error
	GetByEntity(ctx context.Context, entityID uint) (*models.RiskScore, error)
	GetLatestScores(ctx context.Context) (map[uint]float64, error)
}

type riskScoreRepository struct {
	db *gorm.DB
}

// NewRiskScoreRepository creates a risk score repository.
func NewRiskScoreRepository(db *gorm.DB) RiskScoreRepository {
	return &riskScoreRepository{db: db}
}

// Save overwrites the entity's score wholesale; recomputation is idempotent
// so last-writer-wins is safe.
func (r *riskScoreRepository) Save(ctx context.Context, score *models.RiskScore) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "level", "band", "factors", "completeness", "last_updated", "updated_at",
		}),
	}).Create(score).Error
	if err != nil {
		return fmt.Errorf("failed to save risk score: %w", err)
	}
	return nil
}

func (r *riskScoreRepository) GetByEntity(ctx context.Context, entityID uint) (*models.RiskScore, error) {
	var score models.RiskScore
	if err := r.db.WithContext(ctx).Where("entity_id = ?", entityID).First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to get risk score: %w", err)
	}
	return &score, nil
}

func (r *riskScoreRepository) GetLatestScores(ctx context.Context) (map[uint]float64, error) {
	var rows []models.RiskScore
	if err := r.db.WithContext(ctx).Select("entity_id", "score").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list risk scores: %w", err)
	}
	scores := make(map[uint]float64, len(rows))
	for _, row := range rows {
		scores[row.EntityID] = row.Score
	}
	return scores, nil
}
