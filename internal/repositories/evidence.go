package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sentra/internal/models"
)

// EvidenceRepository provides access to evidence records. Evidence is
// append-only: repeated gathering accumulates rows per source.
type EvidenceRepository interface {
	Append(ctx context.Context, items []models.Evidence) error
	GetByEntity(ctx context.Context, entityID uint) ([]models.Evidence, error)
}

type evidenceRepository struct {
	db *gorm.DB
}

// NewEvidenceRepository creates an evidence repository.
func NewEvidenceRepository(db *gorm.DB) EvidenceRepository {
	return &evidenceRepository{db: db}
}

func (r *evidenceRepository) Append(ctx context.Context, items []models.Evidence) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to append evidence: %w", err)
	}
	return nil
}

func (r *evidenceRepository) GetByEntity(ctx context.Context, entityID uint) ([]models.Evidence, error) {
	var items []models.Evidence
	err := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at, id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}
	return items, nil
}
