package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sentra/internal/models"
)

// ReportRepository stores rendered entity dossiers.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetLatestByEntity(ctx context.Context, entityID uint) (*models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) GetLatestByEntity(ctx context.Context, entityID uint) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}
