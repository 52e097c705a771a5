package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sentra/internal/models"
)

var ErrEntityNotFound = errors.New("entity not found")

// EntityRepository provides access to entity records.
type EntityRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Entity, error)
	GetByName(ctx context.Context, name string) (*models.Entity, error)
	List(ctx context.Context, filter EntityFilter, limit, offset int) ([]models.Entity, int64, error)
	ListIDs(ctx context.Context) ([]uint, error)
	ListAll(ctx context.Context) ([]models.Entity, error)
	Upsert(ctx context.Context, entity *models.Entity) error
	UpdateDescription(ctx context.Context, id uint, description string) error
}

// EntityFilter narrows entity listings.
type EntityFilter struct {
	Type models.EntityType
	Name string // substring match
}

type entityRepository struct {
	db *gorm.DB
}

// NewEntityRepository creates an entity repository.
func NewEntityRepository(db *gorm.DB) EntityRepository {
	return &entityRepository{db: db}
}

func (r *entityRepository) GetByID(ctx context.Context, id uint) (*models.Entity, error) {
	var entity models.Entity
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return &entity, nil
}

func (r *entityRepository) GetByName(ctx context.Context, name string) (*models.Entity, error) {
	var entity models.Entity
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return &entity, nil
}

func (r *entityRepository) List(ctx context.Context, filter EntityFilter, limit, offset int) ([]models.Entity, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Entity{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count entities: %w", err)
	}

	var entities []models.Entity
	if err := q.Order("id").Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list entities: %w", err)
	}
	return entities, total, nil
}

func (r *entityRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Entity{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list entity ids: %w", err)
	}
	return ids, nil
}

func (r *entityRepository) ListAll(ctx context.Context) ([]models.Entity, error) {
	var entities []models.Entity
	if err := r.db.WithContext(ctx).Order("id").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	return entities, nil
}

// Upsert inserts the entity or, when the name already exists, refreshes its
// type and description. Entities are amended, never deleted.
func (r *entityRepository) Upsert(ctx context.Context, entity *models.Entity) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "description", "updated_at"}),
	}).Create(entity).Error
	if err != nil {
		return fmt.Errorf("failed to upsert entity: %w", err)
	}
	// The returning clause does not fill IDs on conflict updates with every
	// postgres version; fetch to be certain.
	if entity.ID == 0 {
		existing, err := r.GetByName(ctx, entity.Name)
		if err != nil {
			return err
		}
		entity.ID = existing.ID
	}
	return nil
}

func (r *entityRepository) UpdateDescription(ctx context.Context, id uint, description string) error {
	err := r.db.WithContext(ctx).Model(&models.Entity{}).Where("id = ?", id).
		Update("description", description).Error
	if err != nil {
		return fmt.Errorf("failed to update entity description: %w", err)
	}
	return nil
}
