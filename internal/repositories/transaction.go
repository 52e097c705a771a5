package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sentra/internal/models"
)

var ErrNegativeAmount = errors.New("transaction amount must be non-negative")

// TransactionRepository provides access to transaction records.
type TransactionRepository interface {
	CreateBatch(ctx context.Context, txs []models.Transaction) (int, error)
	GetByEntity(ctx context.Context, entityID uint) ([]models.Transaction, error)
	GetByEntityPaged(ctx context.Context, entityID uint, limit, offset int) ([]models.Transaction, int64, error)
	ListAll(ctx context.Context) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateBatch inserts transactions, skipping duplicates on the external
// reference so re-uploading a file is idempotent. Returns the number of
// rows written.
func (r *transactionRepository) CreateBatch(ctx context.Context, txs []models.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}
	for _, tx := range txs {
		if tx.Amount.IsNegative() {
			return 0, fmt.Errorf("%w: %s", ErrNegativeAmount, tx.TransactionID)
		}
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).CreateInBatches(txs, 200)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to create transactions: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func (r *transactionRepository) GetByEntity(ctx context.Context, entityID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", entityID, entityID).
		Order("timestamp").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txs, nil
}

func (r *transactionRepository) GetByEntityPaged(ctx context.Context, entityID uint, limit, offset int) ([]models.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("sender_id = ? OR receiver_id = ?", entityID, entityID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txs []models.Transaction
	if err := q.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&txs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txs, total, nil
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.WithContext(ctx).Order("id").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}
