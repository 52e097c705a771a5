package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a directed, weighted edge between two entities. Amount is
// carried as a decimal to survive round-number analysis without float noise.
type Transaction struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	TransactionID string          `gorm:"uniqueIndex;not null" json:"transaction_id"` // external reference
	SenderID      uint            `gorm:"not null;index" json:"sender_id"`
	ReceiverID    uint            `gorm:"not null;index" json:"receiver_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	Type          string          `json:"type"` // optional free-text tag from the source record
	Timestamp     time.Time       `gorm:"index" json:"timestamp"`
	SourceFile    string          `json:"source_file"`
	RawData       JSON            `gorm:"type:jsonb" json:"raw_data,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
