package ingest

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one standardized transaction row, whatever its origin.
type Record struct {
	TransactionID string
	Sender        string
	Receiver      string
	Amount        decimal.Decimal
	Currency      string
	Type          string
	Timestamp     time.Time
	Raw           map[string]interface{}
}

// Summary reports the outcome of one ingestion run.
type Summary struct {
	Processed int      `json:"processed"`
	Inserted  int      `json:"inserted"`
	Skipped   int      `json:"skipped"`
	Entities  int      `json:"entities_created"`
	Errors    []string `json:"errors,omitempty"`
}
