package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fieldAliases maps the canonical field name to the column names seen in
// the wild for it. Matching is case-insensitive.
var fieldAliases = map[string][]string{
	"transaction_id": {"transaction_id", "id", "tx_id", "reference"},
	"sender":         {"sender", "from", "sender_name", "source", "payer"},
	"receiver":       {"receiver", "to", "receiver_name", "destination", "beneficiary", "payee"},
	"amount":         {"amount", "value", "sum"},
	"currency":       {"currency", "ccy"},
	"type":           {"type", "category", "transaction_type"},
	"timestamp":      {"timestamp", "date", "time", "datetime"},
}

var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// Parse dispatches on the filename extension.
func Parse(filename string, r io.Reader) ([]Record, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return ParseCSV(r)
	case strings.HasSuffix(strings.ToLower(filename), ".json"):
		return ParseJSON(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// ParseCSV reads a headered CSV file into standardized records.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		raw := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(row) {
				raw[strings.TrimSpace(col)] = row[i]
			}
		}
		records = append(records, FromMap(raw))
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}

// ParseJSON reads either a top-level array of transaction objects or a
// {"transactions": [...]} wrapper.
func ParseJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read json: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyFile
	}

	var rows []map[string]interface{}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	} else {
		var wrapper struct {
			Transactions []map[string]interface{} `json:"transactions"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
		rows = wrapper.Transactions
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, FromMap(row))
	}
	return records, nil
}

// FromMap standardizes one raw row. Missing ids are generated; an
// unparseable timestamp falls back to the current time so the record
// still lands, tagged with its raw payload for audit.
func FromMap(raw map[string]interface{}) Record {
	rec := Record{
		TransactionID: stringField(raw, "transaction_id"),
		Sender:        stringField(raw, "sender"),
		Receiver:      stringField(raw, "receiver"),
		Currency:      stringField(raw, "currency"),
		Type:          stringField(raw, "type"),
		Raw:           raw,
	}
	if rec.TransactionID == "" {
		rec.TransactionID = uuid.New().String()
	}
	if rec.Currency == "" {
		rec.Currency = "USD"
	}
	rec.Amount = amountField(raw)
	rec.Timestamp = timestampField(raw)
	return rec
}

func lookupField(raw map[string]interface{}, canonical string) (interface{}, bool) {
	for _, alias := range fieldAliases[canonical] {
		for key, val := range raw {
			if strings.EqualFold(strings.TrimSpace(key), alias) {
				return val, true
			}
		}
	}
	return nil, false
}

func stringField(raw map[string]interface{}, canonical string) string {
	val, ok := lookupField(raw, canonical)
	if !ok || val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func amountField(raw map[string]interface{}) decimal.Decimal {
	val, ok := lookupField(raw, "amount")
	if !ok || val == nil {
		return decimal.Zero
	}
	switch v := val.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(v)
		if d, err := decimal.NewFromString(cleaned); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func timestampField(raw map[string]interface{}) time.Time {
	val, ok := lookupField(raw, "timestamp")
	if !ok || val == nil {
		return time.Now().UTC()
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", val))
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
