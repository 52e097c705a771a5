package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVWithAliasedColumns(t *testing.T) {
	csvData := `from,to,value,date,category
Acme Corp,Meridian Holdings,"9,500.00",2026-01-15,wire
Jane Smith,Acme Corp,120.50,2026-01-16,payment
`
	records, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Acme Corp", first.Sender)
	assert.Equal(t, "Meridian Holdings", first.Receiver)
	assert.Equal(t, "9500", first.Amount.String())
	assert.Equal(t, "wire", first.Type)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), first.Timestamp)
	assert.NotEmpty(t, first.TransactionID, "missing id must be generated")
	assert.Equal(t, "USD", first.Currency)
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = ParseCSV(strings.NewReader("sender,receiver,amount\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseJSONArray(t *testing.T) {
	jsonData := `[
		{"transaction_id": "tx-1", "sender": "A", "receiver": "B", "amount": 1000, "timestamp": "2026-02-01T10:00:00Z"},
		{"id": "tx-2", "from": "B", "to": "A", "value": "250.75", "currency": "EUR"}
	]`
	records, err := ParseJSON(strings.NewReader(jsonData))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "tx-1", records[0].TransactionID)
	assert.Equal(t, "1000", records[0].Amount.String())
	assert.Equal(t, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), records[0].Timestamp)

	assert.Equal(t, "tx-2", records[1].TransactionID)
	assert.Equal(t, "B", records[1].Sender)
	assert.Equal(t, "A", records[1].Receiver)
	assert.Equal(t, "250.75", records[1].Amount.String())
	assert.Equal(t, "EUR", records[1].Currency)
}

func TestParseJSONWrapper(t *testing.T) {
	jsonData := `{"transactions": [{"sender": "A", "receiver": "B", "amount": 5}]}`
	records, err := ParseJSON(strings.NewReader(jsonData))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestParseDispatchesOnExtension(t *testing.T) {
	_, err := Parse("transactions.xlsx", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTimestampFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2026-03-01T08:30:00Z", time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)},
		{"2026-03-01 08:30:00", time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)},
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"03/01/2026", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		rec := FromMap(map[string]interface{}{"sender": "A", "receiver": "B", "amount": 1, "date": tc.raw})
		assert.Equal(t, tc.want, rec.Timestamp, "format %q", tc.raw)
	}
}

func TestTimestampFallback(t *testing.T) {
	before := time.Now().UTC()
	rec := FromMap(map[string]interface{}{"sender": "A", "receiver": "B", "date": "not a date"})
	assert.False(t, rec.Timestamp.Before(before.Add(-time.Second)), "unparseable timestamps fall back to now")
}

func TestFromMapAmountForms(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		want string
	}{
		{"float", 1234.5, "1234.5"},
		{"string with symbols", "$1,234.50", "1234.5"},
		{"missing", nil, "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := map[string]interface{}{"sender": "A", "receiver": "B"}
			if tc.val != nil {
				raw["amount"] = tc.val
			}
			rec := FromMap(raw)
			assert.Equal(t, tc.want, rec.Amount.String())
		})
	}
}
