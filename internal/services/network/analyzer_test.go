package network

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentra/internal/models"
)

func tx(sender, receiver uint, amount float64, ts time.Time) models.Transaction {
	return models.Transaction{
		SenderID:   sender,
		ReceiverID: receiver,
		Amount:     decimal.NewFromFloat(amount),
		Timestamp:  ts,
	}
}

func TestStats_Empty(t *testing.T) {
	a := NewAnalyzer(0)
	stats := a.Stats(1, nil)

	assert.Equal(t, 0, stats.Count)
	assert.True(t, stats.TotalSent.IsZero())
	assert.True(t, stats.TotalReceived.IsZero())
	assert.Equal(t, 0, stats.VelocityPerWindow)
	assert.False(t, stats.CircularFlow)
}

func TestStats_VolumeAndCounterparties(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := NewAnalyzer(7 * 24 * time.Hour)

	stats := a.Stats(1, []models.Transaction{
		tx(1, 2, 500, base),
		tx(1, 3, 1500, base.Add(time.Hour)),
		tx(4, 1, 200, base.Add(2*time.Hour)),
	})

	assert.Equal(t, 3, stats.Count)
	assert.True(t, stats.TotalSent.Equal(decimal.NewFromInt(2000)))
	assert.True(t, stats.TotalReceived.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 3, stats.DistinctCounterparties)
	// Counterparty 3 holds 1500 of 2200 total volume.
	assert.InDelta(t, 1500.0/2200.0, stats.ConcentrationRatio, 1e-9)
}

func TestStats_CircularFlow(t *testing.T) {
	base := time.Now()
	a := NewAnalyzer(0)

	stats := a.Stats(1, []models.Transaction{
		tx(1, 2, 100, base),
		tx(2, 1, 90, base.Add(time.Hour)),
	})
	assert.True(t, stats.CircularFlow)

	oneWay := a.Stats(1, []models.Transaction{
		tx(1, 2, 100, base),
		tx(3, 1, 90, base),
	})
	assert.False(t, oneWay.CircularFlow)
}

func TestStats_RoundNumberRatio(t *testing.T) {
	base := time.Now()
	a := NewAnalyzer(0)

	stats := a.Stats(1, []models.Transaction{
		tx(1, 2, 10000, base),   // round at threshold
		tx(1, 2, 25000, base),   // round multiple above threshold
		tx(1, 2, 9500, base),    // parked just under the reporting threshold
		tx(1, 2, 1234.56, base), // neither
	})

	assert.InDelta(t, 0.75, stats.RoundNumberRatio, 1e-9)
}

func TestStats_VelocityWindow(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := NewAnalyzer(24 * time.Hour)

	var txs []models.Transaction
	// Five transactions inside one day, then two stragglers a week later.
	for i := 0; i < 5; i++ {
		txs = append(txs, tx(1, 2, 10, base.Add(time.Duration(i)*time.Hour)))
	}
	txs = append(txs, tx(1, 2, 10, base.Add(8*24*time.Hour)))
	txs = append(txs, tx(1, 2, 10, base.Add(9*24*time.Hour)))

	stats := a.Stats(1, txs)
	assert.Equal(t, 5, stats.VelocityPerWindow)
}

func TestBuildGraph(t *testing.T) {
	base := time.Now()
	entities := []models.Entity{
		{ID: 1, Name: "Acme", Type: models.EntityTypeCorporation},
		{ID: 2, Name: "Borealis", Type: models.EntityTypeShellCompany},
	}
	txs := []models.Transaction{
		tx(1, 2, 100, base),
		tx(1, 2, 250, base),
		tx(2, 1, 50, base),
	}

	g := BuildGraph(entities, txs, map[uint]float64{2: 0.8})

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, 1, g.Nodes[0].Degree)
	assert.Equal(t, 0.8, g.Nodes[1].Score)

	require.Len(t, g.Links, 2)
	assert.Equal(t, uint(1), g.Links[0].SourceID)
	assert.Equal(t, 2, g.Links[0].Count)
	assert.True(t, g.Links[0].Volume.Equal(decimal.NewFromInt(350)))
}
