// Package network derives graph-level signals from the transaction store:
// the per-entity statistics the scoring engine consumes and the node/link
// graph behind the network view.
package network

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"sentra/internal/models"
	"sentra/internal/services/risk"
)

// ReportingThreshold is the amount under which structuring typically keeps
// transactions; amounts in [ReportingThreshold-1000, ReportingThreshold)
// count toward the round-number ratio.
const ReportingThreshold = 10000

// Analyzer computes transaction statistics over a configurable rolling
// window.
type Analyzer struct {
	window time.Duration
}

// NewAnalyzer creates an analyzer. A non-positive window falls back to the
// seven-day default.
func NewAnalyzer(window time.Duration) *Analyzer {
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	return &Analyzer{window: window}
}

// Stats summarizes the given entity's transactions. A nil or empty slice
// yields zero-valued stats, which the engine treats as "no signal".
func (a *Analyzer) Stats(entityID uint, txs []models.Transaction) risk.TransactionStats {
	stats := risk.TransactionStats{
		Count:         len(txs),
		TotalSent:     decimal.Zero,
		TotalReceived: decimal.Zero,
	}
	if len(txs) == 0 {
		return stats
	}

	volumeByCounterparty := make(map[uint]decimal.Decimal)
	sentTo := make(map[uint]bool)
	receivedFrom := make(map[uint]bool)
	total := decimal.Zero
	roundCount := 0
	timestamps := make([]time.Time, 0, len(txs))

	for _, tx := range txs {
		amount := tx.Amount
		if amount.IsNegative() {
			// Contract violation; repositories reject these, but a stray row
			// must not poison the ratios.
			amount = decimal.Zero
		}

		var counterparty uint
		if tx.SenderID == entityID {
			stats.TotalSent = stats.TotalSent.Add(amount)
			counterparty = tx.ReceiverID
			sentTo[counterparty] = true
		} else {
			stats.TotalReceived = stats.TotalReceived.Add(amount)
			counterparty = tx.SenderID
			receivedFrom[counterparty] = true
		}

		volumeByCounterparty[counterparty] = volumeByCounterparty[counterparty].Add(amount)
		total = total.Add(amount)

		if isRoundOrStructured(amount) {
			roundCount++
		}
		timestamps = append(timestamps, tx.Timestamp)
	}

	stats.DistinctCounterparties = len(volumeByCounterparty)
	stats.RoundNumberRatio = float64(roundCount) / float64(len(txs))
	stats.VelocityPerWindow = maxInWindow(timestamps, a.window)

	if !total.IsZero() {
		top := decimal.Zero
		for _, v := range volumeByCounterparty {
			if v.GreaterThan(top) {
				top = v
			}
		}
		stats.ConcentrationRatio, _ = top.Div(total).Float64()
	}

	for id := range sentTo {
		if receivedFrom[id] {
			stats.CircularFlow = true
			break
		}
	}

	return stats
}

// isRoundOrStructured flags suspiciously round amounts (multiples of 1000
// at or above the reporting threshold) and amounts parked just under it.
func isRoundOrStructured(amount decimal.Decimal) bool {
	threshold := decimal.NewFromInt(ReportingThreshold)
	if amount.GreaterThanOrEqual(threshold) && amount.Mod(decimal.NewFromInt(1000)).IsZero() {
		return true
	}
	justUnder := threshold.Sub(decimal.NewFromInt(1000))
	return amount.GreaterThanOrEqual(justUnder) && amount.LessThan(threshold)
}

// maxInWindow returns the largest number of transactions observed inside
// any rolling window of the given length.
func maxInWindow(timestamps []time.Time, window time.Duration) int {
	if len(timestamps) == 0 {
		return 0
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	best, start := 0, 0
	for end := range timestamps {
		for timestamps[end].Sub(timestamps[start]) > window {
			start++
		}
		if n := end - start + 1; n > best {
			best = n
		}
	}
	return best
}

// Node is one entity in the network view.
type Node struct {
	ID    uint              `json:"id"`
	Name  string            `json:"name"`
	Type  models.EntityType `json:"type"`
	Score float64           `json:"score"`
	// Degree is the number of distinct counterparties.
	Degree int `json:"degree"`
}

// Link is one aggregated directed edge in the network view.
type Link struct {
	SourceID uint            `json:"source_id"`
	TargetID uint            `json:"target_id"`
	Count    int             `json:"count"`
	Volume   decimal.Decimal `json:"volume"`
}

// Graph is the full node/link structure for the network endpoint.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// BuildGraph aggregates transactions into a directed graph, attaching each
// entity's latest score when available. Output ordering is deterministic.
func BuildGraph(entities []models.Entity, txs []models.Transaction, scores map[uint]float64) Graph {
	type edgeKey struct{ src, dst uint }
	edges := make(map[edgeKey]*Link)
	degree := make(map[uint]map[uint]bool)

	touch := func(a, b uint) {
		if degree[a] == nil {
			degree[a] = make(map[uint]bool)
		}
		degree[a][b] = true
	}

	for _, tx := range txs {
		key := edgeKey{tx.SenderID, tx.ReceiverID}
		link, ok := edges[key]
		if !ok {
			link = &Link{SourceID: tx.SenderID, TargetID: tx.ReceiverID, Volume: decimal.Zero}
			edges[key] = link
		}
		link.Count++
		link.Volume = link.Volume.Add(tx.Amount)
		touch(tx.SenderID, tx.ReceiverID)
		touch(tx.ReceiverID, tx.SenderID)
	}

	g := Graph{
		Nodes: make([]Node, 0, len(entities)),
		Links: make([]Link, 0, len(edges)),
	}
	for _, e := range entities {
		g.Nodes = append(g.Nodes, Node{
			ID:     e.ID,
			Name:   e.Name,
			Type:   e.Type,
			Score:  scores[e.ID],
			Degree: len(degree[e.ID]),
		})
	}
	for _, link := range edges {
		g.Links = append(g.Links, *link)
	}

	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	sort.Slice(g.Links, func(i, j int) bool {
		if g.Links[i].SourceID != g.Links[j].SourceID {
			return g.Links[i].SourceID < g.Links[j].SourceID
		}
		return g.Links[i].TargetID < g.Links[j].TargetID
	})
	return g
}
