package risk

import (
	"fmt"
	"strings"

	"sentra/internal/models"
)

// keywordCategory groups the adverse terms that turn an evidence item into
// an evidence-match factor. The category only flavors the factor
// description; the weight is always confidence x source reliability.
var keywordCategories = []struct {
	label    string
	keywords []string
}{
	{"sanctions match", []string{"sanction", "prohibited", "restricted", "embargo", "blocked"}},
	{"politically exposed", []string{"pep", "politically exposed", "government official", "state-owned"}},
	{"regulatory action", []string{"regulator", "violation", "enforcement", "penalty", "fined", "compliance failure"}},
	{"adverse media", []string{"fraud", "laundering", "bribery", "corruption", "investigation", "indicted", "criminal", "scandal"}},
	{"opacity", []string{"offshore", "shell", "nominee", "undisclosed", "anonymous", "opaque", "concealed"}},
}

// extractFactors converts the raw signals of one snapshot into the factor
// list, in a fixed family order: entity-type prior, transaction patterns,
// evidence matches (input order), AI flags (document order). The fixed
// order keeps extraction deterministic before the explanation sort.
func (e *Engine) extractFactors(in Input) []Factor {
	factors := make([]Factor, 0, 1+len(in.Evidence))

	factors = append(factors, e.typePriorFactor(in.Profile))
	factors = append(factors, e.patternFactors(in.Stats)...)
	factors = append(factors, e.evidenceFactors(in.Evidence)...)
	factors = append(factors, e.aiFactors(in.Analysis)...)

	return factors
}

// typePriorFactor produces exactly one factor from the declared entity
// type. Unknown types fall back to the "other" prior, so every entity with
// a type has a defined score floor.
func (e *Engine) typePriorFactor(p EntityProfile) Factor {
	typ := models.NormalizeEntityType(string(p.Type))
	prior, ok := e.cfg.TypePriors[typ]
	if !ok {
		prior = e.cfg.TypePriors[models.EntityTypeOther]
	}
	return Factor{
		Description: fmt.Sprintf("entity type: %s", typ),
		Weight:      clamp01(prior),
		Source:      FactorEntityType,
	}
}

// patternFactors detects each transaction pattern independently. A pattern
// fires when its statistic exceeds the configured threshold; the weight
// grows proportionally with the statistic and is capped at 1.
func (e *Engine) patternFactors(s TransactionStats) []Factor {
	var factors []Factor

	if s.VelocityPerWindow > e.cfg.VelocityThreshold {
		w := scaledWeight(e.cfg.VelocityWeight, float64(s.VelocityPerWindow), float64(e.cfg.VelocityThreshold))
		factors = append(factors, Factor{
			Description: fmt.Sprintf("high transaction velocity: %d transactions in window", s.VelocityPerWindow),
			Weight:      w,
			Source:      FactorTransactionPattern,
		})
	}

	if asym := volumeAsymmetry(s); asym > e.cfg.AsymmetryThreshold {
		factors = append(factors, Factor{
			Description: fmt.Sprintf("volume asymmetry: %.0f%% imbalance between sent and received", asym*100),
			Weight:      scaledWeight(e.cfg.AsymmetryWeight, asym, e.cfg.AsymmetryThreshold),
			Source:      FactorTransactionPattern,
		})
	}

	if s.ConcentrationRatio > e.cfg.ConcentrationThreshold {
		factors = append(factors, Factor{
			Description: fmt.Sprintf("counterparty concentration: top counterparty holds %.0f%% of volume", s.ConcentrationRatio*100),
			Weight:      scaledWeight(e.cfg.ConcentrationWeight, s.ConcentrationRatio, e.cfg.ConcentrationThreshold),
			Source:      FactorTransactionPattern,
		})
	}

	if s.RoundNumberRatio > e.cfg.RoundNumberThreshold {
		factors = append(factors, Factor{
			Description: fmt.Sprintf("structuring pattern: %.0f%% of transactions at round or sub-threshold amounts", s.RoundNumberRatio*100),
			Weight:      scaledWeight(e.cfg.StructuringWeight, s.RoundNumberRatio, e.cfg.RoundNumberThreshold),
			Source:      FactorTransactionPattern,
		})
	}

	if s.CircularFlow {
		factors = append(factors, Factor{
			Description: "circular flow: counterparty appears on both sides",
			Weight:      clamp01(e.cfg.CircularWeight),
			Source:      FactorTransactionPattern,
		})
	}

	return factors
}

// volumeAsymmetry returns |sent-received|/(sent+received) in [0,1], or 0
// when there is no volume at all.
func volumeAsymmetry(s TransactionStats) float64 {
	total := s.TotalSent.Add(s.TotalReceived)
	if total.IsZero() {
		return 0
	}
	diff := s.TotalSent.Sub(s.TotalReceived).Abs()
	ratio, _ := diff.Div(total).Float64()
	return clamp01(ratio)
}

// evidenceFactors matches each evidence item against the adverse-term
// taxonomy. Items from the sanctions list are a match by definition: the
// hit itself is the signal, whatever its wording. Confidence outside [0,1]
// is clamped, never propagated.
func (e *Engine) evidenceFactors(items []EvidenceItem) []Factor {
	var factors []Factor
	for _, item := range items {
		category, ok := matchCategory(item.Content)
		if item.Source == models.SourceSanctions && !ok {
			category, ok = "sanctions match", true
		}
		if !ok {
			continue
		}
		reliability := e.cfg.SourceReliability[item.Source]
		factors = append(factors, Factor{
			Description: fmt.Sprintf("%s in %s evidence", category, item.Source),
			Weight:      clamp01(clamp01(item.Confidence) * reliability),
			Source:      FactorEvidenceMatch,
		})
	}
	return factors
}

func matchCategory(content string) (string, bool) {
	lowered := strings.ToLower(content)
	for _, cat := range keywordCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lowered, kw) {
				return cat.label, true
			}
		}
	}
	return "", false
}

// aiFactors turns each explicit AI risk indicator into a factor. A nil
// document contributes nothing: absence of the AI signal must never read as
// absence of risk.
func (e *Engine) aiFactors(a *AIAnalysis) []Factor {
	if a == nil {
		return nil
	}
	reliability := e.cfg.SourceReliability[models.SourceAIAnalysis]
	var factors []Factor
	for _, ind := range a.RiskIndicators {
		desc := strings.TrimSpace(ind.Description)
		if desc == "" {
			continue
		}
		factors = append(factors, Factor{
			Description: desc,
			Weight:      clamp01(clamp01(ind.Severity) * reliability),
			Source:      FactorAIFlag,
		})
	}
	return factors
}

// scaledWeight grows the base weight proportionally with how far the
// statistic sits above its threshold, capped at 1.
func scaledWeight(base, stat, threshold float64) float64 {
	if threshold <= 0 {
		return clamp01(base)
	}
	return clamp01(base * stat / threshold)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
