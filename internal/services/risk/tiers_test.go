package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{0.0, TierVeryLow},
		{0.19, TierVeryLow},
		{0.2, TierLow}, // boundary belongs to the higher tier
		{0.39, TierLow},
		{0.4, TierMedium},
		{0.59, TierMedium},
		{0.6, TierHigh},
		{0.79, TierHigh},
		{0.8, TierVeryHigh},
		{1.0, TierVeryHigh},
		// out of range clamps instead of leaving a gap
		{-0.5, TierVeryLow},
		{1.5, TierVeryHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTier(tt.score), "score %v", tt.score)
	}
}

func TestClassifyTier_Total(t *testing.T) {
	// Every score in [0,1] maps to exactly one tier; sweep in small steps.
	for i := 0; i <= 1000; i++ {
		score := float64(i) / 1000
		tier := ClassifyTier(score)
		assert.Contains(t, []Tier{TierVeryLow, TierLow, TierMedium, TierHigh, TierVeryHigh}, tier)
	}
}

func TestClassifyBand(t *testing.T) {
	tests := []struct {
		score10 float64
		want    Band
	}{
		{0, BandLow},
		{3.99, BandLow},
		{4, BandMedium}, // boundary belongs to the higher band
		{6.99, BandMedium},
		{7, BandHigh},
		{8.99, BandHigh},
		{9, BandCritical},
		{10, BandCritical},
		{-1, BandLow},
		{11, BandCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyBand(tt.score10), "score %v", tt.score10)
	}
}

func TestClassifyBand_Total(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		score := float64(i) / 100
		band := ClassifyBand(score)
		assert.Contains(t, []Band{BandLow, BandMedium, BandHigh, BandCritical}, band)
	}
}
