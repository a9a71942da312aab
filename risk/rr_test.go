package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateRiskReward(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		entry, target  float64
		stop, minRatio float64
		wantRatio      float64
		wantAcceptable bool
	}{
		{"two to one accepted", 100, 110, 95, 2.0, 2.0, true},
		{"three to one accepted", 100, 115, 95, 2.0, 3.0, true},
		{"below minimum rejected", 100, 106, 95, 2.0, 1.2, false},
		{"stop at entry is free upside", 100, 110, 100, 2.0, math.Inf(1), true},
		{"stop above entry is free upside", 100, 110, 105, 2.0, math.Inf(1), true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := EvaluateRiskReward(tc.entry, tc.target, tc.stop, tc.minRatio)
			if math.IsInf(tc.wantRatio, 1) {
				assert.True(t, math.IsInf(got.Ratio, 1))
			} else {
				assert.InDelta(t, tc.wantRatio, got.Ratio, 1e-9)
			}
			assert.Equal(t, tc.wantAcceptable, got.Acceptable)
		})
	}
}

func TestEvaluateRiskRewardComponents(t *testing.T) {
	t.Parallel()

	got := EvaluateRiskReward(100, 112, 96, 2.0)
	assert.InDelta(t, 12, got.PotentialGain, 1e-9)
	assert.InDelta(t, 4, got.PotentialLoss, 1e-9)
	assert.InDelta(t, 3, got.Ratio, 1e-9)
	assert.True(t, got.Acceptable)
}
