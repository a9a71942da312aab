package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	base := GateInputs{
		Confidence:        0.96,
		BaseThreshold:     0.95,
		DailyPnLPct:       0,
		DailyLossLimitPct: 2.0,
		RecentWinRate:     0.6,
		RecentTrades:      20,
	}

	tests := []struct {
		name    string
		mutate  func(*GateInputs)
		want    Outcome
		wantGap float64
	}{
		{"above threshold allows", func(in *GateInputs) {}, Allow, 0},
		{"at threshold allows", func(in *GateInputs) { in.Confidence = 0.95 }, Allow, 0},
		{"just below requires approval", func(in *GateInputs) { in.Confidence = 0.94 }, RequireApproval, 0.01},
		{"well below requires approval", func(in *GateInputs) { in.Confidence = 0.60 }, RequireApproval, 0.35},
		{"circuit breaker denies", func(in *GateInputs) { in.DailyPnLPct = -1.7 }, Deny, 0},
		{
			"circuit breaker ignores confidence",
			func(in *GateInputs) { in.DailyPnLPct = -1.7; in.Confidence = 1.0 },
			Deny, 0,
		},
		{
			"loss short of breaker still allows",
			func(in *GateInputs) { in.DailyPnLPct = -1.5 },
			Allow, 0,
		},
		{
			"cold streak raises the bar",
			func(in *GateInputs) { in.RecentWinRate = 0.3; in.Confidence = 0.97 },
			RequireApproval, 0.03,
		},
		{
			"cold streak still beatable",
			func(in *GateInputs) { in.RecentWinRate = 0.3; in.Confidence = 1.0 },
			Allow, 0,
		},
		{
			"no history leaves threshold alone",
			func(in *GateInputs) { in.RecentTrades = 0; in.RecentWinRate = 0 },
			Allow, 0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := base
			tc.mutate(&in)
			got := Decide(in)
			assert.Equal(t, tc.want, got.Outcome)
			assert.InDelta(t, tc.wantGap, got.Gap, 1e-9)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestDecideBreakerBoundary(t *testing.T) {
	t.Parallel()

	// Exactly at 80% of the limit the breaker has not fired yet.
	in := GateInputs{
		Confidence:        0.96,
		BaseThreshold:     0.95,
		DailyPnLPct:       -1.6,
		DailyLossLimitPct: 2.0,
		RecentWinRate:     0.6,
		RecentTrades:      10,
	}
	assert.Equal(t, Allow, Decide(in).Outcome)

	in.DailyPnLPct = -1.6000001
	assert.Equal(t, Deny, Decide(in).Outcome)
}
