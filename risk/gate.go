package risk

import "fmt"

// Outcome is the gate's verdict on a proposed auto-execution.
type Outcome string

const (
	Allow           Outcome = "allow"
	Deny            Outcome = "deny"
	RequireApproval Outcome = "require_approval"
)

// GateInputs is everything the gate considers for one proposed trade.
type GateInputs struct {
	Confidence        float64
	BaseThreshold     float64
	DailyPnLPct       float64
	DailyLossLimitPct float64
	RecentWinRate     float64
	RecentTrades      int
}

// Decision carries the verdict plus the threshold actually applied.
// Gap is how much confidence fell short when approval is required.
type Decision struct {
	Outcome            Outcome
	EffectiveThreshold float64
	Gap                float64
	Reason             string
}

// Decide runs the gate checks in order. The circuit breaker fires
// before any confidence comparison: once daily losses reach 80% of the
// daily limit no confidence level trades automatically. A cold streak
// (recent win rate under 0.4) raises the bar by 0.05.
func Decide(in GateInputs) Decision {
	if in.DailyPnLPct < -0.8*in.DailyLossLimitPct {
		return Decision{
			Outcome: Deny,
			Reason: fmt.Sprintf("daily loss %.2f%% is within 80%% of the %.2f%% limit",
				in.DailyPnLPct, in.DailyLossLimitPct),
		}
	}

	effective := in.BaseThreshold
	if in.RecentTrades > 0 && in.RecentWinRate < 0.4 {
		effective += 0.05
	}

	if in.Confidence >= effective {
		return Decision{
			Outcome:            Allow,
			EffectiveThreshold: effective,
			Reason:             fmt.Sprintf("confidence %.2f meets threshold %.2f", in.Confidence, effective),
		}
	}

	return Decision{
		Outcome:            RequireApproval,
		EffectiveThreshold: effective,
		Gap:                effective - in.Confidence,
		Reason:             fmt.Sprintf("confidence %.2f below threshold %.2f", in.Confidence, effective),
	}
}
