package risk

import "math"

// RiskReward is the gain/loss profile of a proposed entry against its
// target and stop.
type RiskReward struct {
	Ratio         float64
	PotentialGain float64
	PotentialLoss float64
	Acceptable    bool
}

// EvaluateRiskReward compares potential gain (target - entry) with
// potential loss (entry - stop). A stop at or above entry means no
// modeled downside: the ratio is +Inf and always acceptable.
func EvaluateRiskReward(entry, target, stop, minRatio float64) RiskReward {
	rr := RiskReward{
		PotentialGain: target - entry,
		PotentialLoss: entry - stop,
	}

	if rr.PotentialLoss <= 0 {
		rr.Ratio = math.Inf(1)
		rr.Acceptable = true
		return rr
	}

	rr.Ratio = rr.PotentialGain / rr.PotentialLoss
	rr.Acceptable = rr.Ratio >= minRatio
	return rr
}
