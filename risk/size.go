package risk

import "math"

// SizeInputs feeds the position sizer. Percentages are whole numbers;
// CurrentExposurePct is the value of all open positions, this symbol
// included, as a percentage of account value.
type SizeInputs struct {
	AccountValue       float64
	Price              float64
	Confidence         float64
	CurrentExposurePct float64
	MaxPositionPct     float64
	MaxExposurePct     float64
}

// Shares sizes a new position by scaling the per-position cap with the
// signal's confidence, then clamping to the exposure headroom left
// under the portfolio cap. Whole shares only, never negative.
func Shares(in SizeInputs) int64 {
	if in.Price <= 0 || in.AccountValue <= 0 {
		return 0
	}

	target := in.MaxPositionPct * in.Confidence
	avail := in.MaxExposurePct - in.CurrentExposurePct
	if avail <= 0 {
		return 0
	}

	pct := math.Min(target, avail)
	if pct <= 0 {
		return 0
	}

	shares := math.Floor(in.AccountValue * pct / 100 / in.Price)
	if shares < 0 {
		return 0
	}
	return int64(shares)
}
