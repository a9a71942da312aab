package perf

import (
	"math"
	"time"
)

// EquityPoint is one step of the equity curve: total equity, cash and
// the value of open positions at a simulated time. Timestamps are
// non-decreasing across the sequence.
type EquityPoint struct {
	Time           time.Time
	Equity         float64
	Cash           float64
	PositionsValue float64
}

// Summary holds the headline statistics for an equity curve plus its
// closed trades. Degenerate inputs resolve to neutral values: no NaN,
// no division by zero.
type Summary struct {
	InitialCapital float64
	FinalValue     float64
	TotalReturn    float64
	TotalReturnPct float64
	SharpeRatio    float64
	// MaxDrawdownPct is the worst peak-to-trough decline as a negative
	// percentage; 0 for a curve that never dips.
	MaxDrawdownPct float64
	WinRate        float64
	// ProfitFactor is +Inf with winners and no losers, 0 with no trades.
	ProfitFactor float64
	TotalTrades  int
	AvgTradePnL  float64
	TradingDays  int
}

// Summarize computes the full statistics set. The same code serves a
// finished backtest and rolling live windows; callers filter the curve
// and trades by timestamp first.
func Summarize(curve []EquityPoint, closed []ClosedTrade, initialCapital float64) Summary {
	s := Summary{InitialCapital: initialCapital, TradingDays: len(curve)}

	if len(curve) > 0 {
		s.FinalValue = curve[len(curve)-1].Equity
		s.TotalReturn = s.FinalValue - initialCapital
		if initialCapital != 0 {
			s.TotalReturnPct = s.TotalReturn / initialCapital * 100
		}
	}

	s.SharpeRatio = sharpe(periodReturns(curve))
	s.MaxDrawdownPct = maxDrawdown(curve)

	s.TotalTrades = len(closed)
	s.WinRate = winRate(closed)
	s.ProfitFactor = profitFactor(closed)
	if len(closed) > 0 {
		total := 0.0
		for _, t := range closed {
			total += t.PnL
		}
		s.AvgTradePnL = total / float64(len(closed))
	}

	return s
}

// periodReturns is the pointwise percentage change between consecutive
// equity points.
func periodReturns(curve []EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	out := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (curve[i].Equity-prev)/prev)
	}
	return out
}

// sharpe annualizes by sqrt(252) trading days. Zero when fewer than
// two returns exist or the variance is zero: equal returns for any
// mean give exactly 0, never NaN.
func sharpe(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(252)
}

// maxDrawdown is min((equity - peak)/peak) over the curve, as a
// negative percentage. 0 for a monotonically non-decreasing curve.
func maxDrawdown(curve []EquityPoint) float64 {
	worst := 0.0
	peak := 0.0
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		if peak <= 0 {
			continue
		}
		dd := (p.Equity - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst * 100
}

func winRate(closed []ClosedTrade) float64 {
	if len(closed) == 0 {
		return 0
	}
	wins := 0
	for _, t := range closed {
		if t.PnL > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(closed))
}

// profitFactor is gross profit over gross loss: +Inf when there are
// winners and no losers, 0 when there are no trades at all.
func profitFactor(closed []ClosedTrade) float64 {
	if len(closed) == 0 {
		return 0
	}
	grossProfit, grossLoss := 0.0, 0.0
	for _, t := range closed {
		if t.PnL > 0 {
			grossProfit += t.PnL
		} else if t.PnL < 0 {
			grossLoss += -t.PnL
		}
	}
	if grossLoss == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return grossProfit / grossLoss
}
