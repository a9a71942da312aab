package perf

import "time"

// WindowSpec names a rolling lookback window.
type WindowSpec struct {
	Label string
	Days  int
}

// Windows are the standard lookbacks for live trade history.
var Windows = []WindowSpec{
	{Label: "short", Days: 7},
	{Label: "medium", Days: 30},
	{Label: "long", Days: 90},
}

// StrategyStats breaks a window down by strategy label.
type StrategyStats struct {
	Trades   int
	Wins     int
	Losses   int
	TotalPnL float64
	WinRate  float64
	AvgPnL   float64
}

// WindowReport is the per-window performance view: headline numbers
// plus confidence-bucket and per-strategy sub-reports. Recomputed on
// demand from the trade stream; the stream is the source of truth.
type WindowReport struct {
	Timeframe    string
	Days         int
	TotalTrades  int
	TotalPnL     float64
	WinRate      float64
	AvgWin       float64
	AvgLoss      float64
	ProfitFactor float64
	Calibration  CalibrationReport
	Strategies   map[string]StrategyStats
}

// Window summarizes one set of closed trades under a timeframe label.
func Window(label string, days int, closed []ClosedTrade) WindowReport {
	r := WindowReport{
		Timeframe:    label,
		Days:         days,
		TotalTrades:  len(closed),
		WinRate:      winRate(closed),
		ProfitFactor: profitFactor(closed),
		Calibration:  Calibration(closed),
		Strategies:   strategyStats(closed),
	}

	winSum, lossSum := 0.0, 0.0
	wins, losses := 0, 0
	for _, t := range closed {
		r.TotalPnL += t.PnL
		if t.PnL > 0 {
			winSum += t.PnL
			wins++
		} else if t.PnL < 0 {
			lossSum += t.PnL
			losses++
		}
	}
	if wins > 0 {
		r.AvgWin = winSum / float64(wins)
	}
	if losses > 0 {
		r.AvgLoss = lossSum / float64(losses)
	}

	return r
}

// WindowReports evaluates the standard windows independently, each
// with its own trade subset. No cross-window smoothing.
func WindowReports(closed []ClosedTrade, now time.Time) []WindowReport {
	out := make([]WindowReport, 0, len(Windows))
	for _, w := range Windows {
		cutoff := now.AddDate(0, 0, -w.Days)
		out = append(out, Window(w.Label, w.Days, ClosedSince(closed, cutoff)))
	}
	return out
}

// ClosedSince filters trades whose exit is at or after cutoff.
func ClosedSince(closed []ClosedTrade, cutoff time.Time) []ClosedTrade {
	var out []ClosedTrade
	for _, t := range closed {
		if !t.ExitTime.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// EquitySince filters equity points at or after cutoff.
func EquitySince(curve []EquityPoint, cutoff time.Time) []EquityPoint {
	var out []EquityPoint
	for _, p := range curve {
		if !p.Time.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

func strategyStats(closed []ClosedTrade) map[string]StrategyStats {
	out := make(map[string]StrategyStats)
	for _, t := range closed {
		if t.Strategy == "" {
			continue
		}
		s := out[t.Strategy]
		s.Trades++
		s.TotalPnL += t.PnL
		if t.PnL > 0 {
			s.Wins++
		} else if t.PnL < 0 {
			s.Losses++
		}
		out[t.Strategy] = s
	}
	for name, s := range out {
		s.WinRate = float64(s.Wins) / float64(s.Trades)
		s.AvgPnL = s.TotalPnL / float64(s.Trades)
		out[name] = s
	}
	return out
}
