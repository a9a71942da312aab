package perf

import (
	"math"
	"time"
)

// Confidence buckets are fixed: high >= 0.8, medium [0.6, 0.8),
// low < 0.6.
const (
	highConfidence   = 0.8
	mediumConfidence = 0.6
)

// Bucket summarizes outcomes within one confidence band.
type Bucket struct {
	Count   int
	WinRate float64
	AvgPnL  float64
}

// CalibrationReport answers whether stated confidence tracks realized
// outcomes: well calibrated iff high-bucket trades win more often than
// low-bucket trades.
type CalibrationReport struct {
	High           Bucket
	Medium         Bucket
	Low            Bucket
	WellCalibrated bool
}

// Calibration buckets closed trades by the confidence recorded on them.
func Calibration(closed []ClosedTrade) CalibrationReport {
	var high, med, low []ClosedTrade
	for _, t := range closed {
		switch {
		case t.Confidence >= highConfidence:
			high = append(high, t)
		case t.Confidence >= mediumConfidence:
			med = append(med, t)
		default:
			low = append(low, t)
		}
	}

	r := CalibrationReport{
		High:   bucket(high),
		Medium: bucket(med),
		Low:    bucket(low),
	}
	r.WellCalibrated = r.High.WinRate > r.Low.WinRate
	return r
}

func bucket(trades []ClosedTrade) Bucket {
	b := Bucket{Count: len(trades)}
	if len(trades) == 0 {
		return b
	}
	wins := 0
	total := 0.0
	for _, t := range trades {
		total += t.PnL
		if t.PnL > 0 {
			wins++
		}
	}
	b.WinRate = float64(wins) / float64(len(trades))
	b.AvgPnL = total / float64(len(trades))
	return b
}

// ThresholdSuggestion proposes a new auto-trade confidence threshold.
type ThresholdSuggestion struct {
	Current      float64
	Suggested    float64
	Reason       string
	Confidence   float64 // confidence in the suggestion itself
	ShouldChange bool
}

// SuggestThreshold turns a calibration report into a threshold
// proposal. At least 10 high-bucket trades are required before it
// will move the threshold; steps are 0.05 within [0.75, 0.98].
func SuggestThreshold(cal CalibrationReport, current float64) ThresholdSuggestion {
	high := cal.High

	var suggested, confidence float64
	var reason string

	switch {
	case high.WinRate > 0.70 && high.Count >= 10:
		suggested = math.Max(0.75, current-0.05)
		reason = "high-confidence trades performing well, can be more aggressive"
		confidence = 0.8

	case high.WinRate < 0.50 && high.Count >= 10:
		suggested = math.Min(0.98, current+0.05)
		reason = "high-confidence trades underperforming, need to be more selective"
		confidence = 0.9

	default:
		suggested = current
		reason = "current threshold seems appropriate"
		confidence = 0.5
	}

	return ThresholdSuggestion{
		Current:      current,
		Suggested:    suggested,
		Reason:       reason,
		Confidence:   confidence,
		ShouldChange: math.Abs(suggested-current) > 0.01,
	}
}

// WindowCalibration is one lookback window's calibration and the
// threshold suggestion it implies.
type WindowCalibration struct {
	Timeframe   string
	Days        int
	Trades      int
	Calibration CalibrationReport
	Suggestion  ThresholdSuggestion
}

// CalibrationWindows evaluates the standard lookbacks independently,
// each with its own trade subset and bucket counts.
func CalibrationWindows(closed []ClosedTrade, current float64, now time.Time) []WindowCalibration {
	out := make([]WindowCalibration, 0, len(Windows))
	for _, w := range Windows {
		subset := ClosedSince(closed, now.AddDate(0, 0, -w.Days))
		cal := Calibration(subset)
		out = append(out, WindowCalibration{
			Timeframe:   w.Label,
			Days:        w.Days,
			Trades:      len(subset),
			Calibration: cal,
			Suggestion:  SuggestThreshold(cal, current),
		})
	}
	return out
}
