package strategies

import (
	"fmt"
	"math"

	"github.com/rustyeddy/riskengine/market"
	"github.com/rustyeddy/riskengine/risk"
	"github.com/rustyeddy/riskengine/sim"
)

// SMACross trades moving-average crossovers: buy when the fast average
// crosses above the slow one, flatten when it crosses back below.
// Confidence scales with the separation between the averages, so a
// decisive cross sizes larger than a graze.
type SMACross struct {
	Fast           int
	Slow           int
	MaxPositionPct float64
	MaxExposurePct float64
}

func NewSMACross(fast, slow int, maxPositionPct, maxExposurePct float64) (*SMACross, error) {
	if fast <= 0 || slow <= 0 || fast >= slow {
		return nil, fmt.Errorf("strategies: need 0 < fast < slow, got fast=%d slow=%d", fast, slow)
	}
	return &SMACross{
		Fast:           fast,
		Slow:           slow,
		MaxPositionPct: maxPositionPct,
		MaxExposurePct: maxExposurePct,
	}, nil
}

func (s *SMACross) Name() string { return "sma_cross" }

func (s *SMACross) OnBar(snap Snapshot) (sim.Order, bool) {
	n := len(snap.History)
	if n < s.Slow+1 {
		return sim.Order{}, false
	}

	fastNow := smaClose(snap.History[n-s.Fast:])
	slowNow := smaClose(snap.History[n-s.Slow:])
	fastPrev := smaClose(snap.History[n-s.Fast-1 : n-1])
	slowPrev := smaClose(snap.History[n-s.Slow-1 : n-1])

	crossedUp := fastPrev <= slowPrev && fastNow > slowNow
	crossedDown := fastPrev >= slowPrev && fastNow < slowNow

	switch {
	case crossedUp && snap.Position == 0:
		conf := s.confidence(fastNow, slowNow)
		qty := risk.Shares(risk.SizeInputs{
			AccountValue:       snap.AccountValue,
			Price:              snap.Bar.Close,
			Confidence:         conf,
			CurrentExposurePct: snap.ExposurePct,
			MaxPositionPct:     s.MaxPositionPct,
			MaxExposurePct:     s.MaxExposurePct,
		})
		if qty == 0 {
			return sim.Order{}, false
		}
		return sim.Order{
			Symbol:     snap.Symbol,
			Side:       sim.Buy,
			Quantity:   qty,
			Time:       snap.Bar.Time,
			Confidence: conf,
			Strategy:   s.Name(),
			Rationale: fmt.Sprintf("SMA(%d) %.2f crossed above SMA(%d) %.2f",
				s.Fast, fastNow, s.Slow, slowNow),
		}, true

	case crossedDown && snap.Position > 0:
		return sim.Order{
			Symbol:     snap.Symbol,
			Side:       sim.Sell,
			Quantity:   snap.Position,
			Time:       snap.Bar.Time,
			Confidence: s.confidence(slowNow, fastNow),
			Strategy:   s.Name(),
			Rationale: fmt.Sprintf("SMA(%d) %.2f crossed below SMA(%d) %.2f",
				s.Fast, fastNow, s.Slow, slowNow),
		}, true
	}

	return sim.Order{}, false
}

// confidence maps the relative separation of the averages onto
// [0.6, 0.95]: a 1% spread already reads as conviction.
func (s *SMACross) confidence(lead, lag float64) float64 {
	if lag == 0 {
		return 0.6
	}
	sep := math.Abs(lead-lag) / lag
	return math.Min(0.95, 0.6+sep*35)
}

func smaClose(bars []market.Bar) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Close
	}
	return sum / float64(len(bars))
}
