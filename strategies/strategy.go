// Package strategies holds the signal generators the backtest runner
// drives. A strategy sees one bar at a time plus its account context
// and may emit at most one order per bar.
package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/riskengine/market"
	"github.com/rustyeddy/riskengine/sim"
)

// Snapshot is what the runner hands a strategy on each bar: the bar
// itself, the symbol's history up to and including it, and the account
// state the sizer needs. History is oldest first.
type Snapshot struct {
	Symbol       string
	Bar          market.Bar
	History      []market.Bar
	Cash         float64
	Position     int64
	AccountValue float64
	// ExposurePct is open position value as a percentage of account
	// value, all symbols included.
	ExposurePct float64
}

// Strategy turns bars into orders. Implementations must not mutate the
// snapshot's history slice.
type Strategy interface {
	Name() string
	OnBar(snap Snapshot) (sim.Order, bool)
}

// Noop never trades. Useful for dry runs that only exercise data
// loading and equity recording.
type Noop struct{}

func (Noop) Name() string                     { return "noop" }
func (Noop) OnBar(Snapshot) (sim.Order, bool) { return sim.Order{}, false }

// ByName builds a strategy from a CLI-facing name.
func ByName(name string, fast, slow int, maxPositionPct, maxExposurePct float64) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return Noop{}, nil

	case "sma-cross", "smacross", "sma_cross":
		return NewSMACross(fast, slow, maxPositionPct, maxExposurePct)

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, sma-cross)", name)
	}
}
