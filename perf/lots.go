package perf

import (
	"time"

	"github.com/rustyeddy/riskengine/sim"
)

// Lot is an open buy awaiting a matching sell. Owned by the matcher's
// per-symbol FIFO queue; quantity decrements as sells consume it.
type Lot struct {
	Symbol     string
	EntryPrice float64
	Quantity   int64
	EntryTime  time.Time
}

// ClosedTrade is one matched round trip. Derived from the trade
// stream, never mutated once produced. Confidence and strategy come
// from the closing sell so calibration can run off matcher output.
type ClosedTrade struct {
	Symbol     string
	Quantity   int64
	EntryPrice float64
	ExitPrice  float64
	PnL        float64
	PnLPct     float64
	EntryTime  time.Time
	ExitTime   time.Time
	Confidence float64
	Strategy   string
}

// MatchLots reconstructs closed round trips from a trade stream with
// FIFO matching: sells consume the oldest open lot first and may split
// a lot across several closing trades. Sells with no open lot for
// their symbol are ignored; short positions are not tracked. Pure
// function of its input, replayable.
func MatchLots(trades []sim.Trade) []ClosedTrade {
	closed, _ := match(trades)
	return closed
}

// OpenLots returns the still-open lots per symbol after replaying the
// stream, oldest first.
func OpenLots(trades []sim.Trade) map[string][]Lot {
	_, open := match(trades)
	return open
}

func match(trades []sim.Trade) ([]ClosedTrade, map[string][]Lot) {
	open := make(map[string][]Lot)
	var closed []ClosedTrade

	for _, t := range trades {
		switch t.Side {
		case sim.Buy:
			open[t.Symbol] = append(open[t.Symbol], Lot{
				Symbol:     t.Symbol,
				EntryPrice: t.FillPrice,
				Quantity:   t.Quantity,
				EntryTime:  t.Time,
			})

		case sim.Sell:
			queue := open[t.Symbol]
			remaining := t.Quantity
			for remaining > 0 && len(queue) > 0 {
				lot := &queue[0]
				matched := remaining
				if lot.Quantity < matched {
					matched = lot.Quantity
				}

				pnl := (t.FillPrice - lot.EntryPrice) * float64(matched)
				pnlPct := 0.0
				if lot.EntryPrice != 0 {
					pnlPct = (t.FillPrice - lot.EntryPrice) / lot.EntryPrice * 100
				}
				closed = append(closed, ClosedTrade{
					Symbol:     t.Symbol,
					Quantity:   matched,
					EntryPrice: lot.EntryPrice,
					ExitPrice:  t.FillPrice,
					PnL:        pnl,
					PnLPct:     pnlPct,
					EntryTime:  lot.EntryTime,
					ExitTime:   t.Time,
					Confidence: t.Confidence,
					Strategy:   t.Strategy,
				})

				remaining -= matched
				lot.Quantity -= matched
				if lot.Quantity == 0 {
					queue = queue[1:]
				}
			}
			if len(queue) == 0 {
				delete(open, t.Symbol)
			} else {
				open[t.Symbol] = queue
			}
		}
	}

	return closed, open
}
