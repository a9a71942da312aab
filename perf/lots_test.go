package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/riskengine/sim"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func buy(symbol string, qty int64, price float64, d int) sim.Trade {
	return sim.Trade{Symbol: symbol, Side: sim.Buy, Quantity: qty, FillPrice: price, Time: day(d)}
}

func sell(symbol string, qty int64, price float64, d int) sim.Trade {
	return sim.Trade{Symbol: symbol, Side: sim.Sell, Quantity: qty, FillPrice: price, Time: day(d)}
}

func TestMatchLotsFIFOWithSplit(t *testing.T) {
	t.Parallel()

	// buy 10@100, buy 5@110, sell 12@120: the sell consumes the whole
	// first lot and splits the second.
	trades := []sim.Trade{
		buy("AAPL", 10, 100, 1),
		buy("AAPL", 5, 110, 2),
		sell("AAPL", 12, 120, 3),
	}

	closed := MatchLots(trades)
	assert.Len(t, closed, 2)

	assert.Equal(t, int64(10), closed[0].Quantity)
	assert.InDelta(t, 200, closed[0].PnL, 1e-9)
	assert.InDelta(t, 100, closed[0].EntryPrice, 1e-9)
	assert.Equal(t, day(1), closed[0].EntryTime)
	assert.Equal(t, day(3), closed[0].ExitTime)

	assert.Equal(t, int64(2), closed[1].Quantity)
	assert.InDelta(t, 20, closed[1].PnL, 1e-9)
	assert.InDelta(t, 110, closed[1].EntryPrice, 1e-9)

	open := OpenLots(trades)
	assert.Len(t, open["AAPL"], 1)
	assert.Equal(t, int64(3), open["AAPL"][0].Quantity)
	assert.InDelta(t, 110, open["AAPL"][0].EntryPrice, 1e-9)
}

func TestMatchLotsSellAcrossManyLots(t *testing.T) {
	t.Parallel()

	trades := []sim.Trade{
		buy("AAPL", 2, 100, 1),
		buy("AAPL", 2, 105, 2),
		buy("AAPL", 2, 110, 3),
		sell("AAPL", 6, 120, 4),
	}

	closed := MatchLots(trades)
	assert.Len(t, closed, 3)
	assert.InDelta(t, 40, closed[0].PnL, 1e-9)
	assert.InDelta(t, 30, closed[1].PnL, 1e-9)
	assert.InDelta(t, 20, closed[2].PnL, 1e-9)
	assert.Empty(t, OpenLots(trades))
}

func TestMatchLotsUnmatchedSellIgnored(t *testing.T) {
	t.Parallel()

	trades := []sim.Trade{
		sell("AAPL", 5, 120, 1),
		buy("MSFT", 3, 300, 2),
		sell("MSFT", 5, 310, 3), // only 3 can match
	}

	closed := MatchLots(trades)
	assert.Len(t, closed, 1)
	assert.Equal(t, "MSFT", closed[0].Symbol)
	assert.Equal(t, int64(3), closed[0].Quantity)
}

func TestMatchLotsPerSymbolQueues(t *testing.T) {
	t.Parallel()

	trades := []sim.Trade{
		buy("AAPL", 5, 100, 1),
		buy("MSFT", 5, 300, 1),
		sell("AAPL", 5, 110, 2),
	}

	closed := MatchLots(trades)
	assert.Len(t, closed, 1)
	assert.Equal(t, "AAPL", closed[0].Symbol)

	open := OpenLots(trades)
	assert.Len(t, open["MSFT"], 1)
	_, hasAAPL := open["AAPL"]
	assert.False(t, hasAAPL)
}

func TestMatchLotsCarriesConfidenceAndStrategy(t *testing.T) {
	t.Parallel()

	s := sell("AAPL", 5, 110, 2)
	s.Confidence = 0.85
	s.Strategy = "sma_cross"

	closed := MatchLots([]sim.Trade{buy("AAPL", 5, 100, 1), s})
	assert.Len(t, closed, 1)
	assert.InDelta(t, 0.85, closed[0].Confidence, 1e-9)
	assert.Equal(t, "sma_cross", closed[0].Strategy)
}

func TestMatchLotsIsPure(t *testing.T) {
	t.Parallel()

	trades := []sim.Trade{
		buy("AAPL", 10, 100, 1),
		sell("AAPL", 4, 105, 2),
	}

	first := MatchLots(trades)
	second := MatchLots(trades)
	assert.Equal(t, first, second)
}

func TestMatchLotsPnLPct(t *testing.T) {
	t.Parallel()

	closed := MatchLots([]sim.Trade{buy("AAPL", 1, 100, 1), sell("AAPL", 1, 125, 2)})
	assert.Len(t, closed, 1)
	assert.InDelta(t, 25, closed[0].PnLPct, 1e-9)
}
