package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/riskengine/journal"
	"github.com/rustyeddy/riskengine/market"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func newTestSim(t *testing.T, cash, slippage, commission float64) *Simulator {
	t.Helper()

	cache := market.NewSeriesCache()
	cache.Put("AAPL", []market.Bar{
		{Symbol: "AAPL", Time: day(2), Close: 100},
		{Symbol: "AAPL", Time: day(3), Close: 110},
		{Symbol: "AAPL", Time: day(4), Close: 120},
	})

	s, err := New(Config{
		Prices:       cache,
		InitialCash:  cash,
		SlippageRate: slippage,
		Commission:   commission,
	})
	assert.NoError(t, err)
	return s
}

func TestExecuteBuyAppliesSlippageAndCommission(t *testing.T) {
	t.Parallel()

	s := newTestSim(t, 10000, 0.001, 1.0)

	res, err := s.Execute(Order{Symbol: "AAPL", Side: Buy, Quantity: 10, Time: day(2), Confidence: 0.9, Strategy: "test"})
	assert.NoError(t, err)
	assert.True(t, res.Filled())

	// Buyer pays price*(1+slippage) plus the flat commission.
	assert.InDelta(t, 100.1, res.Trade.FillPrice, 1e-9)
	assert.InDelta(t, 1002.0, res.Trade.Value, 1e-9)
	assert.InDelta(t, 10000-1002.0, s.Ledger().Cash(), 1e-9)
	assert.Equal(t, int64(10), s.Ledger().Quantity("AAPL"))
	assert.InDelta(t, s.Ledger().Cash(), res.Trade.CashAfter, 1e-9)
}

func TestExecuteSellReceivesLess(t *testing.T) {
	t.Parallel()

	s := newTestSim(t, 10000, 0.001, 1.0)

	res, err := s.Execute(Order{Symbol: "AAPL", Side: Buy, Quantity: 10, Time: day(2)})
	assert.NoError(t, err)
	assert.True(t, res.Filled())

	res, err = s.Execute(Order{Symbol: "AAPL", Side: Sell, Quantity: 10, Time: day(3)})
	assert.NoError(t, err)
	assert.True(t, res.Filled())

	// Seller receives price*(1-slippage) minus the flat commission.
	assert.InDelta(t, 109.89, res.Trade.FillPrice, 1e-9)
	assert.InDelta(t, 1098.9-1.0, res.Trade.Value, 1e-9)
	assert.Equal(t, int64(0), s.Ledger().Quantity("AAPL"))
}

func TestExecuteRoundTripRestoresCashExactly(t *testing.T) {
	t.Parallel()

	// Zero slippage, zero commission: buy then sell all at the same
	// price must restore cash to its original value exactly.
	s := newTestSim(t, 5000, 0, 0)

	res, err := s.Execute(Order{Symbol: "AAPL", Side: Buy, Quantity: 10, Time: day(2)})
	assert.NoError(t, err)
	assert.True(t, res.Filled())

	res, err = s.Execute(Order{Symbol: "AAPL", Side: Sell, Quantity: 10, Time: day(2)})
	assert.NoError(t, err)
	assert.True(t, res.Filled())

	assert.Equal(t, 5000.0, s.Ledger().Cash())
	_, held := s.Ledger().Positions()["AAPL"]
	assert.False(t, held)
}

func TestExecuteRejectsInsufficientFunds(t *testing.T) {
	t.Parallel()

	s := newTestSim(t, 500, 0, 0)

	res, err := s.Execute(Order{Symbol: "AAPL", Side: Buy, Quantity: 10, Time: day(2)})
	assert.NoError(t, err)
	assert.False(t, res.Filled())
	assert.Equal(t, RejectInsufficientFunds, res.Reason)

	// Nothing moved, stream stays empty.
	assert.InDelta(t, 500, s.Ledger().Cash(), 1e-9)
	assert.Empty(t, s.Trades())
}

func TestExecuteRejectsInsufficientShares(t *testing.T) {
	t.Parallel()

	s := newTestSim(t, 10000, 0, 0)

	res, err := s.Execute(Order{Symbol: "AAPL", Side: Buy, Quantity: 5, Time: day(2)})
	assert.NoError(t, err)
	assert.True(t, res.Filled())

	res, err = s.Execute(Order{Symbol: "AAPL", Side: Sell, Quantity: 6, Time: day(3)})
	assert.NoError(t, err)
	assert.False(t, res.Filled())
	assert.Equal(t, RejectInsufficientShares, res.Reason)
	assert.Equal(t, int64(5), s.Ledger().Quantity("AAPL"))
}

func TestExecuteRejectsWhenNoPrice(t *testing.T) {
	t.Parallel()

	s := newTestSim(t, 10000, 0, 0)

	// Before the first bar: no as-of price, order skipped not fatal.
	res, err := s.Execute(Order{Symbol: "AAPL", Side: Buy, Quantity: 1, Time: day(1)})
	assert.NoError(t, err)
	assert.False(t, res.Filled())
	assert.Equal(t, RejectDataUnavailable, res.Reason)
}

func TestExecuteValidatesOrder(t *testing.T) {
	t.Parallel()

	s := newTestSim(t, 10000, 0, 0)

	_, err := s.Execute(Order{Symbol: "", Side: Buy, Quantity: 1, Time: day(2)})
	assert.Error(t, err)

	_, err = s.Execute(Order{Symbol: "AAPL", Side: Buy, Quantity: 0, Time: day(2)})
	assert.Error(t, err)

	_, err = s.Execute(Order{Symbol: "AAPL", Side: "hold", Quantity: 1, Time: day(2)})
	assert.Error(t, err)
}

func TestExecuteJournalsFills(t *testing.T) {
	t.Parallel()

	cache := market.NewSeriesCache()
	cache.Put("AAPL", []market.Bar{{Symbol: "AAPL", Time: day(2), Close: 100}})

	mem := journal.NewMemory()
	s, err := New(Config{Prices: cache, InitialCash: 10000, Journal: mem})
	assert.NoError(t, err)

	res, err := s.Execute(Order{Symbol: "AAPL", Side: Buy, Quantity: 3, Time: day(2), Confidence: 0.8, Strategy: "sma_cross", Rationale: "cross up"})
	assert.NoError(t, err)
	assert.True(t, res.Filled())

	recs := mem.Trades()
	assert.Len(t, recs, 1)
	assert.Equal(t, res.Trade.ID, recs[0].TradeID)
	assert.Equal(t, "buy", recs[0].Side)
	assert.Equal(t, "sma_cross", recs[0].Strategy)
	assert.InDelta(t, 0.8, recs[0].Confidence, 1e-9)

	// And the rebuilt trade matches the original.
	back := FromRecord(recs[0])
	assert.Equal(t, *res.Trade, back)
}

func TestPortfolioValueAt(t *testing.T) {
	t.Parallel()

	s := newTestSim(t, 10000, 0, 0)

	res, err := s.Execute(Order{Symbol: "AAPL", Side: Buy, Quantity: 10, Time: day(2)})
	assert.NoError(t, err)
	assert.True(t, res.Filled())

	// Marked at the day-3 close of 110.
	assert.InDelta(t, 9000+10*110, s.PortfolioValueAt(day(3)), 1e-9)
}
