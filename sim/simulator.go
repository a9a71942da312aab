package sim

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/riskengine/internal/id"
	"github.com/rustyeddy/riskengine/journal"
	"github.com/rustyeddy/riskengine/market"
)

// Config wires a Simulator.
type Config struct {
	Prices      *market.SeriesCache
	InitialCash float64
	// SlippageRate is a fraction: buys fill at price*(1+rate), sells
	// at price*(1-rate).
	SlippageRate float64
	// Commission is a fixed charge per trade.
	Commission float64
	// Journal is optional; fills are recorded to it when set.
	Journal journal.Journal
}

// Simulator replays orders against historical prices with slippage and
// commission, mutating its ledger and appending to an immutable trade
// stream.
type Simulator struct {
	mu       sync.Mutex
	prices   *market.SeriesCache
	ledger   *Ledger
	slippage float64
	fee      float64
	trades   []Trade
	journal  journal.Journal
}

func New(cfg Config) (*Simulator, error) {
	if cfg.Prices == nil {
		return nil, fmt.Errorf("sim: price cache is required")
	}
	if cfg.InitialCash <= 0 {
		return nil, fmt.Errorf("sim: initial cash must be positive")
	}
	if cfg.SlippageRate < 0 {
		return nil, fmt.Errorf("sim: slippage rate must not be negative")
	}
	if cfg.Commission < 0 {
		return nil, fmt.Errorf("sim: commission must not be negative")
	}
	return &Simulator{
		prices:   cfg.Prices,
		ledger:   NewLedger(cfg.InitialCash),
		slippage: cfg.SlippageRate,
		fee:      cfg.Commission,
		journal:  cfg.Journal,
	}, nil
}

func (s *Simulator) Ledger() *Ledger { return s.ledger }

// Trades returns a copy of the trade stream so far.
func (s *Simulator) Trades() []Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Trade(nil), s.trades...)
}

// Execute fills or rejects one order. A reject (no price, not enough
// cash, not enough shares) comes back in the Result so the caller can
// log and continue; errors are reserved for malformed orders.
func (s *Simulator) Execute(o Order) (Result, error) {
	if o.Symbol == "" {
		return Result{}, fmt.Errorf("sim: symbol is required")
	}
	if o.Quantity <= 0 {
		return Result{}, fmt.Errorf("sim: quantity must be positive, got %d", o.Quantity)
	}
	if o.Side != Buy && o.Side != Sell {
		return Result{}, fmt.Errorf("sim: unknown side %q", o.Side)
	}

	// One order in flight at a time: the ledger check-and-apply, the
	// CashAfter it reports and the stream append stay consistent.
	s.mu.Lock()
	defer s.mu.Unlock()

	price, err := s.prices.PriceAt(o.Symbol, o.Time, market.Close)
	if err != nil {
		if errors.Is(err, market.ErrDataUnavailable) {
			return Result{Reason: RejectDataUnavailable}, nil
		}
		return Result{}, err
	}

	// Slippage goes against the simulating side: buyers pay more,
	// sellers receive less.
	var fill float64
	if o.Side == Buy {
		fill = price * (1 + s.slippage)
	} else {
		fill = price * (1 - s.slippage)
	}

	var value float64
	switch o.Side {
	case Buy:
		cost := fill*float64(o.Quantity) + s.fee
		if !s.ledger.applyBuy(o.Symbol, o.Quantity, cost) {
			return Result{Reason: RejectInsufficientFunds}, nil
		}
		value = cost
	case Sell:
		proceeds := fill*float64(o.Quantity) - s.fee
		if !s.ledger.applySell(o.Symbol, o.Quantity, proceeds) {
			return Result{Reason: RejectInsufficientShares}, nil
		}
		value = proceeds
	}

	trade := Trade{
		ID:         id.New(),
		Symbol:     o.Symbol,
		Side:       o.Side,
		Quantity:   o.Quantity,
		FillPrice:  fill,
		Value:      value,
		Commission: s.fee,
		Confidence: o.Confidence,
		Strategy:   o.Strategy,
		Rationale:  o.Rationale,
		CashAfter:  s.ledger.Cash(),
		Time:       o.Time,
	}

	s.trades = append(s.trades, trade)

	if s.journal != nil {
		if err := s.journal.RecordTrade(trade.record()); err != nil {
			return Result{}, fmt.Errorf("sim: journal trade: %w", err)
		}
	}

	return Result{Trade: &trade}, nil
}

// PortfolioValueAt marks the portfolio to as-of prices at ts.
func (s *Simulator) PortfolioValueAt(ts time.Time) float64 {
	return s.ledger.PortfolioValue(func(symbol string) (float64, bool) {
		price, err := s.prices.PriceAt(symbol, ts, market.Close)
		if err != nil {
			return 0, false
		}
		return price, true
	})
}
