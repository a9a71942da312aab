// Package backtest drives a strategy across cached price history,
// recording the equity curve and producing the run report.
package backtest

import (
	"fmt"
	"time"

	"github.com/rustyeddy/riskengine/journal"
	"github.com/rustyeddy/riskengine/logger"
	"github.com/rustyeddy/riskengine/market"
	"github.com/rustyeddy/riskengine/perf"
	"github.com/rustyeddy/riskengine/sim"
	"github.com/rustyeddy/riskengine/strategies"
)

// Config wires one backtest run. Journal is optional; when set, fills
// and equity snapshots are persisted as the run progresses.
type Config struct {
	Cache          *market.SeriesCache
	Strategy       strategies.Strategy
	InitialCapital float64
	SlippageRate   float64
	Commission     float64
	Journal        journal.Journal
	// Start and End bound the simulated timeline when non-zero.
	Start time.Time
	End   time.Time
}

// Result is the raw output of a run: the trade stream and the equity
// curve, one point per simulated timestamp.
type Result struct {
	Trades     []sim.Trade
	Curve      []perf.EquityPoint
	Symbols    []string
	Strategy   string
	Start      time.Time
	End        time.Time
	FinalValue float64
}

// Runner replays every cached bar in timestamp order through the
// strategy and the simulator.
type Runner struct {
	cfg Config
	sim *sim.Simulator
}

func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Cache == nil {
		return nil, fmt.Errorf("backtest: price cache is required")
	}
	if cfg.Strategy == nil {
		return nil, fmt.Errorf("backtest: strategy is required")
	}
	s, err := sim.New(sim.Config{
		Prices:       cfg.Cache,
		InitialCash:  cfg.InitialCapital,
		SlippageRate: cfg.SlippageRate,
		Commission:   cfg.Commission,
		Journal:      cfg.Journal,
	})
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, sim: s}, nil
}

// Run executes the backtest loop:
//  1. advance to the next timestamp on the merged timeline
//  2. hand each symbol's bar at that timestamp to the strategy
//  3. execute any order, logging rejections and moving on
//  4. record one equity point for the timestamp
func (r *Runner) Run() (Result, error) {
	symbols := r.cfg.Cache.Symbols()
	if len(symbols) == 0 {
		return Result{}, fmt.Errorf("backtest: no symbols loaded")
	}

	timeline := r.timeline(symbols)
	if len(timeline) == 0 {
		return Result{}, fmt.Errorf("backtest: no bars in the requested range")
	}

	history := make(map[string][]market.Bar, len(symbols))
	curve := make([]perf.EquityPoint, 0, len(timeline))

	for _, ts := range timeline {
		for _, symbol := range symbols {
			bar, err := r.cfg.Cache.BarAt(symbol, ts)
			if err != nil || !bar.Time.Equal(ts) {
				continue // symbol has no bar at this timestamp
			}
			history[symbol] = append(history[symbol], bar)

			if err := r.step(symbol, bar, history[symbol]); err != nil {
				return Result{}, err
			}
		}

		point := r.equityPoint(ts)
		curve = append(curve, point)
		if r.cfg.Journal != nil {
			if err := r.cfg.Journal.RecordEquity(journal.EquitySnapshot{
				Time:           point.Time,
				Equity:         point.Equity,
				Cash:           point.Cash,
				PositionsValue: point.PositionsValue,
			}); err != nil {
				return Result{}, fmt.Errorf("backtest: record equity: %w", err)
			}
		}
	}

	res := Result{
		Trades:     r.sim.Trades(),
		Curve:      curve,
		Symbols:    symbols,
		Strategy:   r.cfg.Strategy.Name(),
		Start:      timeline[0],
		End:        timeline[len(timeline)-1],
		FinalValue: curve[len(curve)-1].Equity,
	}
	logger.Infof("backtest complete: %d trades, final value %.2f", len(res.Trades), res.FinalValue)
	return res, nil
}

func (r *Runner) step(symbol string, bar market.Bar, bars []market.Bar) error {
	cash := r.sim.Ledger().Cash()
	account := r.sim.PortfolioValueAt(bar.Time)
	exposure := 0.0
	if account > 0 {
		exposure = (account - cash) / account * 100
	}

	order, ok := r.cfg.Strategy.OnBar(strategies.Snapshot{
		Symbol:       symbol,
		Bar:          bar,
		History:      bars,
		Cash:         cash,
		Position:     r.sim.Ledger().Quantity(symbol),
		AccountValue: account,
		ExposurePct:  exposure,
	})
	if !ok {
		return nil
	}

	result, err := r.sim.Execute(order)
	if err != nil {
		return fmt.Errorf("backtest: execute %s %s: %w", order.Side, order.Symbol, err)
	}
	if !result.Filled() {
		logger.Warnf("order rejected: %s %d %s at %s: %s",
			order.Side, order.Quantity, order.Symbol, order.Time.Format("2006-01-02"), result.Reason)
		return nil
	}

	t := result.Trade
	logger.Debugf("filled: %s %d %s at %.2f (cash %.2f)", t.Side, t.Quantity, t.Symbol, t.FillPrice, t.CashAfter)
	return nil
}

func (r *Runner) equityPoint(ts time.Time) perf.EquityPoint {
	cash := r.sim.Ledger().Cash()
	equity := r.sim.PortfolioValueAt(ts)
	return perf.EquityPoint{
		Time:           ts,
		Equity:         equity,
		Cash:           cash,
		PositionsValue: equity - cash,
	}
}

func (r *Runner) timeline(symbols []string) []time.Time {
	full := r.cfg.Cache.Timeline(symbols...)
	if r.cfg.Start.IsZero() && r.cfg.End.IsZero() {
		return full
	}
	out := full[:0:0]
	for _, ts := range full {
		if !r.cfg.Start.IsZero() && ts.Before(r.cfg.Start) {
			continue
		}
		if !r.cfg.End.IsZero() && ts.After(r.cfg.End) {
			continue
		}
		out = append(out, ts)
	}
	return out
}
