package backtest

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/riskengine/internal/id"
	"github.com/rustyeddy/riskengine/journal"
	"github.com/rustyeddy/riskengine/perf"
	"github.com/rustyeddy/riskengine/sim"
)

// ProfitFactor marshals +Inf as the string "inf" so a run with winners
// and no losers still serializes.
type ProfitFactor float64

func (p ProfitFactor) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(p), 1) {
		return json.Marshal("inf")
	}
	return json.Marshal(float64(p))
}

func (p *ProfitFactor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "inf" {
			*p = ProfitFactor(math.Inf(1))
			return nil
		}
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = ProfitFactor(f)
	return nil
}

// EquityEntry is one equity-curve point as reported.
type EquityEntry struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// Report is the external JSON surface of a finished run. Field names
// are contractual; downstream tooling parses them.
type Report struct {
	InitialCapital float64       `json:"initial_capital"`
	FinalValue     float64       `json:"final_value"`
	TotalReturn    float64       `json:"total_return"`
	TotalReturnPct float64       `json:"total_return_pct"`
	SharpeRatio    float64       `json:"sharpe_ratio"`
	MaxDrawdown    float64       `json:"max_drawdown"`
	WinRate        float64       `json:"win_rate"`
	ProfitFactor   ProfitFactor  `json:"profit_factor"`
	TotalTrades    int           `json:"total_trades"`
	AvgTradePnL    float64       `json:"avg_trade_pnl"`
	TradingDays    int           `json:"trading_days"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	EquityCurve    []EquityEntry `json:"equity_curve"`
	TradeHistory   []sim.Trade   `json:"trade_history"`
}

// BuildReport matches the run's lots and summarizes its curve.
func BuildReport(res Result, initialCapital float64) Report {
	closed := perf.MatchLots(res.Trades)
	s := perf.Summarize(res.Curve, closed, initialCapital)

	curve := make([]EquityEntry, 0, len(res.Curve))
	for _, p := range res.Curve {
		curve = append(curve, EquityEntry{Date: p.Time.Format("2006-01-02"), Equity: p.Equity})
	}

	return Report{
		InitialCapital: s.InitialCapital,
		FinalValue:     s.FinalValue,
		TotalReturn:    s.TotalReturn,
		TotalReturnPct: s.TotalReturnPct,
		SharpeRatio:    s.SharpeRatio,
		MaxDrawdown:    s.MaxDrawdownPct,
		WinRate:        s.WinRate,
		ProfitFactor:   ProfitFactor(s.ProfitFactor),
		TotalTrades:    s.TotalTrades,
		AvgTradePnL:    s.AvgTradePnL,
		TradingDays:    s.TradingDays,
		StartDate:      res.Start.Format("2006-01-02"),
		EndDate:        res.End.Format("2006-01-02"),
		EquityCurve:    curve,
		TradeHistory:   res.Trades,
	}
}

// RunRecord converts the report into the journal's persisted form.
func (r Report) RunRecord(strategy string, symbols []string) journal.RunRecord {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return journal.RunRecord{
		RunID:          id.New(),
		Strategy:       strategy,
		Symbols:        strings.Join(symbols, ","),
		StartDate:      start,
		EndDate:        end,
		InitialCapital: r.InitialCapital,
		FinalValue:     r.FinalValue,
		TotalReturn:    r.TotalReturn,
		TotalReturnPct: r.TotalReturnPct,
		SharpeRatio:    r.SharpeRatio,
		MaxDrawdown:    r.MaxDrawdown,
		WinRate:        r.WinRate,
		ProfitFactor:   float64(r.ProfitFactor),
		TotalTrades:    r.TotalTrades,
		AvgTradePnL:    r.AvgTradePnL,
		TradingDays:    r.TradingDays,
		ExecutedAt:     time.Now().UTC(),
		Status:         "completed",
	}
}
