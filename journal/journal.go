package journal

import "time"

// TradeRecord is one simulated fill as persisted. The trade stream is
// append-only; records are never updated.
type TradeRecord struct {
	TradeID    string
	Symbol     string
	Side       string
	Quantity   int64
	FillPrice  float64
	Value      float64
	Commission float64
	Confidence float64
	Strategy   string
	Rationale  string
	CashAfter  float64
	ExecutedAt time.Time
}

// EquitySnapshot is one point of the equity curve.
type EquitySnapshot struct {
	Time           time.Time
	Equity         float64
	Cash           float64
	PositionsValue float64
}

// RunRecord summarizes a finished backtest run.
type RunRecord struct {
	RunID          string
	Strategy       string
	Symbols        string // comma-joined
	StartDate      time.Time
	EndDate        time.Time
	InitialCapital float64
	FinalValue     float64
	TotalReturn    float64
	TotalReturnPct float64
	SharpeRatio    float64
	MaxDrawdown    float64
	WinRate        float64
	ProfitFactor   float64
	TotalTrades    int
	AvgTradePnL    float64
	TradingDays    int
	ExecutedAt     time.Time
	Status         string
}

// ParameterRecord is the audit row for one risk parameter. Updates keep
// the previous value and the reason; rows are never deleted.
type ParameterRecord struct {
	Name          string
	Value         float64
	PreviousValue *float64
	ChangeReason  string
	UpdatedAt     time.Time
}

// Journal receives the engine's output stream.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
