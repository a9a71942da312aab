package sim

import (
	"time"

	"github.com/rustyeddy/riskengine/journal"
)

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Order is a trade intent handed to the simulator.
type Order struct {
	Symbol     string
	Side       Side
	Quantity   int64
	Time       time.Time
	Confidence float64 // 0..1
	Strategy   string
	Rationale  string
}

// Trade is one simulated fill. Immutable after creation; the
// simulator's trade stream is append-only.
type Trade struct {
	ID         string    `json:"trade_id"`
	Symbol     string    `json:"symbol"`
	Side       Side      `json:"action"`
	Quantity   int64     `json:"quantity"`
	FillPrice  float64   `json:"price"`
	Value      float64   `json:"value"` // cash moved, commission included
	Commission float64   `json:"commission"`
	Confidence float64   `json:"confidence"`
	Strategy   string    `json:"strategy_name"`
	Rationale  string    `json:"reasoning"`
	CashAfter  float64   `json:"cash_after"`
	Time       time.Time `json:"timestamp"`
}

// RejectReason classifies why an order did not fill. Rejections are
// business outcomes, not errors: the driving loop logs and continues.
type RejectReason string

const (
	RejectDataUnavailable    RejectReason = "data_unavailable"
	RejectInsufficientFunds  RejectReason = "insufficient_funds"
	RejectInsufficientShares RejectReason = "insufficient_shares"
)

// Result is the tagged outcome of Execute: either a fill or a reject.
type Result struct {
	Trade  *Trade
	Reason RejectReason
}

// Filled reports whether the order produced a trade.
func (r Result) Filled() bool { return r.Trade != nil }

func (t Trade) record() journal.TradeRecord {
	return journal.TradeRecord{
		TradeID:    t.ID,
		Symbol:     t.Symbol,
		Side:       string(t.Side),
		Quantity:   t.Quantity,
		FillPrice:  t.FillPrice,
		Value:      t.Value,
		Commission: t.Commission,
		Confidence: t.Confidence,
		Strategy:   t.Strategy,
		Rationale:  t.Rationale,
		CashAfter:  t.CashAfter,
		ExecutedAt: t.Time,
	}
}

// FromRecord rebuilds a Trade from its journal row, for replaying the
// persisted stream through the lot matcher.
func FromRecord(rec journal.TradeRecord) Trade {
	return Trade{
		ID:         rec.TradeID,
		Symbol:     rec.Symbol,
		Side:       Side(rec.Side),
		Quantity:   rec.Quantity,
		FillPrice:  rec.FillPrice,
		Value:      rec.Value,
		Commission: rec.Commission,
		Confidence: rec.Confidence,
		Strategy:   rec.Strategy,
		Rationale:  rec.Rationale,
		CashAfter:  rec.CashAfter,
		Time:       rec.ExecutedAt,
	}
}
