package market

import "time"

// Bar is one OHLCV bar for a symbol. Bars are immutable once ingested.
type Bar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Field selects which price to read from a bar.
type Field string

const (
	Open  Field = "open"
	High  Field = "high"
	Low   Field = "low"
	Close Field = "close"
)

func (b Bar) price(f Field) float64 {
	switch f {
	case Open:
		return b.Open
	case High:
		return b.High
	case Low:
		return b.Low
	default:
		return b.Close
	}
}

// BarSource provides historical bars for a symbol over a date range.
// Implementations wrap an external market-data provider; the engine
// only ever loads from one in a single batch before simulating.
type BarSource interface {
	Bars(symbol string, start, end time.Time) ([]Bar, error)
}
