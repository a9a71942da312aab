package market

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrDataUnavailable means no bar exists at or before the requested time.
var ErrDataUnavailable = errors.New("market: no data at or before timestamp")

// SeriesCache holds per-symbol bar series ordered by time and answers
// as-of price lookups: the bar at the exact timestamp, or the most
// recent bar strictly before it. Never a later bar, so replaying a
// backtest cannot peek ahead.
type SeriesCache struct {
	series map[string][]Bar
}

func NewSeriesCache() *SeriesCache {
	return &SeriesCache{series: make(map[string][]Bar)}
}

// Load fetches the full range for each symbol from src in one batch.
// Bars are sorted by time on ingest; the cache never refetches.
func (c *SeriesCache) Load(src BarSource, symbols []string, start, end time.Time) error {
	if src == nil {
		return fmt.Errorf("market: bar source is required")
	}
	for _, sym := range symbols {
		bars, err := src.Bars(sym, start, end)
		if err != nil {
			return fmt.Errorf("market: load %s: %w", sym, err)
		}
		c.Put(sym, bars)
	}
	return nil
}

// Put replaces the cached series for a symbol.
func (c *SeriesCache) Put(symbol string, bars []Bar) {
	sorted := append([]Bar(nil), bars...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })
	c.series[symbol] = sorted
}

// PriceAt returns the requested field of the bar at ts, or of the most
// recent bar before ts. ErrDataUnavailable when the symbol has no bar
// at or before ts.
func (c *SeriesCache) PriceAt(symbol string, ts time.Time, field Field) (float64, error) {
	bar, err := c.BarAt(symbol, ts)
	if err != nil {
		return 0, err
	}
	return bar.price(field), nil
}

// BarAt returns the as-of bar for a symbol.
func (c *SeriesCache) BarAt(symbol string, ts time.Time) (Bar, error) {
	bars := c.series[symbol]
	if len(bars) == 0 {
		return Bar{}, fmt.Errorf("%w: %s", ErrDataUnavailable, symbol)
	}
	// First bar strictly after ts; the one before it is our answer.
	i := sort.Search(len(bars), func(i int) bool { return bars[i].Time.After(ts) })
	if i == 0 {
		return Bar{}, fmt.Errorf("%w: %s before %s", ErrDataUnavailable, symbol, ts.Format(time.RFC3339))
	}
	return bars[i-1], nil
}

// Symbols lists symbols with at least one cached bar.
func (c *SeriesCache) Symbols() []string {
	out := make([]string, 0, len(c.series))
	for sym, bars := range c.series {
		if len(bars) > 0 {
			out = append(out, sym)
		}
	}
	sort.Strings(out)
	return out
}

// Timeline returns the sorted union of bar timestamps across the given
// symbols (all cached symbols when none given). The backtest loop
// steps through these in order.
func (c *SeriesCache) Timeline(symbols ...string) []time.Time {
	if len(symbols) == 0 {
		symbols = c.Symbols()
	}
	seen := make(map[int64]time.Time)
	for _, sym := range symbols {
		for _, b := range c.series[sym] {
			seen[b.Time.UnixNano()] = b.Time
		}
	}
	out := make([]time.Time, 0, len(seen))
	for _, t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Len reports the number of cached bars for a symbol.
func (c *SeriesCache) Len(symbol string) int { return len(c.series[symbol]) }
