package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func testBars() []Bar {
	return []Bar{
		{Symbol: "AAPL", Time: day(2), Open: 100, High: 105, Low: 99, Close: 104, Volume: 1000},
		{Symbol: "AAPL", Time: day(3), Open: 104, High: 110, Low: 103, Close: 108, Volume: 1200},
		{Symbol: "AAPL", Time: day(5), Open: 108, High: 109, Low: 101, Close: 102, Volume: 900},
	}
}

func TestPriceAt_ExactMatch(t *testing.T) {
	t.Parallel()

	c := NewSeriesCache()
	c.Put("AAPL", testBars())

	got, err := c.PriceAt("AAPL", day(3), Close)
	assert.NoError(t, err)
	assert.InDelta(t, 108, got, 1e-9)

	got, err = c.PriceAt("AAPL", day(3), Open)
	assert.NoError(t, err)
	assert.InDelta(t, 104, got, 1e-9)
}

func TestPriceAt_AsOfNeverLooksAhead(t *testing.T) {
	t.Parallel()

	c := NewSeriesCache()
	c.Put("AAPL", testBars())

	// Jan 4 has no bar; the Jan 3 bar is the as-of answer, never Jan 5.
	got, err := c.PriceAt("AAPL", day(4), Close)
	assert.NoError(t, err)
	assert.InDelta(t, 108, got, 1e-9)
}

func TestPriceAt_BeforeFirstBar(t *testing.T) {
	t.Parallel()

	c := NewSeriesCache()
	c.Put("AAPL", testBars())

	_, err := c.PriceAt("AAPL", day(1), Close)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestPriceAt_UnknownSymbol(t *testing.T) {
	t.Parallel()

	c := NewSeriesCache()
	_, err := c.PriceAt("MSFT", day(3), Close)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestPut_SortsBars(t *testing.T) {
	t.Parallel()

	c := NewSeriesCache()
	bars := testBars()
	c.Put("AAPL", []Bar{bars[2], bars[0], bars[1]})

	got, err := c.PriceAt("AAPL", day(2), Close)
	assert.NoError(t, err)
	assert.InDelta(t, 104, got, 1e-9)
}

func TestTimeline_UnionSorted(t *testing.T) {
	t.Parallel()

	c := NewSeriesCache()
	c.Put("AAPL", testBars())
	c.Put("MSFT", []Bar{
		{Symbol: "MSFT", Time: day(3), Close: 300},
		{Symbol: "MSFT", Time: day(4), Close: 305},
	})

	tl := c.Timeline()
	assert.Len(t, tl, 4)
	for i := 1; i < len(tl); i++ {
		assert.True(t, tl[i-1].Before(tl[i]))
	}
}

type stubSource struct {
	calls int
}

func (s *stubSource) Bars(symbol string, start, end time.Time) ([]Bar, error) {
	s.calls++
	return testBars(), nil
}

func TestLoad_OneBatchPerSymbol(t *testing.T) {
	t.Parallel()

	src := &stubSource{}
	c := NewSeriesCache()
	err := c.Load(src, []string{"AAPL", "MSFT"}, day(1), day(10))
	assert.NoError(t, err)
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 3, c.Len("AAPL"))
}
