package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// CSVSource reads bars from per-symbol CSV files in a directory:
// <dir>/<SYMBOL>.csv with a header row of
// time,open,high,low,close,volume. Time is RFC3339 or YYYY-MM-DD.
type CSVSource struct {
	Dir string
}

func (s CSVSource) Bars(symbol string, start, end time.Time) ([]Bar, error) {
	path := filepath.Join(s.Dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("market: open bars for %s: %w", symbol, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("market: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var bars []Bar
	for i, row := range rows {
		if i == 0 && isHeader(row[0]) {
			continue
		}
		if len(row) < 6 {
			return nil, fmt.Errorf("market: %s row %d: want 6 columns, got %d", path, i+1, len(row))
		}
		ts, err := parseBarTime(row[0])
		if err != nil {
			return nil, fmt.Errorf("market: %s row %d: %w", path, i+1, err)
		}
		// zero bounds are open-ended
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}
		vals := make([]float64, 4)
		for j := 1; j <= 4; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("market: %s row %d col %d: %w", path, i+1, j+1, err)
			}
			vals[j-1] = v
		}
		vol, err := strconv.ParseInt(row[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("market: %s row %d volume: %w", path, i+1, err)
		}
		bars = append(bars, Bar{
			Symbol: symbol,
			Time:   ts,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vol,
		})
	}
	return bars, nil
}

// isHeader recognizes a first row whose leading cell is a column label
// rather than a timestamp, whatever the capitalization.
func isHeader(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "time", "date", "timestamp", "datetime":
		return true
	}
	return false
}

func parseBarTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
