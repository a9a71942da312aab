package journal

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite persists the trade stream, equity curve, run summaries and
// risk parameters in one database file.
type SQLite struct {
	db *sql.DB

	// Serializes parameter read-modify-write so concurrent calibration
	// passes cannot lose each other's previous_value.
	paramMu sync.Mutex
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, symbol, side, quantity, fill_price, value, commission, confidence, strategy, rationale, cash_after, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Symbol, t.Side, t.Quantity, t.FillPrice, t.Value,
		t.Commission, t.Confidence, t.Strategy, t.Rationale, t.CashAfter, t.ExecutedAt,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(time, equity, cash, positions_value)
		VALUES (?, ?, ?, ?)`,
		e.Time, e.Equity, e.Cash, e.PositionsValue,
	)
	return err
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, strategy, symbols, start_date, end_date, initial_capital, final_value,
		 total_return, total_return_pct, sharpe_ratio, max_drawdown, win_rate, profit_factor,
		 total_trades, avg_trade_pnl, trading_days, executed_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Strategy, r.Symbols, r.StartDate, r.EndDate, r.InitialCapital, r.FinalValue,
		r.TotalReturn, r.TotalReturnPct, r.SharpeRatio, r.MaxDrawdown, r.WinRate, r.ProfitFactor,
		r.TotalTrades, r.AvgTradePnL, r.TradingDays, r.ExecutedAt, r.Status,
	)
	return err
}

// Parameter returns the stored value for name; ok is false when the
// parameter was never set.
func (j *SQLite) Parameter(name string) (float64, bool, error) {
	var value float64
	err := j.db.QueryRow(`SELECT value FROM parameters WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// SetParameter writes a new value, keeping the old one and the reason
// as the audit trail. The read-modify-write is atomic per name.
func (j *SQLite) SetParameter(name string, value float64, reason string) error {
	j.paramMu.Lock()
	defer j.paramMu.Unlock()

	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var prev float64
	err = tx.QueryRow(`SELECT value FROM parameters WHERE name = ?`, name).Scan(&prev)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(`
			INSERT INTO parameters (name, value, previous_value, change_reason, updated_at)
			VALUES (?, ?, NULL, ?, ?)`,
			name, value, reason, time.Now().UTC())
	case err == nil:
		_, err = tx.Exec(`
			UPDATE parameters
			SET previous_value = ?, value = ?, change_reason = ?, updated_at = ?
			WHERE name = ?`,
			prev, value, reason, time.Now().UTC(), name)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Parameters returns all stored parameter values keyed by name.
func (j *SQLite) Parameters() (map[string]float64, error) {
	rows, err := j.db.Query(`SELECT name, value FROM parameters`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
