package journal

import "time"

const tradeColumns = `trade_id, symbol, side, quantity, fill_price, value, commission, confidence, strategy, rationale, cash_after, executed_at`

// ListTradesBetween returns trades executed within [start, end), oldest first.
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE executed_at >= ? AND executed_at < ?
		ORDER BY executed_at ASC, trade_id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.Symbol,
			&rec.Side,
			&rec.Quantity,
			&rec.FillPrice,
			&rec.Value,
			&rec.Commission,
			&rec.Confidence,
			&rec.Strategy,
			&rec.Rationale,
			&rec.CashAfter,
			&rec.ExecutedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTradesSince returns trades executed at or after cutoff, oldest first.
func (j *SQLite) ListTradesSince(cutoff time.Time) ([]TradeRecord, error) {
	// Far future bound; executed_at is wall-clock time.
	return j.ListTradesBetween(cutoff, cutoff.AddDate(200, 0, 0))
}

// ListEquityBetween returns equity snapshots within [start, end), oldest first.
func (j *SQLite) ListEquityBetween(start, end time.Time) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT time, equity, cash, positions_value
		FROM equity
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var rec EquitySnapshot
		if err := rows.Scan(&rec.Time, &rec.Equity, &rec.Cash, &rec.PositionsValue); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParameterRecords returns the full audit row for every parameter.
func (j *SQLite) ParameterRecords() ([]ParameterRecord, error) {
	rows, err := j.db.Query(`
		SELECT name, value, previous_value, change_reason, updated_at
		FROM parameters
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ParameterRecord
	for rows.Next() {
		var rec ParameterRecord
		if err := rows.Scan(&rec.Name, &rec.Value, &rec.PreviousValue, &rec.ChangeReason, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
