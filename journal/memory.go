package journal

import (
	"sync"
	"time"
)

// Memory is an in-memory journal and parameter store. It backs tests
// and backtests that do not need a database file.
type Memory struct {
	mu     sync.Mutex
	trades []TradeRecord
	equity []EquitySnapshot
	params map[string]ParameterRecord
}

func NewMemory() *Memory {
	return &Memory{params: make(map[string]ParameterRecord)}
}

func (m *Memory) RecordTrade(t TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, t)
	return nil
}

func (m *Memory) RecordEquity(e EquitySnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.equity = append(m.equity, e)
	return nil
}

func (m *Memory) Trades() []TradeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TradeRecord(nil), m.trades...)
}

func (m *Memory) Equity() []EquitySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EquitySnapshot(nil), m.equity...)
}

func (m *Memory) Parameter(name string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.params[name]
	if !ok {
		return 0, false, nil
	}
	return rec.Value, true, nil
}

func (m *Memory) SetParameter(name string, value float64, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := ParameterRecord{
		Name:         name,
		Value:        value,
		ChangeReason: reason,
		UpdatedAt:    time.Now().UTC(),
	}
	if prev, ok := m.params[name]; ok {
		p := prev.Value
		rec.PreviousValue = &p
	}
	m.params[name] = rec
	return nil
}

func (m *Memory) Parameters() (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.params))
	for name, rec := range m.params {
		out[name] = rec.Value
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
