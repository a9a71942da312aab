package sim

import "sync"

// Ledger is the authoritative cash balance and per-symbol share count.
// One mutex covers cash and quantities together, so a funds check and
// the debit it guards are a single atomic step: two concurrent buys
// cannot both pass the check against the same balance.
type Ledger struct {
	mu        sync.Mutex
	cash      float64
	positions map[string]int64
}

func NewLedger(cash float64) *Ledger {
	return &Ledger{
		cash:      cash,
		positions: make(map[string]int64),
	}
}

func (l *Ledger) Cash() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

func (l *Ledger) Quantity(symbol string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.positions[symbol]
}

// Positions returns a copy of the held quantities.
func (l *Ledger) Positions() map[string]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]int64, len(l.positions))
	for sym, qty := range l.positions {
		out[sym] = qty
	}
	return out
}

// PortfolioValue is cash plus quantity*price for every held symbol.
// Symbols with no available price are skipped, not fatal.
func (l *Ledger) PortfolioValue(priceOf func(symbol string) (float64, bool)) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := l.cash
	for sym, qty := range l.positions {
		if price, ok := priceOf(sym); ok {
			total += price * float64(qty)
		}
	}
	return total
}

// applyBuy debits cost and credits shares if the cash covers it.
func (l *Ledger) applyBuy(symbol string, qty int64, cost float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cost > l.cash {
		return false
	}
	l.cash -= cost
	l.positions[symbol] += qty
	return true
}

// applySell credits proceeds and debits shares if enough are held.
// The symbol entry is removed entirely when the count reaches zero.
func (l *Ledger) applySell(symbol string, qty int64, proceeds float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	held := l.positions[symbol]
	if held < qty {
		return false
	}
	l.cash += proceeds
	if held == qty {
		delete(l.positions, symbol)
	} else {
		l.positions[symbol] = held - qty
	}
	return true
}
