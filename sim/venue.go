package sim

// ExecutionVenue fills or rejects orders. The Simulator is the
// backtest venue; a live brokerage adapter satisfies the same contract
// once order submission is wired up.
type ExecutionVenue interface {
	Execute(Order) (Result, error)
}

var _ ExecutionVenue = (*Simulator)(nil)
