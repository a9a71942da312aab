// Package risk holds the adaptive risk controls: the audited parameter
// store, the confidence-scaled position sizer and the auto-execution
// gate.
package risk

import (
	"errors"
	"fmt"
)

// Recognized parameter names. Values are floats; percentages are
// expressed as whole numbers (10 means 10%).
const (
	AutoTradeConfidenceThreshold = "auto_trade_confidence_threshold"
	MaxPositionSizePct           = "max_position_size_pct"
	MaxPortfolioExposurePct      = "max_portfolio_exposure_pct"
	DailyLossLimitPct            = "daily_loss_limit_pct"
	MinRiskRewardRatio           = "min_risk_reward_ratio"
	LearningAggression           = "learning_aggression"
)

// Defaults apply when a parameter has never been set.
var Defaults = map[string]float64{
	AutoTradeConfidenceThreshold: 0.95,
	MaxPositionSizePct:           10,
	MaxPortfolioExposurePct:      80,
	DailyLossLimitPct:            2.0,
	MinRiskRewardRatio:           2.0,
	LearningAggression:           0.5,
}

var (
	ErrInvalidParameterValue = errors.New("risk: invalid parameter value")
	ErrUnknownParameter      = errors.New("risk: unknown parameter")
)

// ParamStore is the persistence contract for risk parameters. Satisfied
// by journal.SQLite and journal.Memory. SetParameter must keep the
// previous value and the change reason for the audit trail.
type ParamStore interface {
	Parameter(name string) (float64, bool, error)
	SetParameter(name string, value float64, reason string) error
	Parameters() (map[string]float64, error)
}

// Params resolves risk parameters against a backing store, falling
// back to documented defaults for names that were never set. Updates
// are validated before they reach the store, so a rejected update
// leaves the old value in place.
type Params struct {
	store ParamStore
}

func NewParams(store ParamStore) *Params {
	return &Params{store: store}
}

// Get returns the stored value or the default for a recognized name.
func (p *Params) Get(name string) (float64, error) {
	v, ok, err := p.store.Parameter(name)
	if err != nil {
		return 0, err
	}
	if ok {
		return v, nil
	}
	def, known := Defaults[name]
	if !known {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	return def, nil
}

// Set validates and persists an update. The reason lands in the audit
// trail alongside the previous value.
func (p *Params) Set(name string, value float64, reason string) error {
	if err := validate(name, value); err != nil {
		return err
	}
	return p.store.SetParameter(name, value, reason)
}

// Snapshot merges the defaults with every stored value, stored values
// winning.
func (p *Params) Snapshot() (map[string]float64, error) {
	stored, err := p.store.Parameters()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(Defaults))
	for name, def := range Defaults {
		out[name] = def
	}
	for name, v := range stored {
		out[name] = v
	}
	return out, nil
}

// EnsureDefaults seeds any recognized parameter the store has never
// seen, so the audit trail starts from an explicit row.
func (p *Params) EnsureDefaults() error {
	for name, def := range Defaults {
		_, ok, err := p.store.Parameter(name)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := p.store.SetParameter(name, def, "initial default"); err != nil {
			return err
		}
	}
	return nil
}

func validate(name string, value float64) error {
	switch name {
	case AutoTradeConfidenceThreshold, LearningAggression:
		if value < 0 || value > 1 {
			return fmt.Errorf("%w: %s=%v must be in [0,1]", ErrInvalidParameterValue, name, value)
		}
	case MaxPositionSizePct, MaxPortfolioExposurePct, DailyLossLimitPct, MinRiskRewardRatio:
		if value < 0 {
			return fmt.Errorf("%w: %s=%v must be non-negative", ErrInvalidParameterValue, name, value)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	return nil
}
