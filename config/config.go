package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete backtest configuration
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Risk     RiskConfig     `json:"risk" yaml:"risk"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID             string  `json:"id" yaml:"id"`
	Currency       string  `json:"currency" yaml:"currency"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// StrategyConfig contains strategy parameters
type StrategyConfig struct {
	Name       string `json:"name" yaml:"name"`
	FastPeriod int    `json:"fast_period" yaml:"fast_period"`
	SlowPeriod int    `json:"slow_period" yaml:"slow_period"`
}

// BacktestConfig contains simulation parameters
type BacktestConfig struct {
	Symbols      []string `json:"symbols" yaml:"symbols"`
	DataDir      string   `json:"data_dir" yaml:"data_dir"`
	Start        string   `json:"start,omitempty" yaml:"start,omitempty"`
	End          string   `json:"end,omitempty" yaml:"end,omitempty"`
	SlippageRate float64  `json:"slippage_rate" yaml:"slippage_rate"`
	Commission   float64  `json:"commission" yaml:"commission"`
}

// RiskConfig seeds the risk parameters when the store has never seen
// them. Percentages are whole numbers.
type RiskConfig struct {
	MaxPositionPct      float64 `json:"max_position_pct" yaml:"max_position_pct"`
	MaxExposurePct      float64 `json:"max_exposure_pct" yaml:"max_exposure_pct"`
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold"`
	DailyLossLimitPct   float64 `json:"daily_loss_limit_pct" yaml:"daily_loss_limit_pct"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// StartTime parses the optional start date (YYYY-MM-DD).
func (b BacktestConfig) StartTime() (time.Time, error) {
	return parseDate(b.Start)
}

// EndTime parses the optional end date (YYYY-MM-DD).
func (b BacktestConfig) EndTime() (time.Time, error) {
	return parseDate(b.End)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if len(c.Backtest.Symbols) == 0 {
		return fmt.Errorf("backtest.symbols must list at least one symbol")
	}
	if c.Backtest.DataDir == "" {
		return fmt.Errorf("backtest.data_dir is required")
	}
	if c.Backtest.SlippageRate < 0 {
		return fmt.Errorf("backtest.slippage_rate must not be negative")
	}
	if c.Backtest.Commission < 0 {
		return fmt.Errorf("backtest.commission must not be negative")
	}
	if _, err := c.Backtest.StartTime(); err != nil {
		return fmt.Errorf("backtest.start: %w", err)
	}
	if _, err := c.Backtest.EndTime(); err != nil {
		return fmt.Errorf("backtest.end: %w", err)
	}
	if c.Risk.ConfidenceThreshold < 0 || c.Risk.ConfidenceThreshold > 1 {
		return fmt.Errorf("risk.confidence_threshold must be between 0 and 1")
	}
	if c.Risk.MaxPositionPct < 0 || c.Risk.MaxExposurePct < 0 || c.Risk.DailyLossLimitPct < 0 {
		return fmt.Errorf("risk percentages must not be negative")
	}
	if c.Journal.Type != "sqlite" && c.Journal.Type != "memory" {
		return fmt.Errorf("journal.type must be 'sqlite' or 'memory'")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:             "SIM-001",
			Currency:       "USD",
			InitialCapital: 100000,
		},
		Strategy: StrategyConfig{
			Name:       "sma-cross",
			FastPeriod: 10,
			SlowPeriod: 30,
		},
		Backtest: BacktestConfig{
			Symbols:      []string{"AAPL"},
			DataDir:      "./data",
			SlippageRate: 0.001,
			Commission:   1.0,
		},
		Risk: RiskConfig{
			MaxPositionPct:      10,
			MaxExposurePct:      80,
			ConfidenceThreshold: 0.95,
			DailyLossLimitPct:   2.0,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./riskengine.db",
		},
	}
}
