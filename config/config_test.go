package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
account:
  id: SIM-TEST
  currency: USD
  initial_capital: 50000
strategy:
  name: sma-cross
  fast_period: 5
  slow_period: 20
backtest:
  symbols: [AAPL, MSFT]
  data_dir: ./data
  start: "2024-01-01"
  end: "2024-06-30"
  slippage_rate: 0.001
  commission: 1.5
risk:
  max_position_pct: 10
  max_exposure_pct: 80
  confidence_threshold: 0.9
  daily_loss_limit_pct: 2.0
journal:
  type: memory
`
	assert.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "SIM-TEST", cfg.Account.ID)
	assert.InDelta(t, 50000, cfg.Account.InitialCapital, 1e-9)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Backtest.Symbols)
	assert.InDelta(t, 0.9, cfg.Risk.ConfidenceThreshold, 1e-9)

	start, err := cfg.Backtest.StartTime()
	assert.NoError(t, err)
	assert.Equal(t, 2024, start.Year())
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Account.ID = "SIM-JSON"
	assert.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "SIM-JSON", loaded.Account.ID)
}

func TestLoadFromFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing currency", func(c *Config) { c.Account.Currency = "" }},
		{"zero capital", func(c *Config) { c.Account.InitialCapital = 0 }},
		{"missing strategy", func(c *Config) { c.Strategy.Name = "" }},
		{"no symbols", func(c *Config) { c.Backtest.Symbols = nil }},
		{"missing data dir", func(c *Config) { c.Backtest.DataDir = "" }},
		{"negative slippage", func(c *Config) { c.Backtest.SlippageRate = -0.1 }},
		{"bad start date", func(c *Config) { c.Backtest.Start = "01/02/2024" }},
		{"threshold above one", func(c *Config) { c.Risk.ConfidenceThreshold = 1.5 }},
		{"unknown journal type", func(c *Config) { c.Journal.Type = "csv" }},
		{"sqlite without path", func(c *Config) { c.Journal.DBPath = "" }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTripYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.yml")
	cfg := Default()
	cfg.Backtest.Symbols = []string{"NVDA"}
	assert.NoError(t, cfg.SaveToFile(path))

	back, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, cfg.Backtest.Symbols, back.Backtest.Symbols)
}
