package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskengine/logger"
)

var rootCmd = &cobra.Command{
	Use:   "riskengine",
	Short: "A trade simulation and adaptive risk engine",
	Long: `Riskengine backtests trading strategies against historical bars and
adapts its risk parameters from the results.

It provides tools for:
  - Simulating trades with slippage and commission over CSV bar data
  - FIFO lot matching and performance statistics (Sharpe, drawdown, profit factor)
  - An audited risk parameter store with documented defaults
  - Confidence-scaled position sizing and auto-execution gating
  - Confidence calibration with threshold suggestions over 7/30/90-day windows`,
}

var logLevel string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cobra.OnInitialize(func() {
		logger.SetLevel(logLevel)
	})
}
