package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskengine/backtest"
	"github.com/rustyeddy/riskengine/config"
	"github.com/rustyeddy/riskengine/journal"
	"github.com/rustyeddy/riskengine/market"
	"github.com/rustyeddy/riskengine/risk"
	"github.com/rustyeddy/riskengine/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a strategy over historical bar data",
	Long: `Backtest replays CSV bar data through a strategy and prints the run
report as JSON.

Supported strategies:
  - noop: Does nothing (baseline test)
  - sma-cross: SMA crossover with confidence-scaled sizing

Example:
  riskengine backtest --config backtest.yaml
  riskengine backtest --data ./data --symbols AAPL,MSFT --strategy sma-cross`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btDataDir    string
	btSymbols    []string
	btStrategy   string
	btCapital    float64
	btSlippage   float64
	btCommission float64
	btFast       int
	btSlow       int
	btStart      string
	btEnd        string
	btDBPath     string
	btOutPath    string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to config file (yaml or json); flags override")
	backtestCmd.Flags().StringVar(&btDataDir, "data", "./data", "directory of <SYMBOL>.csv bar files")
	backtestCmd.Flags().StringSliceVar(&btSymbols, "symbols", []string{"AAPL"}, "symbols to load")
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "sma-cross", "strategy name (noop, sma-cross)")
	backtestCmd.Flags().Float64VarP(&btCapital, "capital", "b", 100_000, "starting capital")
	backtestCmd.Flags().Float64Var(&btSlippage, "slippage", 0.001, "slippage rate (0.001 = 0.1%)")
	backtestCmd.Flags().Float64Var(&btCommission, "commission", 1.0, "fixed commission per trade")
	backtestCmd.Flags().IntVar(&btFast, "fast", 10, "sma-cross: fast period")
	backtestCmd.Flags().IntVar(&btSlow, "slow", 30, "sma-cross: slow period")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "start date YYYY-MM-DD (default: all data)")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "end date YYYY-MM-DD (default: all data)")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "SQLite journal path (empty: in-memory only)")
	backtestCmd.Flags().StringVarP(&btOutPath, "out", "o", "", "write report JSON to file (default: stdout)")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg := backtestConfig()
	if btConfigPath != "" {
		loaded, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	start, err := cfg.Backtest.StartTime()
	if err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	end, err := cfg.Backtest.EndTime()
	if err != nil {
		return fmt.Errorf("end date: %w", err)
	}

	cache := market.NewSeriesCache()
	src := market.CSVSource{Dir: cfg.Backtest.DataDir}
	if err := cache.Load(src, cfg.Backtest.Symbols, start, end); err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	strat, err := strategies.ByName(cfg.Strategy.Name,
		cfg.Strategy.FastPeriod, cfg.Strategy.SlowPeriod,
		cfg.Risk.MaxPositionPct, cfg.Risk.MaxExposurePct)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	var j journal.Journal
	var sqlite *journal.SQLite
	if cfg.Journal.Type == "sqlite" && cfg.Journal.DBPath != "" {
		sqlite, err = journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer sqlite.Close()
		j = sqlite

		if err := seedParams(sqlite, cfg.Risk); err != nil {
			return fmt.Errorf("seed risk parameters: %w", err)
		}
	}

	runner, err := backtest.NewRunner(backtest.Config{
		Cache:          cache,
		Strategy:       strat,
		InitialCapital: cfg.Account.InitialCapital,
		SlippageRate:   cfg.Backtest.SlippageRate,
		Commission:     cfg.Backtest.Commission,
		Journal:        j,
		Start:          start,
		End:            end,
	})
	if err != nil {
		return err
	}

	res, err := runner.Run()
	if err != nil {
		return err
	}

	report := backtest.BuildReport(res, cfg.Account.InitialCapital)
	if sqlite != nil {
		if err := sqlite.RecordRun(report.RunRecord(res.Strategy, res.Symbols)); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if btOutPath != "" {
		return os.WriteFile(btOutPath, append(raw, '\n'), 0644)
	}
	fmt.Println(string(raw))
	return nil
}

// seedParams writes the config's risk values into the parameter store
// for any name the store has never seen, then fills in the remaining
// documented defaults. Values already in the store win.
func seedParams(store risk.ParamStore, rc config.RiskConfig) error {
	p := risk.NewParams(store)
	seed := map[string]float64{
		risk.AutoTradeConfidenceThreshold: rc.ConfidenceThreshold,
		risk.MaxPositionSizePct:           rc.MaxPositionPct,
		risk.MaxPortfolioExposurePct:      rc.MaxExposurePct,
		risk.DailyLossLimitPct:            rc.DailyLossLimitPct,
	}
	for name, value := range seed {
		_, ok, err := store.Parameter(name)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := p.Set(name, value, "seeded from config"); err != nil {
			return err
		}
	}
	return p.EnsureDefaults()
}

// backtestConfig assembles a config from the command flags.
func backtestConfig() *config.Config {
	cfg := config.Default()
	cfg.Backtest.DataDir = btDataDir
	cfg.Backtest.Symbols = btSymbols
	cfg.Backtest.SlippageRate = btSlippage
	cfg.Backtest.Commission = btCommission
	cfg.Backtest.Start = btStart
	cfg.Backtest.End = btEnd
	cfg.Strategy.Name = btStrategy
	cfg.Strategy.FastPeriod = btFast
	cfg.Strategy.SlowPeriod = btSlow
	cfg.Account.InitialCapital = btCapital
	if btDBPath == "" {
		cfg.Journal.Type = "memory"
		cfg.Journal.DBPath = ""
	} else {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = btDBPath
	}
	return cfg
}
