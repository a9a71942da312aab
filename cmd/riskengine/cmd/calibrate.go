package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskengine/journal"
	"github.com/rustyeddy/riskengine/perf"
	"github.com/rustyeddy/riskengine/risk"
	"github.com/rustyeddy/riskengine/sim"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Analyze confidence calibration and suggest a threshold",
	Long: `Calibrate replays the journaled trade history through the FIFO lot
matcher, buckets closed trades by stated confidence and reports whether
confidence tracks outcomes over the 7/30/90-day windows.

With --apply, the 30-day window's suggestion is written back to the
parameter store when it warrants a change.

Examples:
  riskengine calibrate
  riskengine calibrate --apply`,
	RunE: runCalibrate,
}

var (
	calDBPath string
	calApply  bool
)

func init() {
	rootCmd.AddCommand(calibrateCmd)

	calibrateCmd.Flags().StringVarP(&calDBPath, "db", "d", "./riskengine.db", "path to SQLite journal DB")
	calibrateCmd.Flags().BoolVar(&calApply, "apply", false, "apply the 30-day suggestion to the parameter store")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(calDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	params := risk.NewParams(j)
	current, err := params.Get(risk.AutoTradeConfidenceThreshold)
	if err != nil {
		return err
	}

	closed, err := closedTrades(j, 90)
	if err != nil {
		return err
	}

	windows := perf.CalibrationWindows(closed, current, time.Now().UTC())

	raw, err := json.MarshalIndent(windows, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))

	if !calApply {
		return nil
	}

	// the 30-day window drives automated adjustment
	suggestion := windows[1].Suggestion
	if !suggestion.ShouldChange {
		fmt.Println("threshold unchanged")
		return nil
	}
	reason := fmt.Sprintf("calibration: %s", suggestion.Reason)
	if err := params.Set(risk.AutoTradeConfidenceThreshold, suggestion.Suggested, reason); err != nil {
		return err
	}
	fmt.Printf("threshold %g -> %g\n", suggestion.Current, suggestion.Suggested)
	return nil
}

// closedTrades matches lots over the journaled fills of the last n days.
func closedTrades(j *journal.SQLite, days int) ([]perf.ClosedTrade, error) {
	recs, err := j.ListTradesSince(time.Now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	trades := make([]sim.Trade, 0, len(recs))
	for _, rec := range recs {
		trades = append(trades, sim.FromRecord(rec))
	}
	return perf.MatchLots(trades), nil
}
