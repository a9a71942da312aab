package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskengine/journal"
	"github.com/rustyeddy/riskengine/risk"
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Check whether a trade would auto-execute",
	Long: `Gate runs the auto-execution decision for a hypothetical trade at the
given confidence, using today's journaled P&L and the last week's win
rate from the trade history.

Example:
  riskengine gate --confidence 0.93`,
	RunE: runGate,
}

var (
	gateDBPath     string
	gateConfidence float64
)

func init() {
	rootCmd.AddCommand(gateCmd)

	gateCmd.Flags().StringVarP(&gateDBPath, "db", "d", "./riskengine.db", "path to SQLite journal DB")
	gateCmd.Flags().Float64VarP(&gateConfidence, "confidence", "c", 0.0, "stated confidence of the trade (required)")
	gateCmd.MarkFlagRequired("confidence")
}

func runGate(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(gateDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	params := risk.NewParams(j)
	threshold, err := params.Get(risk.AutoTradeConfidenceThreshold)
	if err != nil {
		return err
	}
	lossLimit, err := params.Get(risk.DailyLossLimitPct)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	pnlToday, err := dailyPnLPct(j, now)
	if err != nil {
		return err
	}

	recent, err := closedTrades(j, 7)
	if err != nil {
		return err
	}
	winRate := 0.0
	if len(recent) > 0 {
		wins := 0
		for _, t := range recent {
			if t.PnL > 0 {
				wins++
			}
		}
		winRate = float64(wins) / float64(len(recent))
	}

	decision := risk.Decide(risk.GateInputs{
		Confidence:        gateConfidence,
		BaseThreshold:     threshold,
		DailyPnLPct:       pnlToday,
		DailyLossLimitPct: lossLimit,
		RecentWinRate:     winRate,
		RecentTrades:      len(recent),
	})

	fmt.Printf("outcome:   %s\n", decision.Outcome)
	fmt.Printf("threshold: %.2f\n", decision.EffectiveThreshold)
	if decision.Gap > 0 {
		fmt.Printf("gap:       %.2f\n", decision.Gap)
	}
	fmt.Printf("reason:    %s\n", decision.Reason)
	return nil
}

// dailyPnLPct reads today's equity snapshots and reports the change
// from the first to the last as a percentage.
func dailyPnLPct(j *journal.SQLite, now time.Time) (float64, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	points, err := j.ListEquityBetween(midnight, now)
	if err != nil {
		return 0, err
	}
	if len(points) < 2 || points[0].Equity == 0 {
		return 0, nil
	}
	first, last := points[0].Equity, points[len(points)-1].Equity
	return (last - first) / first * 100, nil
}
