package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskengine/journal"
	"github.com/rustyeddy/riskengine/risk"
)

var rrCmd = &cobra.Command{
	Use:   "rr",
	Short: "Evaluate a trade's risk/reward profile",
	Long: `Rr compares a proposed entry against its target and stop and checks the
ratio against the stored min_risk_reward_ratio parameter.

Example:
  riskengine rr --entry 100 --target 112 --stop 96`,
	RunE: runRR,
}

var (
	rrDBPath string
	rrEntry  float64
	rrTarget float64
	rrStop   float64
)

func init() {
	rootCmd.AddCommand(rrCmd)

	rrCmd.Flags().StringVarP(&rrDBPath, "db", "d", "./riskengine.db", "path to SQLite journal DB")
	rrCmd.Flags().Float64Var(&rrEntry, "entry", 0, "entry price (required)")
	rrCmd.Flags().Float64Var(&rrTarget, "target", 0, "target price (required)")
	rrCmd.Flags().Float64Var(&rrStop, "stop", 0, "stop price (required)")
	rrCmd.MarkFlagRequired("entry")
	rrCmd.MarkFlagRequired("target")
	rrCmd.MarkFlagRequired("stop")
}

func runRR(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(rrDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	minRatio, err := risk.NewParams(j).Get(risk.MinRiskRewardRatio)
	if err != nil {
		return err
	}

	rr := risk.EvaluateRiskReward(rrEntry, rrTarget, rrStop, minRatio)

	if math.IsInf(rr.Ratio, 1) {
		fmt.Println("ratio:      inf")
	} else {
		fmt.Printf("ratio:      %.2f\n", rr.Ratio)
	}
	fmt.Printf("gain:       %.2f\n", rr.PotentialGain)
	fmt.Printf("loss:       %.2f\n", rr.PotentialLoss)
	fmt.Printf("minimum:    %.2f\n", minRatio)
	fmt.Printf("acceptable: %t\n", rr.Acceptable)
	return nil
}
