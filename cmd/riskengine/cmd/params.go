package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskengine/journal"
	"github.com/rustyeddy/riskengine/risk"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Inspect and update risk parameters",
	Long: `Query and update the audited risk parameter store.

Subcommands:
  list            - Show every parameter with its effective value
  get <name>      - Show one parameter
  set <name> <v>  - Update a parameter (requires --reason)
  history         - Show the audit trail

Examples:
  riskengine params list
  riskengine params set auto_trade_confidence_threshold 0.90 --reason "calibration suggestion"`,
}

var paramsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every parameter with its effective value",
	Args:  cobra.NoArgs,
	RunE:  runParamsList,
}

var paramsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show one parameter",
	Args:  cobra.ExactArgs(1),
	RunE:  runParamsGet,
}

var paramsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Update a parameter",
	Args:  cobra.ExactArgs(2),
	RunE:  runParamsSet,
}

var paramsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the audit trail",
	Args:  cobra.NoArgs,
	RunE:  runParamsHistory,
}

var (
	paramsDBPath string
	paramsReason string
)

func init() {
	rootCmd.AddCommand(paramsCmd)
	paramsCmd.AddCommand(paramsListCmd)
	paramsCmd.AddCommand(paramsGetCmd)
	paramsCmd.AddCommand(paramsSetCmd)
	paramsCmd.AddCommand(paramsHistoryCmd)

	paramsCmd.PersistentFlags().StringVarP(&paramsDBPath, "db", "d", "./riskengine.db", "path to SQLite journal DB")
	paramsSetCmd.Flags().StringVarP(&paramsReason, "reason", "r", "", "reason for the change (required)")
	paramsSetCmd.MarkFlagRequired("reason")
}

func openParams() (*risk.Params, *journal.SQLite, error) {
	j, err := journal.NewSQLite(paramsDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	return risk.NewParams(j), j, nil
}

func runParamsList(cmd *cobra.Command, args []string) error {
	p, j, err := openParams()
	if err != nil {
		return err
	}
	defer j.Close()

	snap, err := p.Snapshot()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%-34s %g\n", name, snap[name])
	}
	return nil
}

func runParamsGet(cmd *cobra.Command, args []string) error {
	p, j, err := openParams()
	if err != nil {
		return err
	}
	defer j.Close()

	v, err := p.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s = %g\n", args[0], v)
	return nil
}

func runParamsSet(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number", args[1])
	}

	p, j, err := openParams()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := p.Set(args[0], value, paramsReason); err != nil {
		return err
	}
	fmt.Printf("%s = %g (%s)\n", args[0], value, paramsReason)
	return nil
}

func runParamsHistory(cmd *cobra.Command, args []string) error {
	_, j, err := openParams()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ParameterRecords()
	if err != nil {
		return err
	}

	for _, rec := range recs {
		prev := "unset"
		if rec.PreviousValue != nil {
			prev = fmt.Sprintf("%g", *rec.PreviousValue)
		}
		fmt.Printf("%s  %-34s %s -> %g  (%s)\n",
			rec.UpdatedAt.Format("2006-01-02 15:04:05"), rec.Name, prev, rec.Value, rec.ChangeReason)
	}
	return nil
}
