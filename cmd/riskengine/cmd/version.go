package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the riskengine CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("riskengine version %s\n", version)
		fmt.Println("A trade simulation and adaptive risk engine")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
