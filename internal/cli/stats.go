package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsOutputFlag string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate task statistics",
	Long: `Fetch the task collection and print aggregate counts.

Statistics always cover the full collection: total, active, completed,
and the number of high-priority tasks still active.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Ctrl == nil {
			return fmt.Errorf("controller not initialized")
		}

		if err := Ctrl.Load(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", Ctrl.ErrorMessage(), err)
		}

		stats := Ctrl.Stats()
		if statsOutputFlag == outputTable {
			writeStats(os.Stdout, stats)
			return nil
		}
		return writeStructured(os.Stdout, statsOutputFlag, stats)
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsOutputFlag, "output", "o", outputTable, "output format: table, json, or yaml")
	rootCmd.AddCommand(statsCmd)
}
