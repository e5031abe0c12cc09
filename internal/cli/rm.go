package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Ctrl == nil {
			return fmt.Errorf("controller not initialized")
		}

		if err := Ctrl.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("%s: %w", Ctrl.ErrorMessage(), err)
		}

		fmt.Printf("Deleted task %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
