package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Flip the completion state of a task",
	Long: `Ask the backend to flip a task's completed flag.

The server's returned record is taken verbatim, so any field the server
changed along the way is reflected locally.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Ctrl == nil {
			return fmt.Errorf("controller not initialized")
		}

		task, err := Ctrl.Toggle(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", Ctrl.ErrorMessage(), err)
		}

		state := "active"
		if task.Completed {
			state = "completed"
		}
		fmt.Printf("Task %s is now %s\n", task.ID, state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
