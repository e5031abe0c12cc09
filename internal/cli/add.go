package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

var (
	addDescriptionFlag string
	addPriorityFlag    string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Create a new task on the backend.

Title and description are required; surrounding whitespace is trimmed
before validation. The server assigns the ID and creation time.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Ctrl == nil {
			return fmt.Errorf("controller not initialized")
		}

		priority, err := models.ParsePriority(addPriorityFlag)
		if err != nil {
			return err
		}

		Ctrl.SetDraftTitle(strings.Join(args, " "))
		Ctrl.SetDraftDescription(addDescriptionFlag)
		Ctrl.SetDraftPriority(priority)

		task, err := Ctrl.Create(cmd.Context())
		if err != nil {
			if errors.Is(err, core.ErrValidation) {
				return err
			}
			return fmt.Errorf("%s: %w", Ctrl.ErrorMessage(), err)
		}

		fmt.Printf("Added task %s\n", task.ID)
		fmt.Printf("  Title:    %s\n", task.Title)
		fmt.Printf("  Priority: %s\n", task.Priority)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescriptionFlag, "description", "d", "", "task description (required)")
	addCmd.Flags().StringVarP(&addPriorityFlag, "priority", "p", "", "priority: low, medium, or high (default medium)")
	rootCmd.AddCommand(addCmd)
}
