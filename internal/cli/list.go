package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/pkg/models"
)

var (
	listSearchFlag string
	listStatusFlag string
	listOutputFlag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `Fetch the task collection from the backend and print it.

Use --search for a case-insensitive substring match over title and
description, and --status to restrict to active or completed tasks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Ctrl == nil {
			return fmt.Errorf("controller not initialized")
		}

		status, err := models.ParseStatusFilter(listStatusFlag)
		if err != nil {
			return err
		}

		if err := Ctrl.Load(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", Ctrl.ErrorMessage(), err)
		}

		Ctrl.SetQuery(listSearchFlag)
		Ctrl.SetStatus(status)
		visible := Ctrl.Visible()

		if listOutputFlag == outputTable {
			writeTaskTable(os.Stdout, visible)
			return nil
		}
		return writeStructured(os.Stdout, listOutputFlag, visible)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listSearchFlag, "search", "s", "", "substring match over title and description")
	listCmd.Flags().StringVar(&listStatusFlag, "status", "all", "status filter: all, active, or completed")
	listCmd.Flags().StringVarP(&listOutputFlag, "output", "o", outputTable, "output format: table, json, or yaml")
	rootCmd.AddCommand(listCmd)
}
