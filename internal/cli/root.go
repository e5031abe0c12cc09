package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "taskdeck - terminal client for a REST task backend",
	Long: `taskdeck is a terminal task tracker backed by a REST API.

It provides one-shot commands for listing, adding, toggling, and deleting
tasks, an interactive board with live search and filtering, and an MCP
server exposing the same operations to AI assistants.

The backend is configured in .taskdeckrc (server.url); the server owns
task identity and is authoritative for every field.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskdeck %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
