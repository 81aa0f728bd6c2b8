package cmd

import (
	"context"
	"fmt"

	"wsb/internal/application"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test [root]",
	Short: "Validate the backup layout and show a summary",
	Long: `Check the required system commands, load the layout of the backup
root, and display a summary of everything that would be backed up.

The exit code is 0 only when every dependency is installed and every
entry in the tree matches a naming rule, so the command doubles as a
validation step for scripts and CI.

Examples:
  # Validate the current directory
  wsb test

  # Validate an explicit root
  wsb test /srv/backups

  # Machine-readable summary
  wsb test --format json /srv/backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

// runTest executes the test command
func runTest(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	config, err := buildConfig(cmd, args)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	app, err := application.New(config)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Test(context.Background())
}
