package cmd

import (
	"fmt"

	"wsb/internal/application"

	"github.com/spf13/cobra"
)

// dryrunCmd represents the dryrun command
var dryrunCmd = &cobra.Command{
	Use:   "dryrun [root]",
	Short: "Print the backup script without executing it",
	Long: `Render the backup script from the layout of the backup root and print
it to stdout instead of running it.

The output is the exact script the backup command would execute,
suitable for review or for piping into a shell on another machine.

Examples:
  # Show the script for the current directory
  wsb dryrun

  # Show the script for an explicit root
  wsb dryrun /srv/backups

  # Save the script for later inspection
  wsb dryrun /srv/backups > backup.sh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDryrun,
}

func init() {
	rootCmd.AddCommand(dryrunCmd)
}

// runDryrun executes the dryrun command
func runDryrun(cmd *cobra.Command, args []string) error {
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

	return app.DryRun()
}
