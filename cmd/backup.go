package cmd

import (
	"context"
	"fmt"

	"wsb/internal/application"

	"github.com/spf13/cobra"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup [root]",
	Short: "Render the backup script and execute it",
	Long: `Render the backup script from the layout of the backup root and run it.

The script mirrors every declared remote directory with rsync over SSH,
dumps every declared MySQL and PostgreSQL database, and commits the
result to a git repository inside the backup root. Without offsite
replication the script replaces the wsb process, so its exit status is
the backup's exit status. With replication enabled the script runs as a
child process and a compressed archive of the backup root is shipped to
the configured storage provider afterwards.

Examples:
  # Back up the layout in the current directory
  wsb backup

  # Back up an explicit root
  wsb backup /srv/backups

  # Back up with verbose logging
  wsb backup --verbose /srv/backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

// runBackup executes the backup command
func runBackup(cmd *cobra.Command, args []string) error {
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

	return app.Backup(context.Background())
}
