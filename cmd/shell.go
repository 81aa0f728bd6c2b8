package cmd

import (
	"fmt"

	"wsb/internal/application"

	"github.com/spf13/cobra"
)

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell [root]",
	Short: "Open an interactive shell in the backup root",
	Long: `Validate the layout of the backup root and open an interactive shell
inside it, for inspecting the git history or the mirrored files.

The shell replaces the wsb process. $SHELL is used when set, /bin/sh
otherwise.

Examples:
  # Open a shell in the configured root
  wsb shell

  # Open a shell in an explicit root
  wsb shell /srv/backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// runShell executes the shell command
func runShell(cmd *cobra.Command, args []string) error {
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

	return app.Shell()
}
