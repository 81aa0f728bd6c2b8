package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configOutput string

// createConfigCommand creates the config subcommand for generating sample config
func createConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate a sample configuration file",
		Long: `Generate a sample configuration file that can be used with the --config flag.

This command outputs a complete configuration template with all available
options including the offsite replication settings. You can redirect the
output to a file, or write it directly with --output, and customize it
for your environment.

Examples:
  # Print the sample config
  wsb config

  # Write the sample config to the default search location
  wsb config --output ~/.wsb.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configOutput == "" {
				fmt.Print(sampleConfig)
				return nil
			}
			if err := os.WriteFile(configOutput, []byte(sampleConfig), 0o644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			fmt.Printf("Sample configuration written to %s\n", configOutput)
			return nil
		},
	}

	cmd.Flags().StringVar(&configOutput, "output", "", "write the sample config to a file instead of stdout")

	return cmd
}

const sampleConfig = `# Website Backup (wsb) Configuration File
# Complete configuration template with all available options

# Backup root directory whose layout declares what to back up.
# The positional argument of backup/dryrun/test/shell overrides this,
# and an empty value falls back to the current working directory.
root: ""

# Operation settings
verbose: false            # Enable verbose output with per-phase details
quiet: false              # Suppress non-error output (mutually exclusive with verbose)
log_file: ""              # Optional log file path (empty = stderr)
log_format: text          # Log format options:
                          #   - text: human-readable key=value logs (default)
                          #   - json: structured JSON logs

# Visual enhancement settings
no_color: false           # Disable colorized output
theme: dark               # Color theme options:
                          #   - dark: Dark theme with bright colors (default)
                          #   - light: Light theme with darker colors
                          #   - high-contrast: High contrast for accessibility
                          #   - auto: Automatically detect terminal theme
output_format: table      # Output format options:
                          #   - table: Formatted summary tables (default)
                          #   - json: Machine-readable JSON output
                          #   - yaml: Human-readable YAML output
                          #   - compact: Minimal output for scripting

# Offsite replication settings
# When enabled, each successful backup is packed into a tar archive,
# compressed, and shipped to the configured storage provider.
replication:
  enabled: false          # Ship an archive after each successful backup
  compression: ZSTD       # Compression options: NONE, GZIP, LZ4, ZSTD
  compression_level: 3    # Algorithm-specific level (out of range falls back to the default)
  keep_last: 0            # Keep only the newest N archives (0 = keep everything)
  storage:
    provider: LOCAL       # Storage provider options: LOCAL, S3, GCS, AZURE
    local:
      base_path: /var/lib/wsb/archives
      permissions: 0600   # File mode for stored archives
    # s3:
    #   bucket: my-backups
    #   region: eu-central-1
    #   access_key: ""    # Empty = default AWS credential chain
    #   secret_key: ""
    # gcs:
    #   bucket: my-backups
    #   credentials_path: /etc/wsb/gcs-credentials.json
    #   project_id: my-project
    # azure:
    #   account_name: myaccount
    #   account_key: ""   # Base64-encoded shared key
    #   container_name: backups

# Security recommendations:
# 1. Store cloud credentials in environment variables:
#    export WSB_REPLICATION_STORAGE_S3_ACCESS_KEY=your_key
#    export WSB_REPLICATION_STORAGE_S3_SECRET_KEY=your_secret
# 2. Set restrictive file permissions: chmod 600 ~/.wsb.yaml
# 3. Use a dedicated SSH key with read-only access on the remote hosts

# Environment variable examples:
# WSB_ROOT=/srv/backups
# WSB_THEME=light
# WSB_OUTPUT_FORMAT=json
# WSB_NO_COLOR=1
# WSB_REPLICATION_ENABLED=1
`
