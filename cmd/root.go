package cmd

import (
	"fmt"
	"os"
	"strings"

	"wsb/internal/application"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// CLI flag variables
var (
	// Operation flags
	verbose   bool
	quiet     bool
	logFile   string
	logFormat string

	// Display flags
	noColor      bool
	theme        string
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wsb",
	Short: "Website backup tool for remote directories and databases",
	Long: `wsb mirrors remote websites into a local, git-versioned backup tree.

The backup root is a plain directory whose layout declares what to back
up: each subdirectory named host_port_user describes one SSH account,
and inside it dir_<path> entries select remote directories to rsync,
mysql_<db> and pgsql_<db> directories select databases to dump, and
empty nodata_<table> files exclude row data for individual tables.

From that layout wsb renders a POSIX shell script which mirrors the
directories, dumps the databases, and commits the result to git, so
every run becomes one commit in the backup history.

Examples:
  # Validate the layout of the current directory and show a summary
  wsb test

  # Print the backup script for /srv/backups without running it
  wsb dryrun /srv/backups

  # Run the backup
  wsb backup /srv/backups

  # Run with verbose logging and an explicit config file
  wsb backup --verbose --config /etc/wsb.yaml`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wsb.yaml)")

	// Operation flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	// Display flags
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "dark", "color theme (dark, light, high-contrast, auto)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "output format (table, json, yaml, compact)")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("format"))

	rootCmd.SetUsageTemplate(getUsageTemplate())
}

// validateFlags validates flag combinations before any command runs.
func validateFlags() error {
	if verbose && quiet {
		return fmt.Errorf("--verbose and --quiet flags are mutually exclusive")
	}
	return nil
}

// buildConfig builds the application configuration from the config file,
// CLI flags, and the optional positional backup root.
func buildConfig(cmd *cobra.Command, args []string) (application.Config, error) {
	var config application.Config

	// Load from viper (combines config file and CLI flags)
	if err := viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Override with CLI flags if provided (viper binding should handle this, but explicit override for clarity)
	if cmd.Flags().Changed("verbose") {
		config.Verbose = verbose
	}
	if cmd.Flags().Changed("quiet") {
		config.Quiet = quiet
	}
	if logFile != "" {
		config.LogFile = logFile
	}
	if cmd.Flags().Changed("log-format") {
		config.LogFormat = logFormat
	}
	if cmd.Flags().Changed("no-color") {
		config.NoColor = noColor
	}
	if cmd.Flags().Changed("theme") {
		config.Theme = theme
	}
	if cmd.Flags().Changed("format") {
		config.OutputFormat = outputFormat
	}

	// The positional argument wins over the configured root.
	if len(args) > 0 {
		config.Root = args[0]
	}

	return config, nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".wsb" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wsb")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("WSB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// getUsageTemplate returns a custom usage template with examples
func getUsageTemplate() string {
	return `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Operation Flags:
  --config string           Configuration file path
  -v, --verbose             Enable verbose output
  -q, --quiet               Suppress non-error output
  --log-file string         Write logs to file instead of stderr
  --log-format string       Log format: text, json (default "text")

Visual Enhancement Flags:
  --no-color                Disable color output
  --theme string            Color theme: dark, light, high-contrast, auto (default "dark")
  --format string           Output format: table, json, yaml, compact (default "table")

{{.LocalFlags.FlagUsages}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}

Backup Tree Layout:
  The backup root declares what to back up through its directory names:

  <root>/
    www.example.org_22_jane/          One SSH account: host_port_user
      dir_home_jane_public/           rsync of /home/jane/public
      mysql_joomla/                   mysqldump of database "joomla"
        nodata_j_session              Dump schema only for table j_session
      pgsql_wiki/                     pg_dump of database "wiki"

  Underscores in remote paths are kept; path separators become
  underscores, so dir_home_jane_public selects /home/jane/public.

Configuration File:
  Generate a sample configuration file with: wsb config

  Complete configuration example:

  root: /srv/backups
  verbose: false
  quiet: false
  log_file: ""
  log_format: text
  no_color: false
  theme: dark
  output_format: table
  replication:
    enabled: false
    compression: ZSTD
    compression_level: 3
    keep_last: 0
    storage:
      provider: LOCAL
      local:
        base_path: /var/lib/wsb/archives

Output Formats:
  table          - Formatted summary tables with colors and styling (default)
  json           - Machine-readable JSON output
  yaml           - Human-readable YAML output
  compact        - Minimal output for scripting and automation

Environment Variables:
  All configuration options can be set via environment variables with the prefix WSB_
  Examples:
    WSB_ROOT=/srv/backups
    WSB_THEME=light
    WSB_OUTPUT_FORMAT=json
    WSB_NO_COLOR=1
    WSB_REPLICATION_STORAGE_S3_ACCESS_KEY=AKIA...
`
}

// Version information (set by main package)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
	goVersion = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, bt, gc, gv string) {
	version = v
	buildTime = bt
	gitCommit = gc
	goVersion = gv
}

// createVersionCommand creates the version subcommand
func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Long:  "Print the version information for wsb",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wsb version %s\n", version)
			fmt.Printf("Built: %s\n", buildTime)
			fmt.Printf("Commit: %s\n", gitCommit)
			fmt.Printf("Go version: %s\n", goVersion)
		},
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(createVersionCommand())
	rootCmd.AddCommand(createConfigCommand())
}
