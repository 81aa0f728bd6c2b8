package application

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wsb/internal/display"
	appErrors "wsb/internal/errors"
	"wsb/internal/layout"
	"wsb/internal/logging"
	"wsb/internal/offsite"
	"wsb/internal/script"
	"wsb/internal/system"
)

// Config holds the application configuration
type Config struct {
	Root         string                    `mapstructure:"root" yaml:"root"`
	Verbose      bool                      `mapstructure:"verbose" yaml:"verbose"`
	Quiet        bool                      `mapstructure:"quiet" yaml:"quiet"`
	LogFile      string                    `mapstructure:"log_file" yaml:"log_file"`
	LogFormat    string                    `mapstructure:"log_format" yaml:"log_format"`
	NoColor      bool                      `mapstructure:"no_color" yaml:"no_color"`
	Theme        string                    `mapstructure:"theme" yaml:"theme"`
	OutputFormat string                    `mapstructure:"output_format" yaml:"output_format"`
	Replication  offsite.ReplicationConfig `mapstructure:"replication" yaml:"replication"`
}

// Validate checks the configuration before any operation runs.
func (c *Config) Validate() error {
	errors := &appErrors.ValidationErrors{}

	if c.Root == "" {
		errors.Add("root", "backup root is required", nil)
	}
	if c.Quiet && c.Verbose {
		errors.Add("verbose", "verbose and quiet are mutually exclusive", nil)
	}
	if c.OutputFormat != "" && !display.ValidOutputFormat(c.OutputFormat) {
		errors.Add("output_format", "unknown output format", c.OutputFormat)
	}
	if err := c.Replication.Validate(); err != nil {
		errors.Add("replication", err.Error(), nil)
	}

	if errors.HasErrors() {
		return errors
	}
	return nil
}

// Application wires the layout loader, script renderer, dependency
// checker, executor, and optional replicator behind the CLI commands.
type Application struct {
	config   Config
	logger   *logging.Logger
	display  *display.Service
	checker  *system.Checker
	executor *system.Executor
	renderer *script.Renderer

	// scriptOut receives the rendered script in dryrun mode. Stdout by
	// default; tests capture it here.
	scriptOut io.Writer
}

// New creates a new application instance
func New(config Config) (*Application, error) {
	if config.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, appErrors.NewConfigError("cannot determine working directory", err)
		}
		config.Root = cwd
	}
	config.Replication.SetDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logLevel := logging.LogLevelNormal
	if config.Quiet {
		logLevel = logging.LogLevelQuiet
	} else if config.Verbose {
		logLevel = logging.LogLevelVerbose
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:   logLevel,
		Format:  config.LogFormat,
		LogFile: config.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	displayService := display.NewService(display.Config{
		ColorEnabled: !config.NoColor,
		Theme:        config.Theme,
		OutputFormat: display.OutputFormat(config.OutputFormat),
		Quiet:        config.Quiet,
		Writer:       os.Stdout,
	})

	app := &Application{
		config:    config,
		logger:    logger,
		display:   displayService,
		checker:   system.NewChecker(),
		executor:  system.NewExecutor(),
		renderer:  script.NewRenderer(),
		scriptOut: os.Stdout,
	}

	return app, nil
}

// Logger exposes the application logger to the CLI layer.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Display exposes the display service to the CLI layer.
func (app *Application) Display() *display.Service {
	return app.display
}

// SetScriptOutput redirects dryrun script output, for tests.
func (app *Application) SetScriptOutput(w io.Writer) {
	app.scriptOut = w
}

// loadLayout loads the backup layout and logs the outcome.
func (app *Application) loadLayout() (*layout.Backup, error) {
	start := time.Now()

	backup, err := layout.Load(app.config.Root)
	if err != nil {
		app.logger.LogLayoutLoad(app.config.Root, 0, 0, 0, time.Since(start), err)
		return nil, err
	}

	stats := backup.Stats()
	app.logger.LogLayoutLoad(backup.Path, stats.Accounts, stats.RemoteDirs,
		stats.MysqlDatabases+stats.PgsqlDatabases, time.Since(start), nil)
	return backup, nil
}

// prepare runs the phases every backup-producing operation shares:
// dependency check, layout load, script render.
func (app *Application) prepare() (*layout.Backup, string, error) {
	if err := app.checker.Verify(); err != nil {
		return nil, "", err
	}

	backup, err := app.loadLayout()
	if err != nil {
		return nil, "", err
	}

	rendered, err := app.renderer.Render(backup)
	if err != nil {
		return nil, "", err
	}

	app.logger.LogScriptRender(backup.Path, backup.Stats().Accounts, len(rendered))

	return backup, rendered, nil
}

// Backup renders the backup script and executes it. Without replication
// the shell replaces this process; with replication the script runs as
// a child so the archive can be shipped afterwards.
func (app *Application) Backup(ctx context.Context) error {
	backup, rendered, err := app.prepare()
	if err != nil {
		return app.handleError(err)
	}

	if !app.config.Replication.Enabled {
		app.logger.LogScriptExecution(backup.Path, true)
		// On success this never returns.
		return app.handleError(app.executor.Replace(rendered))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.LogScriptExecution(backup.Path, false)
	if err := app.executor.Run(ctx, rendered); err != nil {
		return app.handleError(err)
	}

	replicator, err := offsite.NewReplicator(ctx, &app.config.Replication, app.logger)
	if err != nil {
		return app.handleError(err)
	}
	defer replicator.Close()

	stats := backup.Stats()
	metadata, err := replicator.Replicate(ctx, backup.Path, &offsite.ArchiveContents{
		Accounts:       stats.Accounts,
		RemoteDirs:     stats.RemoteDirs,
		MysqlDatabases: stats.MysqlDatabases,
		PgsqlDatabases: stats.PgsqlDatabases,
		NodataTables:   stats.NodataTables,
	})
	if err != nil {
		return app.handleError(err)
	}

	app.display.Success(fmt.Sprintf("Backup complete, archive %s replicated to %s storage",
		metadata.ID, app.config.Replication.Storage.Provider))
	return nil
}

// DryRun renders the backup script and prints it without executing.
func (app *Application) DryRun() error {
	_, rendered, err := app.prepare()
	if err != nil {
		return app.handleError(err)
	}

	if _, err := io.WriteString(app.scriptOut, rendered); err != nil {
		return app.handleError(appErrors.NewExecError("writing rendered script", err))
	}
	return nil
}

// Test checks dependencies, loads the layout, and displays what was
// found. It is the validation command: exit 0 means the tree is sound.
func (app *Application) Test(ctx context.Context) error {
	missing := app.checker.Check(system.RequiredCommands())
	app.logger.LogDependencyCheck(system.RequiredCommands(), missing)
	if len(missing) > 0 {
		return app.handleError(appErrors.NewMissingDependencyError(missing))
	}

	backup, err := app.loadLayout()
	if err != nil {
		return app.handleError(err)
	}

	if err := app.display.RenderBackupSummary(backup); err != nil {
		return app.handleError(err)
	}
	return nil
}

// Shell opens an interactive shell in the backup root. On success it
// never returns.
func (app *Application) Shell() error {
	if err := app.checker.Verify(); err != nil {
		return app.handleError(err)
	}
	if _, err := app.loadLayout(); err != nil {
		return app.handleError(err)
	}
	return app.handleError(app.executor.Shell(app.config.Root))
}

// handleError displays an error with troubleshooting hints and passes
// it through for the exit code.
func (app *Application) handleError(err error) error {
	if err == nil {
		return nil
	}

	app.display.Error(err.Error())
	app.provideTroubleshootingHints(err)
	return err
}

// provideTroubleshootingHints prints context-specific help for the
// error classes a user can fix themselves.
func (app *Application) provideTroubleshootingHints(err error) {
	switch {
	case appErrors.IsMatchError(err):
		fmt.Fprintf(os.Stderr, "\nTroubleshooting hints:\n")
		fmt.Fprintf(os.Stderr, "- Every entry in the backup tree must match exactly one naming rule\n")
		fmt.Fprintf(os.Stderr, "- Account directories look like host_port_user, e.g. www.example.org_22_jane\n")
		fmt.Fprintf(os.Stderr, "- Inside an account use dir_<path>, mysql_<db>, or pgsql_<db>\n")
		fmt.Fprintf(os.Stderr, "- nodata_<table> entries must be empty regular files\n")

	case appErrors.IsMissingDependencyError(err):
		fmt.Fprintf(os.Stderr, "\nTroubleshooting hints:\n")
		fmt.Fprintf(os.Stderr, "- Install the missing commands with your package manager\n")
		fmt.Fprintf(os.Stderr, "- All of date, git, rsync, ssh, and uuidgen must be in PATH\n")

	case appErrors.IsUnsafePathError(err):
		fmt.Fprintf(os.Stderr, "\nTroubleshooting hints:\n")
		fmt.Fprintf(os.Stderr, "- The backup root may only contain letters, digits, '/', '_', '.', and '-'\n")
		fmt.Fprintf(os.Stderr, "- Move or rename the backup root, spaces and shell metacharacters are rejected\n")

	case appErrors.IsType(err, appErrors.ErrorTypeStorage):
		fmt.Fprintf(os.Stderr, "\nTroubleshooting hints:\n")
		fmt.Fprintf(os.Stderr, "- Check the replication storage credentials and bucket/container names\n")
		fmt.Fprintf(os.Stderr, "- Verify network connectivity to the storage provider\n")
	}
}
