package display

import (
	"fmt"
	"strconv"

	"wsb/internal/layout"
)

// BackupSummary is the structured payload the test and dryrun commands
// show for a loaded layout.
type BackupSummary struct {
	Root           string           `json:"root" yaml:"root"`
	GitInitialized bool             `json:"git_initialized" yaml:"git_initialized"`
	Stats          layout.Stats     `json:"stats" yaml:"stats"`
	Accounts       []AccountSummary `json:"accounts" yaml:"accounts"`
}

// AccountSummary is one account row of the layout summary.
type AccountSummary struct {
	Directory      string `json:"directory" yaml:"directory"`
	Host           string `json:"host" yaml:"host"`
	Port           int    `json:"port" yaml:"port"`
	User           string `json:"user" yaml:"user"`
	RemoteDirs     int    `json:"remote_dirs" yaml:"remote_dirs"`
	MysqlDatabases int    `json:"mysql_databases" yaml:"mysql_databases"`
	PgsqlDatabases int    `json:"pgsql_databases" yaml:"pgsql_databases"`
	NodataTables   int    `json:"nodata_tables" yaml:"nodata_tables"`
}

// NewBackupSummary builds the summary payload from a resolved model.
func NewBackupSummary(b *layout.Backup) BackupSummary {
	summary := BackupSummary{
		Root:           b.Path,
		GitInitialized: b.GitDirExists,
		Stats:          b.Stats(),
		Accounts:       make([]AccountSummary, 0, len(b.RemoteAccounts)),
	}

	for _, account := range b.RemoteAccounts {
		nodata := 0
		for _, db := range account.MysqlDatabases {
			nodata += len(db.NodataTables)
		}
		for _, db := range account.PgsqlDatabases {
			nodata += len(db.NodataTables)
		}

		summary.Accounts = append(summary.Accounts, AccountSummary{
			Directory:      account.DirName(),
			Host:           account.Host,
			Port:           account.Port,
			User:           account.User,
			RemoteDirs:     len(account.RemoteDirs),
			MysqlDatabases: len(account.MysqlDatabases),
			PgsqlDatabases: len(account.PgsqlDatabases),
			NodataTables:   nodata,
		})
	}

	return summary
}

// RenderBackupSummary shows the layout summary in the configured format.
func (s *Service) RenderBackupSummary(b *layout.Backup) error {
	summary := NewBackupSummary(b)

	if s.machineFormat() {
		return s.Summary(summary)
	}

	s.Header("Backup layout")
	fmt.Fprintf(s.writer, "Root: %s\n", summary.Root)
	if summary.GitInitialized {
		fmt.Fprintln(s.writer, "Git repository: initialized")
	} else {
		fmt.Fprintln(s.writer, "Git repository: missing (git init will run)")
	}

	if len(summary.Accounts) > 0 {
		fmt.Fprintln(s.writer)
		s.renderAccountTable(summary.Accounts)
	}

	fmt.Fprintln(s.writer)
	stats := summary.Stats
	fmt.Fprintf(s.writer, "%d accounts, %d remote dirs, %d mysql, %d pgsql, %d nodata tables\n",
		stats.Accounts, stats.RemoteDirs, stats.MysqlDatabases, stats.PgsqlDatabases, stats.NodataTables)
	return nil
}

func (s *Service) renderAccountTable(accounts []AccountSummary) {
	tf := NewTableFormatter(s.tableColors())
	tf.SetHeaders([]string{"DIRECTORY", "HOST", "PORT", "USER", "DIRS", "MYSQL", "PGSQL", "NODATA"})
	tf.SetColumnAlignment(2, AlignRight)
	for col := 4; col <= 7; col++ {
		tf.SetColumnAlignment(col, AlignRight)
	}

	for _, account := range accounts {
		tf.AddRow([]string{
			account.Directory,
			account.Host,
			strconv.Itoa(account.Port),
			account.User,
			strconv.Itoa(account.RemoteDirs),
			strconv.Itoa(account.MysqlDatabases),
			strconv.Itoa(account.PgsqlDatabases),
			strconv.Itoa(account.NodataTables),
		})
	}
	fmt.Fprint(s.writer, tf.Render())
}
