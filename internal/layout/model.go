package layout

import "path/filepath"

// Backup is the root of the resolved model: one local Git working tree
// mirroring every declared remote item.
type Backup struct {
	Path           string           `json:"path"`
	GitDirExists   bool             `json:"git_dir_exists"`
	RemoteAccounts []*RemoteAccount `json:"remote_accounts"`
}

// RemoteAccount is one SSH-reachable target owning the items declared
// beneath its directory.
type RemoteAccount struct {
	Path           string         `json:"path"`
	Host           string         `json:"host"`
	Port           int            `json:"port"`
	User           string         `json:"user"`
	RemoteDirs     []*RemoteDir   `json:"remote_dirs"`
	MysqlDatabases []*RemoteMysql `json:"mysql_databases"`
	PgsqlDatabases []*RemotePgsql `json:"pgsql_databases"`
}

// RemoteDir is one remote filesystem path mirrored into the account
// directory. DataDirExists and PermissionsFileExists record the optional
// markers; they are informational and not consulted by the renderer.
type RemoteDir struct {
	Path                  string `json:"path"`
	RemotePath            string `json:"remote_path"`
	DataDirExists         bool   `json:"data_dir_exists"`
	PermissionsFileExists bool   `json:"permissions_file_exists"`
}

// RemoteMysql is one MySQL database dumped via mysqldump on the remote
// host.
type RemoteMysql struct {
	Path           string         `json:"path"`
	Dbname         string         `json:"dbname"`
	DumpFileExists bool           `json:"dump_file_exists"`
	NodataTables   []*NodataTable `json:"nodata_tables"`
}

// RemotePgsql is one PostgreSQL database dumped via pg_dump on the remote
// host.
type RemotePgsql struct {
	Path           string         `json:"path"`
	Dbname         string         `json:"dbname"`
	DumpFileExists bool           `json:"dump_file_exists"`
	NodataTables   []*NodataTable `json:"nodata_tables"`
}

// NodataTable is one table whose schema is dumped but whose row data is
// excluded.
type NodataTable struct {
	Path  string `json:"path"`
	Table string `json:"table"`
}

// DirName returns the directory basename the generated script changes
// into for this account.
func (a *RemoteAccount) DirName() string {
	return filepath.Base(a.Path)
}

// DirName returns the entry's directory basename.
func (d *RemoteDir) DirName() string {
	return filepath.Base(d.Path)
}

// DirName returns the entry's directory basename.
func (m *RemoteMysql) DirName() string {
	return filepath.Base(m.Path)
}

// DirName returns the entry's directory basename.
func (p *RemotePgsql) DirName() string {
	return filepath.Base(p.Path)
}

// Stats summarizes a resolved model for logs and the validation summary.
type Stats struct {
	Accounts       int `json:"accounts" yaml:"accounts"`
	RemoteDirs     int `json:"remote_dirs" yaml:"remote_dirs"`
	MysqlDatabases int `json:"mysql_databases" yaml:"mysql_databases"`
	PgsqlDatabases int `json:"pgsql_databases" yaml:"pgsql_databases"`
	NodataTables   int `json:"nodata_tables" yaml:"nodata_tables"`
}

// Stats counts the entities in the model.
func (b *Backup) Stats() Stats {
	stats := Stats{Accounts: len(b.RemoteAccounts)}
	for _, account := range b.RemoteAccounts {
		stats.RemoteDirs += len(account.RemoteDirs)
		stats.MysqlDatabases += len(account.MysqlDatabases)
		stats.PgsqlDatabases += len(account.PgsqlDatabases)
		for _, db := range account.MysqlDatabases {
			stats.NodataTables += len(db.NodataTables)
		}
		for _, db := range account.PgsqlDatabases {
			stats.NodataTables += len(db.NodataTables)
		}
	}
	return stats
}

// Databases returns the account's database count across both engines.
func (a *RemoteAccount) Databases() int {
	return len(a.MysqlDatabases) + len(a.PgsqlDatabases)
}
