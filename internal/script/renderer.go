package script

import (
	"fmt"

	"wsb/internal/layout"
)

// Renderer turns a resolved layout model into the backup shell script.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the complete script text for b. The only failure mode
// is an unsafe backup root path; everything else in the model was
// already constrained by the naming grammar.
func (r *Renderer) Render(b *layout.Backup) (string, error) {
	if err := CheckRootPath(b.Path); err != nil {
		return "", err
	}

	s := &Script{}
	s.Line("#!/bin/sh")
	s.Blank()
	s.Line("set -eu")
	s.Blank()
	s.Line(`START_DATETIME=$(date -u "+%Y-%m-%d %H:%M:%SZ")`)
	s.Line("UUID=$(uuidgen)")
	s.Blank()
	s.Line("cd " + b.Path)

	if !b.GitDirExists {
		s.Blank()
		s.Line("git init")
	}

	for _, account := range b.RemoteAccounts {
		s.Blank()
		s.Add(r.accountSubshell(account))
	}

	s.Blank()
	s.Line(`END_DATETIME=$(date -u "+%Y-%m-%d %H:%M:%SZ")`)
	s.Blank()
	s.Line("git add .")
	s.Line(`git diff-index --quiet HEAD || git -c user.name="Website Backup (wsb)" -c user.email="wsb@localhost" commit -m "Backup from $START_DATETIME to $END_DATETIME"`)

	return s.String(), nil
}

func (r *Renderer) accountSubshell(account *layout.RemoteAccount) *Subshell {
	sub := NewSubshell()
	sub.Line("cd " + account.DirName())

	for _, dir := range account.RemoteDirs {
		sub.Blank()
		sub.Add(r.dirSubshell(account, dir))
	}
	for _, db := range account.MysqlDatabases {
		sub.Blank()
		sub.Add(r.mysqlSubshell(account, db))
	}
	for _, db := range account.PgsqlDatabases {
		sub.Blank()
		sub.Add(r.pgsqlSubshell(account, db))
	}
	return sub
}

func (r *Renderer) dirSubshell(account *layout.RemoteAccount, dir *layout.RemoteDir) *Subshell {
	sub := NewSubshell()
	sub.Line("cd " + dir.DirName())
	sub.Line(fmt.Sprintf(`rsync -avzP --delete-delay -e "ssh -p %d" %s@%s:%s/ data/`,
		account.Port, account.User, account.Host, dir.RemotePath))
	return sub
}

func (r *Renderer) mysqlSubshell(account *layout.RemoteAccount, db *layout.RemoteMysql) *Subshell {
	remoteDump := "/tmp/mysql_" + db.Dbname + "_$UUID.sql"

	var ignores string
	for _, table := range db.NodataTables {
		ignores += fmt.Sprintf(" --ignore-table %s.%s", db.Dbname, table.Table)
	}

	// Schema-only dump first, then data without the excluded tables. The
	// grep strips mysqldump's completion timestamp so an unchanged
	// database produces an unchanged dump file.
	dump := fmt.Sprintf("( mysqldump --no-data %s && mysqldump --no-create-info%s %s ) | grep -v '^-- Dump completed on' > %s",
		db.Dbname, ignores, db.Dbname, remoteDump)

	sub := NewSubshell()
	sub.Line("cd " + db.DirName())
	sub.Line(r.sshCommand(account, dump))
	sub.Line(r.pullDump(account, remoteDump))
	sub.Line(r.sshCommand(account, "rm -f "+remoteDump))
	return sub
}

func (r *Renderer) pgsqlSubshell(account *layout.RemoteAccount, db *layout.RemotePgsql) *Subshell {
	remoteDump := "/tmp/pgsql_" + db.Dbname + "_$UUID.sql"

	var excludes string
	for _, table := range db.NodataTables {
		excludes += " --exclude-table-data " + table.Table
	}

	dump := fmt.Sprintf("pg_dump%s %s > %s", excludes, db.Dbname, remoteDump)
	if account.User == "root" {
		// root cannot run pg_dump directly under peer authentication.
		dump = fmt.Sprintf("su - postgres -c '%s'", dump)
	}

	sub := NewSubshell()
	sub.Line("cd " + db.DirName())
	sub.Line(r.sshCommand(account, dump))
	sub.Line(r.pullDump(account, remoteDump))
	sub.Line(r.sshCommand(account, "rm -f "+remoteDump))
	return sub
}

func (r *Renderer) sshCommand(account *layout.RemoteAccount, remote string) string {
	return fmt.Sprintf(`ssh -p %d %s@%s "%s"`, account.Port, account.User, account.Host, remote)
}

// pullDump fetches a finished dump into the current database directory.
// No --delete-delay here: the transfer target is a single file.
func (r *Renderer) pullDump(account *layout.RemoteAccount, remoteDump string) string {
	return fmt.Sprintf(`rsync -avzP -e "ssh -p %d" %s@%s:%s dump.sql`,
		account.Port, account.User, account.Host, remoteDump)
}
