package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "wsb/internal/errors"
	"wsb/internal/layout"
)

// exampleBackup mirrors the reference layout tree: two accounts on
// example.com, one with a mirrored home directory and three databases,
// one with two mirrored system directories.
func exampleBackup() *layout.Backup {
	root := "tests/example/backup"
	jane := root + "/example.com_22_jane"
	admin := root + "/example.com_22_root"

	return &layout.Backup{
		Path: root,
		RemoteAccounts: []*layout.RemoteAccount{
			{
				Path: jane,
				Host: "example.com",
				Port: 22,
				User: "jane",
				RemoteDirs: []*layout.RemoteDir{
					{Path: jane + "/dir_home_jane_public", RemotePath: "/home/jane/public"},
				},
				MysqlDatabases: []*layout.RemoteMysql{
					{
						Path:   jane + "/mysql_joomla",
						Dbname: "joomla",
						NodataTables: []*layout.NodataTable{
							{Path: jane + "/mysql_joomla/nodata_j_session", Table: "j_session"},
						},
					},
				},
				PgsqlDatabases: []*layout.RemotePgsql{
					{Path: jane + "/pgsql_redmine", Dbname: "redmine"},
					{
						Path:   jane + "/pgsql_test",
						Dbname: "test",
						NodataTables: []*layout.NodataTable{
							{Path: jane + "/pgsql_test/nodata_garbage", Table: "garbage"},
							{Path: jane + "/pgsql_test/nodata_useless", Table: "useless"},
						},
					},
				},
			},
			{
				Path: admin,
				Host: "example.com",
				Port: 22,
				User: "root",
				RemoteDirs: []*layout.RemoteDir{
					{Path: admin + "/dir_etc_apache2", RemotePath: "/etc/apache2"},
					{Path: admin + "/dir_etc_cron.d", RemotePath: "/etc/cron.d"},
				},
			},
		},
	}
}

func TestRenderExampleBackup(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "example_backup.sh"))
	require.NoError(t, err)

	got, err := NewRenderer().Render(exampleBackup())
	require.NoError(t, err)
	assert.Equal(t, string(want), got)
}

func TestRenderSkipsGitInitWhenRepoExists(t *testing.T) {
	backup := exampleBackup()
	backup.GitDirExists = true

	got, err := NewRenderer().Render(backup)
	require.NoError(t, err)
	assert.NotContains(t, got, "git init")
	assert.Contains(t, got, "git add .")
}

func TestRenderEmptyBackup(t *testing.T) {
	got, err := NewRenderer().Render(&layout.Backup{Path: "/var/backups/web"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Equal(t, "#!/bin/sh", lines[0])
	assert.Contains(t, got, "set -eu")
	assert.Contains(t, got, "cd /var/backups/web")
	assert.Contains(t, got, "git init")
	assert.Contains(t, got, "git add .")
	assert.NotContains(t, got, "\n(\n")
}

func TestRenderPgsqlAsRootUsesSuPostgres(t *testing.T) {
	backup := &layout.Backup{
		Path: "/var/backups/web",
		RemoteAccounts: []*layout.RemoteAccount{
			{
				Path: "/var/backups/web/example.com_22_root",
				Host: "example.com",
				Port: 22,
				User: "root",
				PgsqlDatabases: []*layout.RemotePgsql{
					{Path: "/var/backups/web/example.com_22_root/pgsql_redmine", Dbname: "redmine"},
				},
			},
		},
	}

	got, err := NewRenderer().Render(backup)
	require.NoError(t, err)
	assert.Contains(t, got,
		`ssh -p 22 root@example.com "su - postgres -c 'pg_dump redmine > /tmp/pgsql_redmine_$UUID.sql'"`)
	// Cleanup runs as the login user, not via su.
	assert.Contains(t, got, `ssh -p 22 root@example.com "rm -f /tmp/pgsql_redmine_$UUID.sql"`)
	assert.NotContains(t, got, `su - postgres -c 'rm`)
}

func TestRenderNonRootPgsqlSkipsSuPostgres(t *testing.T) {
	got, err := NewRenderer().Render(exampleBackup())
	require.NoError(t, err)
	assert.Contains(t, got, `ssh -p 22 jane@example.com "pg_dump redmine > /tmp/pgsql_redmine_$UUID.sql"`)
	assert.NotContains(t, got, "su - postgres")
}

func TestRenderCustomPort(t *testing.T) {
	backup := &layout.Backup{
		Path: "/var/backups/web",
		RemoteAccounts: []*layout.RemoteAccount{
			{
				Path: "/var/backups/web/example.com_2222_jane",
				Host: "example.com",
				Port: 2222,
				User: "jane",
				RemoteDirs: []*layout.RemoteDir{
					{Path: "/var/backups/web/example.com_2222_jane/dir_srv", RemotePath: "/srv"},
				},
			},
		},
	}

	got, err := NewRenderer().Render(backup)
	require.NoError(t, err)
	assert.Contains(t, got, `rsync -avzP --delete-delay -e "ssh -p 2222" jane@example.com:/srv/ data/`)
}

func TestRenderUnsafeRootPath(t *testing.T) {
	_, err := NewRenderer().Render(&layout.Backup{Path: "/var/back ups"})
	require.Error(t, err)
	assert.True(t, appErrors.IsUnsafePathError(err))
}
