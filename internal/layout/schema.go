package layout

// The naming grammar, one schema per entity kind. Patterns are anchored
// and their character classes double as the shell-safety guarantee for
// every value interpolated into the generated script.

func backupSchema() Rule {
	return Rule{
		Name:    "backup",
		Pattern: NewPattern(`^.*$`, nil),
		Entry:   Dir{Rules: backupRules()},
		Combine: Collect,
		Build:   buildBackup,
	}
}

func backupRules() []Rule {
	return []Rule{
		{
			Name:    "git_dir",
			Pattern: NewPattern(`^\.git$`, nil),
			Entry:   AnyDir{},
			Combine: Exists,
		},
		{
			Name: "remote_account",
			Pattern: NewPattern(`^(?P<host>[a-z0-9][a-z0-9.-]*)_(?P<port>[0-9]+)_(?P<user>[a-z][a-z0-9_]*)$`,
				map[string]Transform{"port": toPort}),
			Entry:   Dir{Rules: accountRules()},
			Combine: Collect,
			Build:   buildRemoteAccount,
		},
	}
}

func accountRules() []Rule {
	return []Rule{
		{
			Name: "remote_dir",
			Pattern: NewPattern(`^dir_(?P<remote_path>[a-zA-Z0-9._-]+)$`,
				map[string]Transform{"remote_path": toRemotePath}),
			Entry:   Dir{Rules: remoteDirRules()},
			Combine: Collect,
			Build:   buildRemoteDir,
		},
		{
			Name:    "mysql_database",
			Pattern: NewPattern(`^mysql_(?P<dbname>[a-zA-Z0-9._][a-zA-Z0-9._-]*)$`, nil),
			Entry:   Dir{Rules: databaseRules()},
			Combine: Collect,
			Build:   buildRemoteMysql,
		},
		{
			Name:    "pgsql_database",
			Pattern: NewPattern(`^pgsql_(?P<dbname>[a-zA-Z0-9._][a-zA-Z0-9._-]*)$`, nil),
			Entry:   Dir{Rules: databaseRules()},
			Combine: Collect,
			Build:   buildRemotePgsql,
		},
	}
}

func remoteDirRules() []Rule {
	return []Rule{
		{
			Name:    "data_dir",
			Pattern: NewPattern(`^data$`, nil),
			Entry:   AnyDir{},
			Combine: Exists,
		},
		{
			Name:    "permissions_file",
			Pattern: NewPattern(`^permissions\.sh$`, nil),
			Entry:   AnyFile{},
			Combine: Exists,
		},
	}
}

func databaseRules() []Rule {
	return []Rule{
		{
			Name:    "dump_file",
			Pattern: NewPattern(`^dump\.sql$`, nil),
			Entry:   AnyFile{},
			Combine: Exists,
		},
		{
			Name:    "nodata_table",
			Pattern: NewPattern(`^nodata_(?P<table>[a-zA-Z][a-zA-Z0-9_]*)$`, nil),
			Entry:   EmptyFile{},
			Combine: Collect,
			Build:   buildNodataTable,
		},
	}
}

func buildBackup(path string, fields Fields) (interface{}, error) {
	return &Backup{
		Path:           path,
		GitDirExists:   fields["git_dir"].(bool),
		RemoteAccounts: asRemoteAccounts(fields["remote_account"]),
	}, nil
}

func buildRemoteAccount(path string, fields Fields) (interface{}, error) {
	return &RemoteAccount{
		Path:           path,
		Host:           fields["host"].(string),
		Port:           fields["port"].(int),
		User:           fields["user"].(string),
		RemoteDirs:     asRemoteDirs(fields["remote_dir"]),
		MysqlDatabases: asRemoteMysqls(fields["mysql_database"]),
		PgsqlDatabases: asRemotePgsqls(fields["pgsql_database"]),
	}, nil
}

func buildRemoteDir(path string, fields Fields) (interface{}, error) {
	return &RemoteDir{
		Path:                  path,
		RemotePath:            fields["remote_path"].(string),
		DataDirExists:         fields["data_dir"].(bool),
		PermissionsFileExists: fields["permissions_file"].(bool),
	}, nil
}

func buildRemoteMysql(path string, fields Fields) (interface{}, error) {
	return &RemoteMysql{
		Path:           path,
		Dbname:         fields["dbname"].(string),
		DumpFileExists: fields["dump_file"].(bool),
		NodataTables:   asNodataTables(fields["nodata_table"]),
	}, nil
}

func buildRemotePgsql(path string, fields Fields) (interface{}, error) {
	return &RemotePgsql{
		Path:           path,
		Dbname:         fields["dbname"].(string),
		DumpFileExists: fields["dump_file"].(bool),
		NodataTables:   asNodataTables(fields["nodata_table"]),
	}, nil
}

func buildNodataTable(path string, fields Fields) (interface{}, error) {
	return &NodataTable{
		Path:  path,
		Table: fields["table"].(string),
	}, nil
}

func asRemoteAccounts(v interface{}) []*RemoteAccount {
	items, _ := v.([]interface{})
	out := make([]*RemoteAccount, 0, len(items))
	for _, item := range items {
		out = append(out, item.(*RemoteAccount))
	}
	return out
}

func asRemoteDirs(v interface{}) []*RemoteDir {
	items, _ := v.([]interface{})
	out := make([]*RemoteDir, 0, len(items))
	for _, item := range items {
		out = append(out, item.(*RemoteDir))
	}
	return out
}

func asRemoteMysqls(v interface{}) []*RemoteMysql {
	items, _ := v.([]interface{})
	out := make([]*RemoteMysql, 0, len(items))
	for _, item := range items {
		out = append(out, item.(*RemoteMysql))
	}
	return out
}

func asRemotePgsqls(v interface{}) []*RemotePgsql {
	items, _ := v.([]interface{})
	out := make([]*RemotePgsql, 0, len(items))
	for _, item := range items {
		out = append(out, item.(*RemotePgsql))
	}
	return out
}

func asNodataTables(v interface{}) []*NodataTable {
	items, _ := v.([]interface{})
	out := make([]*NodataTable, 0, len(items))
	for _, item := range items {
		out = append(out, item.(*NodataTable))
	}
	return out
}
