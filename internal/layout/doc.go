// Package layout parses a backup root's declarative directory layout into
// the typed model the script renderer consumes.
//
// A backup root encodes what to back up purely through naming conventions:
// directories named <host>_<port>_<user> declare SSH accounts, dir_* entries
// declare remote paths to mirror, mysql_*/pgsql_* entries declare databases
// to dump, and empty nodata_* marker files exclude table data from dumps.
// Each entity kind carries a compiled naming pattern with typed capture
// groups, a nested entry validator, and a combine strategy; the directory
// combinator resolves every child of a directory against its rule set in
// one pass, in sorted-by-name order. That order is load-bearing: it fixes
// the block order of the generated script.
//
// Matching is strict. A child that no rule accepts, or that more than one
// rule accepts, aborts the whole load with an error naming the offending
// path and the candidate rules. The resulting model is immutable; it is
// built bottom-up in a single pass and consumed once.
//
// Example usage:
//
//	b, err := layout.Load("backup")
//	if err != nil {
//		return err
//	}
//	for _, account := range b.RemoteAccounts {
//		fmt.Println(account.Host, account.Port, account.User)
//	}
package layout
