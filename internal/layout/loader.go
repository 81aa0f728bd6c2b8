package layout

import (
	"fmt"
	"os"

	appErrors "wsb/internal/errors"
)

// Load parses the directory layout rooted at root into a Backup model.
// Every entry under root must match exactly one schema rule or Load
// fails with an error naming the offending path and the candidate
// rules. Load never modifies the tree.
func Load(root string) (*Backup, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, appErrors.NewValidationError(fmt.Sprintf("backup root %s is not readable", root), err)
	}
	if !info.IsDir() {
		return nil, appErrors.NewValidationError(fmt.Sprintf("backup root %s is not a directory", root), nil)
	}

	schema := backupSchema()
	fields, err := schema.Entry.Validate(root)
	if err != nil {
		return nil, err
	}
	item, err := schema.Build(root, fields)
	if err != nil {
		return nil, err
	}
	return item.(*Backup), nil
}
