package script

import (
	"regexp"

	appErrors "wsb/internal/errors"
)

// Entry names are constrained by their naming patterns, so the backup
// root path is the only free-form value interpolated into the script.
var safeRootPath = regexp.MustCompile(`^[/a-zA-Z0-9_.-]+$`)

// CheckRootPath rejects a backup root path containing characters outside
// the whitelist. It runs before any script text is produced, so an
// unsafe path never reaches the output.
func CheckRootPath(path string) error {
	if !safeRootPath.MatchString(path) {
		return appErrors.NewUnsafePathError(path)
	}
	return nil
}
