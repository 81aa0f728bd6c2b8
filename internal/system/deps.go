// Package system covers the host-facing edges: checking that external
// commands exist and handing a rendered script to a shell.
package system

import (
	"os/exec"

	appErrors "wsb/internal/errors"
)

// RequiredCommands returns the external commands the generated script
// runs on the local side. mysqldump and pg_dump run on the remote hosts
// and cannot be checked from here.
func RequiredCommands() []string {
	return []string{"date", "git", "rsync", "ssh", "uuidgen"}
}

// Checker verifies external commands are installed.
type Checker struct {
	lookPath func(file string) (string, error)
}

// NewChecker creates a checker backed by the system PATH.
func NewChecker() *Checker {
	return &Checker{lookPath: exec.LookPath}
}

// Check returns the subset of required that is not installed, in input
// order.
func (c *Checker) Check(required []string) []string {
	var missing []string
	for _, name := range required {
		if _, err := c.lookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// Verify checks the default required command set and returns a coded
// error naming every missing command.
func (c *Checker) Verify() error {
	if missing := c.Check(RequiredCommands()); len(missing) > 0 {
		return appErrors.NewMissingDependencyError(missing)
	}
	return nil
}
