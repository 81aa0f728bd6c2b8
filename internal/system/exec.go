package system

import (
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"

	appErrors "wsb/internal/errors"
)

// Executor hands rendered scripts to a POSIX shell. Stdout and Stderr
// default to the process's own streams.
type Executor struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecutor creates an executor wired to os.Stdout and os.Stderr.
func NewExecutor() *Executor {
	return &Executor{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Replace runs the script by replacing the current process with the
// shell executing it. On success it never returns.
func (e *Executor) Replace(script string) error {
	shell, err := exec.LookPath("sh")
	if err != nil {
		return appErrors.NewExecError("sh not found in PATH", err)
	}
	if err := syscall.Exec(shell, []string{"sh", "-c", script}, os.Environ()); err != nil {
		return appErrors.NewExecError("replacing process with shell", err)
	}
	return nil
}

// Run executes the script as a child process, so work can continue
// after it finishes.
func (e *Executor) Run(ctx context.Context, script string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", script)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return appErrors.NewExecError("backup script failed", err)
	}
	return nil
}

// Shell changes into dir and replaces the current process with an
// interactive shell, $SHELL or /bin/sh. On success it never returns.
func (e *Executor) Shell(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return appErrors.NewExecError("changing into backup root", err)
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	path, err := exec.LookPath(shell)
	if err != nil {
		return appErrors.NewExecError("shell not found in PATH", err)
	}
	if err := syscall.Exec(path, []string{shell}, os.Environ()); err != nil {
		return appErrors.NewExecError("replacing process with shell", err)
	}
	return nil
}
