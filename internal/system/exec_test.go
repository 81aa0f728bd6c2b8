package system

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	appErrors "wsb/internal/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecutorRun(t *testing.T) {
	requireShell(t)

	var stdout, stderr bytes.Buffer
	executor := &Executor{Stdout: &stdout, Stderr: &stderr}

	if err := executor.Run(context.Background(), "echo done"); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := stdout.String(); got != "done\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestExecutorRunFailure(t *testing.T) {
	requireShell(t)

	executor := &Executor{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := executor.Run(context.Background(), "exit 3")
	if err == nil {
		t.Fatal("Run with failing script returned nil")
	}
	if !appErrors.IsType(err, appErrors.ErrorTypeExec) {
		t.Errorf("error type = %v", err)
	}
}

func TestExecutorRunCanceled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := &Executor{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if err := executor.Run(ctx, "sleep 10"); err == nil {
		t.Fatal("Run with canceled context returned nil")
	}
}
