//go:build integration
// +build integration

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"wsb/internal/system"
)

// TestCLIIntegration tests the CLI application end-to-end
func TestCLIIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI integration tests in short mode")
	}

	bin := buildCLI(t)

	t.Run("CLI Help Command", func(t *testing.T) {
		testCLIHelp(t, bin)
	})

	t.Run("CLI Version Command", func(t *testing.T) {
		testCLIVersion(t, bin)
	})

	t.Run("CLI Config Command", func(t *testing.T) {
		testCLIConfig(t, bin)
	})

	t.Run("CLI Test Command", func(t *testing.T) {
		testCLITest(t, bin)
	})

	t.Run("CLI Dryrun Command", func(t *testing.T) {
		testCLIDryrun(t, bin)
	})

	t.Run("CLI Error Handling", func(t *testing.T) {
		testCLIErrorHandling(t, bin)
	})
}

// buildCLI compiles the wsb binary into a temporary directory.
func buildCLI(t *testing.T) string {
	t.Helper()

	bin := filepath.Join(t.TempDir(), "wsb")
	build := exec.Command("go", "build", "-o", bin, "..")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build wsb binary: %v\n%s", err, out)
	}
	return bin
}

// runCLI runs the built binary with a clean HOME so no user config or
// terminal styling leaks into the assertions.
func runCLI(t *testing.T, bin string, args ...string) (string, error) {
	t.Helper()

	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// requireBackupCommands skips the test when the commands the rendered
// script depends on are not installed.
func requireBackupCommands(t *testing.T) {
	t.Helper()

	for _, name := range system.RequiredCommands() {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("required command %q not installed", name)
		}
	}
}

// writeBackupTree creates a minimal valid backup layout.
func writeBackupTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	account := filepath.Join(root, "www.example.org_22_jane")

	if err := os.MkdirAll(filepath.Join(account, "dir_home_jane_public"), 0o755); err != nil {
		t.Fatal(err)
	}
	mysql := filepath.Join(account, "mysql_joomla")
	if err := os.MkdirAll(mysql, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mysql, "nodata_j_session"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func testCLIHelp(t *testing.T, bin string) {
	out, err := runCLI(t, bin, "--help")
	if err != nil {
		t.Fatalf("wsb --help failed: %v\n%s", err, out)
	}

	for _, want := range []string{"Available Commands", "backup", "dryrun", "test", "shell", "Backup Tree Layout"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func testCLIVersion(t *testing.T, bin string) {
	out, err := runCLI(t, bin, "version")
	if err != nil {
		t.Fatalf("wsb version failed: %v\n%s", err, out)
	}

	if !strings.Contains(out, "wsb version") {
		t.Errorf("version output = %q, want it to contain %q", out, "wsb version")
	}
}

func testCLIConfig(t *testing.T, bin string) {
	out, err := runCLI(t, bin, "config")
	if err != nil {
		t.Fatalf("wsb config failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "replication:") {
		t.Errorf("sample config missing replication section:\n%s", out)
	}

	target := filepath.Join(t.TempDir(), "wsb.yaml")
	if out, err := runCLI(t, bin, "config", "--output", target); err != nil {
		t.Fatalf("wsb config --output failed: %v\n%s", err, out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "replication:") {
		t.Error("written config missing replication section")
	}
}

func testCLITest(t *testing.T, bin string) {
	requireBackupCommands(t)
	root := writeBackupTree(t)

	out, err := runCLI(t, bin, "test", "--format", "json", root)
	if err != nil {
		t.Fatalf("wsb test failed: %v\n%s", err, out)
	}

	if !strings.Contains(out, "www.example.org") {
		t.Errorf("test output missing account host:\n%s", out)
	}
}

func testCLIDryrun(t *testing.T, bin string) {
	requireBackupCommands(t)
	root := writeBackupTree(t)

	// --quiet keeps log lines off stderr so the combined output is
	// exactly the rendered script.
	out, err := runCLI(t, bin, "dryrun", "--quiet", root)
	if err != nil {
		t.Fatalf("wsb dryrun failed: %v\n%s", err, out)
	}

	if !strings.HasPrefix(out, "#!/bin/sh\n") {
		t.Errorf("dryrun output does not start with a shebang:\n%.100s", out)
	}
	if !strings.Contains(out, "mysqldump --no-data joomla") {
		t.Errorf("dryrun output missing mysql dump:\n%s", out)
	}
}

func testCLIErrorHandling(t *testing.T, bin string) {
	requireBackupCommands(t)

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("stray"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, bin, "test", root)
	if err == nil {
		t.Fatalf("wsb test succeeded on an invalid tree:\n%s", out)
	}
	if !strings.Contains(out, "no schema matches path") {
		t.Errorf("error output missing match error:\n%s", out)
	}

	if out, err := runCLI(t, bin, "test", "--verbose", "--quiet", root); err == nil {
		t.Fatalf("conflicting flags accepted:\n%s", out)
	}
}
