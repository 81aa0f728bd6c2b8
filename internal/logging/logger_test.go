package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   LogLevel
	}{
		{
			name: "default config",
			config: Config{
				Level:  LogLevelNormal,
				Format: "text",
			},
			want: LogLevelNormal,
		},
		{
			name: "verbose config",
			config: Config{
				Level:  LogLevelVerbose,
				Format: "json",
			},
			want: LogLevelVerbose,
		},
		{
			name: "quiet config",
			config: Config{
				Level:  LogLevelQuiet,
				Format: "text",
			},
			want: LogLevelQuiet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.config.Output = &buf

			logger, err := NewLogger(tt.config)
			if err != nil {
				t.Errorf("NewLogger() error = %v", err)
				return
			}

			if logger.GetLevel() != tt.want {
				t.Errorf("NewLogger() level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Error("NewDefaultLogger() returned nil")
	}

	if logger.GetLevel() != LogLevelNormal {
		t.Errorf("NewDefaultLogger() level = %v, want %v", logger.GetLevel(), LogLevelNormal)
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	config := Config{
		Level:  LogLevelVerbose,
		Output: &buf,
		Format: "text",
	}

	logger, err := NewLogger(config)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	fields := map[string]interface{}{
		"test_field": "test_value",
		"number":     42,
	}

	logger.WithFields(fields).Info("test message")

	output := buf.String()
	if !strings.Contains(output, "test_field=test_value") {
		t.Errorf("Expected output to contain test_field=test_value, got: %s", output)
	}
	if !strings.Contains(output, "number=42") {
		t.Errorf("Expected output to contain number=42, got: %s", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
}

func TestLogLayoutLoad(t *testing.T) {
	var buf bytes.Buffer
	config := Config{
		Level:  LogLevelVerbose,
		Output: &buf,
		Format: "text",
	}

	logger, err := NewLogger(config)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.LogLayoutLoad("tests/example/backup", 2, 3, 3, 5*time.Millisecond, nil)

	output := buf.String()
	if !strings.Contains(output, "Layout loaded") {
		t.Errorf("Expected success message, got: %s", output)
	}
	if !strings.Contains(output, "accounts=2") {
		t.Errorf("Expected account count, got: %s", output)
	}

	buf.Reset()
	logger.LogLayoutLoad("tests/example/backup", 0, 0, 0, time.Millisecond, errors.New("no schema matches"))

	output = buf.String()
	if !strings.Contains(output, "Layout load failed") {
		t.Errorf("Expected failure message, got: %s", output)
	}
	if !strings.Contains(output, "no schema matches") {
		t.Errorf("Expected error detail, got: %s", output)
	}
}

func TestLogDependencyCheck(t *testing.T) {
	var buf bytes.Buffer
	config := Config{
		Level:  LogLevelDebug,
		Output: &buf,
		Format: "text",
	}

	logger, err := NewLogger(config)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.LogDependencyCheck([]string{"git", "rsync"}, nil)
	if !strings.Contains(buf.String(), "All external commands available") {
		t.Errorf("Expected availability message, got: %s", buf.String())
	}

	buf.Reset()
	logger.LogDependencyCheck([]string{"git", "rsync"}, []string{"rsync"})
	if !strings.Contains(buf.String(), "Missing external commands") {
		t.Errorf("Expected missing message, got: %s", buf.String())
	}
}

func TestLogReplication(t *testing.T) {
	var buf bytes.Buffer
	config := Config{
		Level:  LogLevelNormal,
		Output: &buf,
		Format: "text",
	}

	logger, err := NewLogger(config)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.LogReplication("s3", "20240101-120000-abc123", 1024, 2*time.Second, nil)
	if !strings.Contains(buf.String(), "Offsite replication completed") {
		t.Errorf("Expected success message, got: %s", buf.String())
	}

	buf.Reset()
	logger.LogReplication("s3", "20240101-120000-abc123", 0, time.Second, errors.New("bucket unreachable"))
	if !strings.Contains(buf.String(), "Offsite replication failed") {
		t.Errorf("Expected failure message, got: %s", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	logger := NewDefaultLogger()

	logger.SetLevel(LogLevelDebug)
	if logger.GetLevel() != LogLevelDebug {
		t.Errorf("Expected debug level, got %v", logger.GetLevel())
	}

	if !logger.IsLevelEnabled(LogLevelVerbose) {
		t.Error("Expected verbose to be enabled at debug level")
	}

	logger.SetLevel(LogLevelQuiet)
	if logger.IsLevelEnabled(LogLevelNormal) {
		t.Error("Expected normal to be disabled at quiet level")
	}
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	config := Config{
		Level:  LogLevelDebug,
		Output: &buf,
		Format: "text",
	}

	logger, err := NewLogger(config)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	complete := logger.LogOperationStart("render", map[string]interface{}{"root": "backup"})
	complete(nil)

	output := buf.String()
	if !strings.Contains(output, "Operation started") {
		t.Errorf("Expected start message, got: %s", output)
	}
	if !strings.Contains(output, "Operation completed") {
		t.Errorf("Expected completion message, got: %s", output)
	}

	buf.Reset()
	complete = logger.LogOperationStart("render", nil)
	complete(errors.New("boom"))

	if !strings.Contains(buf.String(), "Operation failed") {
		t.Errorf("Expected failure message, got: %s", buf.String())
	}
}
