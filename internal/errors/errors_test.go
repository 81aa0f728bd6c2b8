package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError(t *testing.T) {
	cause := errors.New("underlying error")
	codedErr := New(ErrorTypeStorage, "upload failed", cause)

	if codedErr.Type != ErrorTypeStorage {
		t.Errorf("Expected type %v, got %v", ErrorTypeStorage, codedErr.Type)
	}

	if codedErr.Message != "upload failed" {
		t.Errorf("Expected message 'upload failed', got %v", codedErr.Message)
	}

	if codedErr.Cause != cause {
		t.Errorf("Expected cause %v, got %v", cause, codedErr.Cause)
	}

	expectedError := "storage: upload failed (caused by: underlying error)"
	if codedErr.Error() != expectedError {
		t.Errorf("Expected error string %v, got %v", expectedError, codedErr.Error())
	}

	if !errors.Is(codedErr, cause) {
		t.Error("Expected Unwrap to reach the cause")
	}
}

func TestErrorWithContext(t *testing.T) {
	codedErr := New(ErrorTypeExec, "script failed", nil)
	codedErr.WithContext("root", "/var/backup").WithContext("exit_code", 1)

	if codedErr.Context["root"] != "/var/backup" {
		t.Errorf("Expected context root=/var/backup, got %v", codedErr.Context["root"])
	}

	if codedErr.Context["exit_code"] != 1 {
		t.Errorf("Expected context exit_code=1, got %v", codedErr.Context["exit_code"])
	}
}

func TestNewMatchError(t *testing.T) {
	err := NewMatchError("backup/stray.txt", []string{"git_dir", "remote_account"})

	if err.Type != ErrorTypeMatch {
		t.Errorf("Expected type %v, got %v", ErrorTypeMatch, err.Type)
	}

	if err.Path != "backup/stray.txt" {
		t.Errorf("Expected path backup/stray.txt, got %v", err.Path)
	}

	msg := err.Error()
	if !strings.Contains(msg, "backup/stray.txt") {
		t.Errorf("Expected message to name the offending path, got %v", msg)
	}
	if !strings.Contains(msg, "git_dir") || !strings.Contains(msg, "remote_account") {
		t.Errorf("Expected message to name every candidate rule, got %v", msg)
	}
}

func TestNewAmbiguousMatchError(t *testing.T) {
	err := NewAmbiguousMatchError("backup/overlap", []string{"rule_a", "rule_b"})

	if !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("Expected ambiguous in message, got %v", err.Error())
	}
	if !strings.Contains(err.Error(), "rule_a") || !strings.Contains(err.Error(), "rule_b") {
		t.Errorf("Expected message to name every competing rule, got %v", err.Error())
	}
}

func TestNewMissingDependencyError(t *testing.T) {
	err := NewMissingDependencyError([]string{"rsync", "uuidgen"})

	if err.Type != ErrorTypeMissingDependency {
		t.Errorf("Expected type %v, got %v", ErrorTypeMissingDependency, err.Type)
	}

	for _, cmd := range []string{"rsync", "uuidgen"} {
		if !strings.Contains(err.Error(), cmd) {
			t.Errorf("Expected message to name missing command %s, got %v", cmd, err.Error())
		}
	}
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		want      bool
	}{
		{
			name:      "match error detected",
			err:       NewMatchError("p", []string{"r"}),
			predicate: IsMatchError,
			want:      true,
		},
		{
			name:      "ambiguous match counts as match error",
			err:       NewAmbiguousMatchError("p", []string{"r1", "r2"}),
			predicate: IsMatchError,
			want:      true,
		},
		{
			name:      "unsafe path detected",
			err:       NewUnsafePathError("bad;path"),
			predicate: IsUnsafePathError,
			want:      true,
		},
		{
			name:      "wrapped coded error detected",
			err:       fmt.Errorf("load failed: %w", NewUnsafePathError("bad path")),
			predicate: IsUnsafePathError,
			want:      true,
		},
		{
			name:      "missing dependency detected",
			err:       NewMissingDependencyError([]string{"git"}),
			predicate: IsMissingDependencyError,
			want:      true,
		},
		{
			name:      "plain error is no match error",
			err:       errors.New("plain"),
			predicate: IsMatchError,
			want:      false,
		},
		{
			name:      "other coded type is no match error",
			err:       NewStorageError("boom", nil),
			predicate: IsMatchError,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.predicate(tt.err); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidationErrors(t *testing.T) {
	var validationErrors ValidationErrors

	if validationErrors.HasErrors() {
		t.Error("Expected no validation errors initially")
	}

	validationErrors.Add("port", "must be numeric", "abc")
	validationErrors.Add("host", "required", nil)

	if !validationErrors.HasErrors() {
		t.Error("Expected validation errors after Add")
	}

	if len(validationErrors) != 2 {
		t.Errorf("Expected 2 validation errors, got %d", len(validationErrors))
	}

	msg := validationErrors.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Expected aggregate message, got %v", msg)
	}
}
