package system

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	appErrors "wsb/internal/errors"
)

func fakeChecker(installed ...string) *Checker {
	return &Checker{
		lookPath: func(file string) (string, error) {
			for _, name := range installed {
				if name == file {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("executable file not found in $PATH")
		},
	}
}

func TestCheckerCheck(t *testing.T) {
	tests := []struct {
		name        string
		installed   []string
		required    []string
		wantMissing []string
	}{
		{
			name:        "all installed",
			installed:   []string{"date", "git", "rsync", "ssh", "uuidgen"},
			required:    RequiredCommands(),
			wantMissing: nil,
		},
		{
			name:        "some missing",
			installed:   []string{"date", "git", "ssh"},
			required:    RequiredCommands(),
			wantMissing: []string{"rsync", "uuidgen"},
		},
		{
			name:        "none installed",
			installed:   nil,
			required:    []string{"git"},
			wantMissing: []string{"git"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fakeChecker(tt.installed...).Check(tt.required)
			if !reflect.DeepEqual(got, tt.wantMissing) {
				t.Errorf("Check() = %v, want %v", got, tt.wantMissing)
			}
		})
	}
}

func TestCheckerVerify(t *testing.T) {
	if err := fakeChecker(RequiredCommands()...).Verify(); err != nil {
		t.Errorf("Verify() with everything installed = %v", err)
	}

	err := fakeChecker("date", "git").Verify()
	if err == nil {
		t.Fatal("Verify() with missing commands returned nil")
	}
	if !appErrors.IsMissingDependencyError(err) {
		t.Errorf("Verify() error type = %v", err)
	}
	for _, name := range []string{"rsync", "ssh", "uuidgen"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Verify() error %q does not name %s", err, name)
		}
	}
}
