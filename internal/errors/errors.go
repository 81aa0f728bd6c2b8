package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeMatch represents layout entries no schema (or more than one schema) accepts
	ErrorTypeMatch ErrorType = "match"
	// ErrorTypeUnsafePath represents a backup root path failing the shell safety whitelist
	ErrorTypeUnsafePath ErrorType = "unsafe_path"
	// ErrorTypeMissingDependency represents unavailable external commands
	ErrorTypeMissingDependency ErrorType = "missing_dependency"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeStorage represents replica storage errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeCompression represents archive compression errors
	ErrorTypeCompression ErrorType = "compression"
	// ErrorTypeExec represents script execution errors
	ErrorTypeExec ErrorType = "exec"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
)

// Error is the coded error carried through the whole pipeline. Path holds
// the filesystem path the error is about, when there is one.
type Error struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new coded Error
func New(errorType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewMatchError reports a directory entry that no schema accepts. The
// message names the offending path and every candidate rule name.
func NewMatchError(path string, ruleNames []string) *Error {
	e := New(ErrorTypeMatch, fmt.Sprintf("no schema matches path %s among [%s]", path, strings.Join(ruleNames, ", ")), nil)
	e.Path = path
	return e
}

// NewAmbiguousMatchError reports a directory entry accepted by more than
// one schema. The message names the path and every competing rule name.
func NewAmbiguousMatchError(path string, ruleNames []string) *Error {
	e := New(ErrorTypeMatch, fmt.Sprintf("ambiguous match of path %s with [%s]", path, strings.Join(ruleNames, ", ")), nil)
	e.Path = path
	return e
}

// NewUnsafePathError reports a backup root path that failed the shell
// safety whitelist. Raised before any script text is produced.
func NewUnsafePathError(path string) *Error {
	e := New(ErrorTypeUnsafePath, fmt.Sprintf("backup root path %q contains characters outside [/a-zA-Z0-9_.-]", path), nil)
	e.Path = path
	return e
}

// NewMissingDependencyError reports unavailable external commands, naming
// every missing one.
func NewMissingDependencyError(missing []string) *Error {
	return New(ErrorTypeMissingDependency, fmt.Sprintf("required external commands not found: %s", strings.Join(missing, ", ")), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *Error {
	return New(ErrorTypeConfig, message, cause)
}

// NewStorageError creates a replica storage error
func NewStorageError(message string, cause error) *Error {
	return New(ErrorTypeStorage, message, cause)
}

// NewCompressionError creates an archive compression error
func NewCompressionError(message string, cause error) *Error {
	return New(ErrorTypeCompression, message, cause)
}

// NewExecError creates a script execution error
func NewExecError(message string, cause error) *Error {
	return New(ErrorTypeExec, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *Error {
	return New(ErrorTypeValidation, message, cause)
}

// IsType reports whether err (or anything it wraps) is a coded Error of
// the given type.
func IsType(err error, errorType ErrorType) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Type == errorType
	}
	return false
}

// IsMatchError reports whether err is a match error (no schema or ambiguous)
func IsMatchError(err error) bool {
	return IsType(err, ErrorTypeMatch)
}

// IsUnsafePathError reports whether err is an unsafe root path error
func IsUnsafePathError(err error) bool {
	return IsType(err, ErrorTypeUnsafePath)
}

// IsMissingDependencyError reports whether err is a missing dependency error
func IsMissingDependencyError(err error) bool {
	return IsType(err, ErrorTypeMissingDependency)
}

// ValidationError represents a single field-level validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%d validation errors: %s (and %d more)", len(e), e[0].Error(), len(e)-1)
}

// Add adds a validation error to the collection
func (e *ValidationErrors) Add(field, message string, value interface{}) {
	*e = append(*e, ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	})
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}
