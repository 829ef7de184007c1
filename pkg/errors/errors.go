package errors

import (
	"fmt"
	"strings"
)

// NotFoundError reports a missing video, key or folder entry.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError reports user input that was rejected. Message is shown
// to the user as is.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// WrapValidation turns err into a ValidationError on field. Nil stays nil.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// SelectionError reports an import selection with nothing importable.
// Total counts the files picked, every one of which was rejected.
type SelectionError struct {
	Mode  string // "bulk" or "folder"
	Total int
}

func (e *SelectionError) Error() string {
	if e.Total == 0 {
		return e.Mode + " import: nothing selected"
	}
	return fmt.Sprintf("%s import: 0 of %d files are videos", e.Mode, e.Total)
}

// Is matches ErrNoVideos.
func (e *SelectionError) Is(target error) bool { return target == ErrNoVideos }

// NewSelectionError creates a SelectionError.
func NewSelectionError(mode string, total int) *SelectionError {
	return &SelectionError{Mode: mode, Total: total}
}

// ImportError reports the file an import batch stopped on. Index is zero
// based; the message counts from one.
type ImportError struct {
	Mode  string
	File  string
	Index int
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s import: file %d %q: %v", e.Mode, e.Index+1, e.File, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// NewImportError creates an ImportError.
func NewImportError(mode, file string, index int, err error) *ImportError {
	return &ImportError{Mode: mode, File: file, Index: index, Err: err}
}

// QuotaError reports a write refused by the storage quota.
type QuotaError struct {
	Key   string
	Size  int64
	Limit int64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("storage quota: %s needs %d bytes, limit is %d", e.Key, e.Size, e.Limit)
}

// Is matches ErrQuotaExceeded.
func (e *QuotaError) Is(target error) bool { return target == ErrQuotaExceeded }

// NewQuotaError creates a QuotaError.
func NewQuotaError(key string, size, limit int64) *QuotaError {
	return &QuotaError{Key: key, Size: size, Limit: limit}
}

// ConfigError reports a bad setting in a named component.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// OpError is a failed operation on a subject: reading a path, saving the
// catalog, decoding a data URL. Kind groups the failure ("io", "parse" or
// "resource") for logging.
type OpError struct {
	Kind    string
	Op      string
	Subject string
	Err     error
}

func (e *OpError) Error() string {
	parts := []string{e.Op}
	if e.Subject != "" {
		parts = append(parts, e.Subject)
	}
	msg := strings.Join(parts, " ")
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

// WrapIO records a filesystem or storage failure. Nil stays nil.
func WrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Kind: "io", Op: op, Subject: path, Err: err}
}

// WrapResource records a failure acting on a library resource, such as
// "save catalog" or "resolve video v_1". Nil stays nil.
func WrapResource(op, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(op, resource, id, err)
}

// NewResourceError is WrapResource without the nil check.
func NewResourceError(op, resource, id string, err error) *OpError {
	subject := resource
	if id != "" {
		subject += " " + id
	}
	return &OpError{Kind: "resource", Op: op, Subject: subject, Err: err}
}

// WrapParse records a decoding failure of format. Nil stays nil.
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, "", err)
}

// NewParseError records a decoding failure. message is used when err is nil
// or adds context to it.
func NewParseError(format, source, message string, err error) *OpError {
	op := "parse " + format
	if message != "" {
		if err == nil {
			err = New(message)
		} else {
			err = fmt.Errorf("%s: %w", message, err)
		}
	}
	return &OpError{Kind: "parse", Op: op, Subject: source, Err: err}
}
