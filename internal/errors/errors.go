// Package errors provides standardized error types for the appcfg CLI tool.
//
// The errors package defines domain-specific error types that enable
// structured error handling and consistent error messages throughout
// the application.
//
// # Error Types
//
// AppError is the primary error type, containing:
//   - Code: Categorizes the error (NOT_FOUND, ALREADY_EXISTS, etc.)
//   - Message: Human-readable error description
//   - App: The application name involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Sentinel Errors
//
// Common error scenarios have pre-defined sentinel errors:
//
//	errors.ErrAppNotFound      // app is not registered
//	errors.ErrAppExists        // app is already registered
//	errors.ErrInvalidName      // app name validation failed
//	errors.ErrPermissionDenied // root access required
//
// # Usage
//
// Creating domain-specific errors:
//
//	// App not registered
//	return errors.NotFound("wordbank")
//
//	// App already registered
//	return errors.AlreadyExists("wordbank")
//
//	// Validation error
//	return errors.Validation("port must be between 1 and 65535")
//
//	// Wrapping an underlying error
//	return errors.Wrap(errors.ErrCodeConfig, "failed to load registry", err)
//
// # Error Checking
//
// Use errors.Is for sentinel error comparison:
//
//	if errors.Is(err, errors.ErrAppNotFound) {
//	    // Handle not found case
//	}
//
// Use errors.As for type assertion:
//
//	var appErr *errors.AppError
//	if errors.As(err, &appErr) {
//	    fmt.Printf("Error code: %s, App: %s\n", appErr.Code, appErr.App)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"      // Resource not found
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS" // Resource already exists
	ErrCodeValidation    ErrorCode = "VALIDATION"     // Input validation failed
	ErrCodePermission    ErrorCode = "PERMISSION"     // Permission denied
	ErrCodeConfig        ErrorCode = "CONFIG"         // Registry/configuration error
	ErrCodeDaemon        ErrorCode = "DAEMON"         // Daemon (nginx/supervisor/varnish) error
	ErrCodeRender        ErrorCode = "RENDER"         // Template rendering error
	ErrCodeInternal      ErrorCode = "INTERNAL"       // Internal/unexpected error
)

// AppError represents a structured error with context about the operation.
type AppError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	App     string    // Application name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.App != "" && e.Err != nil {
		return fmt.Sprintf("app %s: %s: %v", e.App, e.Message, e.Err)
	}
	if e.App != "" {
		return fmt.Sprintf("app %s: %s", e.App, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrAppNotFound indicates the requested app is not registered.
	ErrAppNotFound = &AppError{Code: ErrCodeNotFound, Message: "app not found"}

	// ErrAppExists indicates an app with the same name is already registered.
	ErrAppExists = &AppError{Code: ErrCodeAlreadyExists, Message: "app already exists"}

	// ErrInvalidName indicates the app name is not valid.
	ErrInvalidName = &AppError{Code: ErrCodeValidation, Message: "invalid app name"}

	// ErrInvalidPort indicates the port is out of range or already taken.
	ErrInvalidPort = &AppError{Code: ErrCodeValidation, Message: "invalid port"}

	// ErrInvalidDomain indicates the domain name is not valid.
	ErrInvalidDomain = &AppError{Code: ErrCodeValidation, Message: "invalid domain"}

	// ErrPermissionDenied indicates insufficient privileges for the operation.
	ErrPermissionDenied = &AppError{Code: ErrCodePermission, Message: "permission denied"}

	// ErrConfigInvalid indicates the registry file is invalid or corrupt.
	ErrConfigInvalid = &AppError{Code: ErrCodeConfig, Message: "invalid configuration"}

	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = &AppError{Code: ErrCodeRender, Message: "template not found"}

	// ErrHtpasswdNotInstalled indicates the htpasswd binary is not available.
	ErrHtpasswdNotInstalled = &AppError{Code: ErrCodeDaemon, Message: "htpasswd not installed"}

	// ErrRootRequired indicates root privileges are required.
	ErrRootRequired = &AppError{Code: ErrCodePermission, Message: "root privileges required"}
)

// NotFound creates an error for an app that is not registered.
func NotFound(app string) error {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: "app not found",
		App:     app,
	}
}

// AlreadyExists creates an error for an app that is already registered.
func AlreadyExists(app string) error {
	return &AppError{
		Code:    ErrCodeAlreadyExists,
		Message: "app already exists",
		App:     app,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &AppError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapApp creates an error with app context and underlying error.
func WrapApp(code ErrorCode, app string, err error) error {
	return &AppError{
		Code: code,
		App:  app,
		Err:  err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
