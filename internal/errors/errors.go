// Package errors provides structured CLI error types for dcpps.
//
// CLIError wraps errors with user-facing messages, hints, and exit codes
// to provide consistent, actionable error output across all commands.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for CLI errors.
const (
	ExitSuccess  = 0  // Successful execution
	ExitGeneral  = 1  // General error
	ExitProvider = 3  // docker compose could not be queried
	ExitConfig   = 4  // Configuration or compose file error
	ExitUsage    = 64 // Command line usage error (BSD convention)
)

// CLIError represents a user-facing CLI error with actionable guidance.
type CLIError struct {
	// Message is the primary error message shown to the user.
	Message string

	// Hint provides actionable guidance on how to fix the error.
	Hint string

	// Cause is the underlying error, if any.
	Cause error

	// Code is the exit code for the CLI.
	Code int
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New creates a new CLIError with the given message and exit code.
func New(code int, message string) *CLIError {
	return &CLIError{
		Message: message,
		Code:    code,
	}
}

// Wrap wraps an existing error with a CLIError.
func Wrap(code int, message string, cause error) *CLIError {
	return &CLIError{
		Message: message,
		Cause:   cause,
		Code:    code,
	}
}

// WithHint adds a hint to the error.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// As is a convenience function for errors.As with CLIError.
func As(err error, target **CLIError) bool {
	return errors.As(err, target)
}

// --- Common error constructors ---

// ProviderUnavailable returns an error for a failed "docker compose ps"
// query. It detects common failure patterns and provides specific hints.
func ProviderUnavailable(cause error) *CLIError {
	msg := "Could not query docker compose"
	hint := "Check that 'docker compose ps' works in this directory"

	detail := ""
	if cause != nil {
		detail = cause.Error()
	}

	switch {
	case containsAny(detail, "executable file not found"):
		msg = "Docker CLI not found"
		hint = "Install Docker with the compose plugin: https://docs.docker.com/compose/install/"
	case containsAny(detail, "cannot connect to the docker daemon", "docker daemon is not running", "permission denied"):
		msg = "Docker daemon is not reachable"
		hint = "Start Docker, or check that your user may access the Docker socket"
	case containsAny(detail, "'compose' is not a docker command", "unknown shorthand flag: 'f'"):
		msg = "docker compose plugin not found"
		hint = "Install docker compose v2: https://docs.docker.com/compose/install/"
	case containsAny(detail, "no configuration file provided"):
		hint = "Run dcpps from the compose project directory or pass --file"
	case containsAny(detail, "parse docker compose ps output"):
		msg = "Unexpected docker compose ps output"
		hint = "dcpps needs docker compose v2; run 'dcpps doctor' to check your setup"
	}

	return &CLIError{
		Message: msg,
		Hint:    hint,
		Cause:   cause,
		Code:    ExitProvider,
	}
}

// NoComposeFile returns an error when no compose file exists in dir.
func NoComposeFile(dir string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("No file docker-compose.yml or docker-compose.yaml in %q", dir),
		Hint:    "Run dcpps from a compose project directory or pass --file",
		Code:    ExitConfig,
	}
}

// NoServices returns an error when a compose file defines no services.
func NoServices(path string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("No services defined in %s", path),
		Hint:    "Add a top-level 'services' section to the compose file",
		Code:    ExitConfig,
	}
}

// ComposeFileInvalid returns an error for an unreadable or malformed compose
// file.
func ComposeFileInvalid(path string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Could not read compose file %s", path),
		Hint:    "Check the file with 'docker compose config'",
		Cause:   cause,
		Code:    ExitConfig,
	}
}

// InvalidInterval returns an error for a watch interval that is not a
// positive number of seconds.
func InvalidInterval(value string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Invalid interval: %s", value),
		Hint:    "Use a positive number of seconds, e.g. --interval 2 or --interval 0.5",
		Code:    ExitUsage,
	}
}

// UnknownConfigKey returns an error for a setting dcpps does not know.
func UnknownConfigKey(key string, known []string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Unknown configuration key: %s", key),
		Hint:    fmt.Sprintf("Known keys: %s", strings.Join(known, ", ")),
		Code:    ExitUsage,
	}
}

// ConfigFailed returns an error for configuration save failures.
func ConfigFailed(operation string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Failed to %s", operation),
		Hint:    "Check file permissions for your dcpps config directory or run 'dcpps doctor'",
		Cause:   cause,
		Code:    ExitConfig,
	}
}

// containsAny checks if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrings {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}

	return false
}
