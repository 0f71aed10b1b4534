// Package cli provides shared configuration and utilities for the kwicketgen CLI.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// Exit codes.
const (
	ExitSuccess   = 0
	ExitGeneral   = 1
	ExitConfig    = 2
	ExitCatalogue = 3
	ExitGenerate  = 4
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneral
}

// PrintError writes err and any hints attached to it.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintln(w, "Hint:", hint)
	}
}

// ExitWithError prints the error and exits with the appropriate code.
func ExitWithError(err error) {
	PrintError(os.Stderr, err)
	os.Exit(ExitCode(err))
}

// ConfigError creates an ExitError with ExitConfig code.
func ConfigError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitConfig, Message: msg, Err: err}
}

// CatalogueError creates an ExitError with ExitCatalogue code. It covers
// catalogue files that cannot be loaded and catalogues that fail validation.
func CatalogueError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitCatalogue, Message: msg, Err: err}
}

// GenerateError creates an ExitError with ExitGenerate code.
func GenerateError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitGenerate, Message: msg, Err: err}
}

// GeneralError creates an ExitError with ExitGeneral code.
func GeneralError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitGeneral, Message: msg, Err: err}
}
