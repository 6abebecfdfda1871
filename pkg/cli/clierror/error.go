// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package clierror attaches process exit codes to errors and prints errors
// for the user of the command line.
package clierror

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlbinder/pkg/cli/exit"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgerror"
)

// Error wraps an error with the exit code the process should terminate
// with.
type Error struct {
	exitCode exit.Code
	cause    error
}

// NewError wraps cause with the given exit code.
func NewError(cause error, exitCode exit.Code) error {
	return &Error{exitCode: exitCode, cause: cause}
}

// GetExitCode returns the exit code of the outermost Error in the chain
// of err, or exit.UnspecifiedError if there is none.
func GetExitCode(err error) exit.Code {
	if err == nil {
		return exit.Success()
	}
	if cliErr := (*Error)(nil); errors.As(err, &cliErr) {
		return cliErr.exitCode
	}
	return exit.UnspecifiedError()
}

// Error implements the error interface.
func (e *Error) Error() string { return e.cause.Error() }

// Cause implements causer.
func (e *Error) Cause() error { return e.cause }

// Unwrap implements the Go 1.13 unwrapping interface.
func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *Error) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("error with exit code: %s", e.exitCode)
	}
	return e.cause
}

// OutputError prints err to w. Errors that carry a pg code are printed
// with the code, hints and details, in the same format as a SQL client
// would.
func OutputError(w io.Writer, err error) {
	if pgerror.HasCandidateCode(err) || errors.HasAssertionFailure(err) {
		fmt.Fprintf(w, "ERROR: %s\n", pgerror.FullError(err))
		return
	}
	fmt.Fprintf(w, "ERROR: %v\n", err)
}
