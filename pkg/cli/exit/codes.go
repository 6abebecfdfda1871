// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package exit defines the process exit codes of stmtbind.
package exit

// Code represents an exit code.
type Code struct {
	code int
}

// String implements the fmt.Stringer interface.
func (c Code) String() string {
	switch c.code {
	case 0:
		return "success"
	case 1:
		return "unspecified error"
	case 4:
		return "command-line flag error"
	case 125:
		return "bind error"
	}
	return "unknown"
}

// Int returns the numeric value of the code.
func (c Code) Int() int { return c.code }

// Success (0) represents a normal process termination.
func Success() Code { return Code{0} }

// UnspecifiedError (1) indicates the process has terminated with an
// error condition that is not otherwise classified, e.g. an unreadable
// input file.
func UnspecifiedError() Code { return Code{1} }

// CommandLineFlagError (4) indicates there was an error in the
// command-line parameters.
func CommandLineFlagError() Code { return Code{4} }

// Codes that are specific to commands are allocated down from 125.

// BindError (125) indicates that at least one query of a script failed
// to bind.
func BindError() Code { return Code{125} }
