// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package pgcode defines the PostgreSQL error codes (SQLSTATE) surfaced by
// the statement binder.
package pgcode

// Code is a wrapper around a string to ensure that pg error codes are
// always constructed through this package.
type Code struct {
	code string
}

// MakeCode converts a string into a Code.
func MakeCode(s string) Code {
	return Code{code: s}
}

// String returns the underlying pg code string.
func (c Code) String() string {
	return c.code
}

// PG error codes from:
// http://www.postgresql.org/docs/9.5/static/errcodes-appendix.html.
var (
	// Section: Class 00 - Successful Completion
	SuccessfulCompletion = MakeCode("00000")

	// Section: Class 42 - Syntax Error or Access Rule Violation
	InvalidName            = MakeCode("42602")
	UndefinedColumn        = MakeCode("42703")
	UndefinedObject        = MakeCode("42704")
	UndefinedTable         = MakeCode("42P01")
	AmbiguousColumn        = MakeCode("42702")
	AmbiguousAlias         = MakeCode("42P09")
	DuplicateAlias         = MakeCode("42712")
	DuplicateColumn        = MakeCode("42701")
	DuplicateTable         = MakeCode("42P07")
	InvalidColumnReference = MakeCode("42P10")

	// Section: Class 53 - Insufficient Resources
	OutOfMemory = MakeCode("53200")

	// Section: Class XX - Internal Error
	Internal = MakeCode("XX000")

	// Uncategorized is used for errors that flow out to a client
	// when there's no code known yet.
	Uncategorized = MakeCode("XXUUU")
)
