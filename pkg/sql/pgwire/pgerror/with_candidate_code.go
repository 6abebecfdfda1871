// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"fmt"

	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/errors"
)

type withCandidateCode struct {
	cause error
	code  string
}

var _ error = (*withCandidateCode)(nil)
var _ errors.SafeFormatter = (*withCandidateCode)(nil)
var _ fmt.Formatter = (*withCandidateCode)(nil)

func (w *withCandidateCode) Error() string { return w.cause.Error() }
func (w *withCandidateCode) Cause() error  { return w.cause }
func (w *withCandidateCode) Unwrap() error { return w.cause }

func (w *withCandidateCode) Format(s fmt.State, verb rune) { errors.FormatError(w, s, verb) }

func (w *withCandidateCode) SafeFormatError(p errors.Printer) (next error) {
	if p.Detail() {
		p.Printf("candidate pg code: %s", errors.Safe(w.code))
	}
	return w.cause
}

// WithCandidateCode decorates the error with a candidate postgres
// error code. It is called "candidate" because the code is only used
// by GetPGCode() below conditionally. The code is considered PII-free
// and is thus reportable.
func WithCandidateCode(err error, code pgcode.Code) error {
	if err == nil {
		return nil
	}
	return &withCandidateCode{cause: err, code: code.String()}
}

// HasCandidateCode returns true iff there is at least one candidate
// code in the error chain.
func HasCandidateCode(err error) bool {
	for c := err; c != nil; c = errors.UnwrapOnce(c) {
		if _, ok := c.(*withCandidateCode); ok {
			return true
		}
	}
	return false
}

// GetPGCode retrieves the pg code for an error. Assertion failures
// always map to pgcode.Internal. Otherwise the innermost candidate
// code wins, so that a wrapping layer cannot hide the original cause.
func GetPGCode(err error) pgcode.Code {
	if err == nil {
		return pgcode.SuccessfulCompletion
	}
	if errors.HasAssertionFailure(err) {
		return pgcode.Internal
	}
	code := pgcode.Uncategorized
	for c := err; c != nil; c = errors.UnwrapOnce(c) {
		if w, ok := c.(*withCandidateCode); ok {
			code = pgcode.MakeCode(w.code)
		}
	}
	return code
}
