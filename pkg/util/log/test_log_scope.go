// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"io"
)

// tShim is the subset of testing.TB used by TestLogScope.
type tShim interface {
	Helper()
	Failed() bool
	Logf(format string, args ...interface{})
}

// TestLogScope captures the log output of a test. The captured output is
// replayed through the test's own logger if the test fails, and discarded
// otherwise.
//
// Use as follows:
//
//	defer log.Scope(t).Close(t)
type TestLogScope struct {
	prevOut       io.Writer
	prevVerbosity int32
	buf           bytes.Buffer
}

// Scope creates a TestLogScope which captures the logging output until
// Close is called. The verbosity is raised to 2 for the scope's duration so
// that binder events show up in failing test output.
func Scope(t tShim) *TestLogScope {
	t.Helper()
	l := &TestLogScope{}
	l.prevOut = SetOutput(&syncBuffer{buf: &l.buf})
	l.prevVerbosity = SetVerbosity(2)
	return l
}

// Close restores the previous logging configuration.
func (l *TestLogScope) Close(t tShim) {
	t.Helper()
	SetOutput(l.prevOut)
	SetVerbosity(l.prevVerbosity)
	if t.Failed() && l.buf.Len() > 0 {
		t.Logf("log output:\n%s", l.buf.String())
	}
}

// syncBuffer is written to while the logging mutex is held.
type syncBuffer struct {
	buf *bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}
