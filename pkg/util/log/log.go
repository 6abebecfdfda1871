// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log implements leveled, context-tagged logging. Messages are
// formatted with redaction markers around unsafe arguments; the markers are
// stripped from the output unless SetRedactable(true) was called.
package log

import (
	"context"
	"sync/atomic"

	"github.com/cockroachdb/redact"
)

// Safe marks a value as safe for reporting, i.e. it will not be enclosed
// in redaction markers.
func Safe(v interface{}) redact.SafeValue {
	return redact.Safe(v)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return atomic.LoadInt32(&logging.verbosity) >= level
}

// Infof logs to the INFO log.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_INFO, 1, format, args)
}

// Warningf logs to the WARNING log.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_WARNING, 1, format, args)
}

// Errorf logs to the ERROR log.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_ERROR, 1, format, args)
}

// VEventf logs an INFO message if the verbosity is at or above level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, Severity_INFO, 1, format, args)
	}
}

// VErrEventf is like VEventf but logs with ERROR severity.
func VErrEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, Severity_ERROR, 1, format, args)
	}
}
