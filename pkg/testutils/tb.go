// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package testutils holds helpers shared by the tests of several packages.
package testutils

// TestFataler is a slimmed down version of testing.TB for use in helper
// functions.
type TestFataler interface {
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Helper()
}
