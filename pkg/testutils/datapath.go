// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testutils

import (
	"os"
	"path/filepath"
)

// TestDataPath returns a path to an asset in the testdata directory of the
// package being tested. It fails the test if the path cannot be made
// absolute.
func TestDataPath(t TestFataler, relative ...string) string {
	t.Helper()
	relative = append([]string{"testdata"}, relative...)
	path, err := filepath.Abs(filepath.Join(relative...))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("test data %s: %v", path, err)
	}
	return path
}
