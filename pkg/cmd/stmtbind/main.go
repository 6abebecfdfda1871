// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// stmtbind binds the queries of YAML scripts against a YAML catalog.
//
//	stmtbind bind --catalog catalog.yaml script.yaml
package main

import "github.com/cockroachdb/sqlbinder/pkg/cli"

func main() {
	cli.Main()
}
