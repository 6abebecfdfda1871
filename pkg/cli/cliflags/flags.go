// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cliflags describes the command-line flags of stmtbind.
package cliflags

import "strings"

// FlagInfo contains the static information for a CLI flag.
type FlagInfo struct {
	// Name of the flag as used on the command line.
	Name string

	// Shorthand is the short form of the flag (optional).
	Shorthand string

	// EnvVar is the name of the environment variable through which the flag
	// value can be controlled (optional).
	EnvVar string

	// Description of the flag.
	Description string
}

// Usage returns the usage string for the flag, including the environment
// variable if there is one.
func (f FlagInfo) Usage() string {
	s := strings.TrimSpace(f.Description)
	if f.EnvVar != "" {
		s += "\nEnvironment variable: " + f.EnvVar
	}
	return s
}

// Flags of the bind command.
var (
	Catalog = FlagInfo{
		Name:        "catalog",
		Shorthand:   "c",
		EnvVar:      "STMTBIND_CATALOG",
		Description: `YAML file describing the tables and columns of the catalog.`,
	}

	MaxMemory = FlagInfo{
		Name:   "max-memory",
		EnvVar: "STMTBIND_MAX_MEMORY",
		Description: `
Memory budget for the identifiers of the queries of one script, e.g. 64MiB.
Zero means unlimited.`,
	}

	Parallelism = FlagInfo{
		Name:        "parallelism",
		Shorthand:   "p",
		Description: `Number of scripts bound concurrently.`,
	}

	Redactable = FlagInfo{
		Name: "redactable",
		Description: `
Keep redaction markers around user-provided identifiers in the output and
in log messages.`,
	}

	Verbosity = FlagInfo{
		Name:        "verbosity",
		Shorthand:   "v",
		EnvVar:      "STMTBIND_VERBOSITY",
		Description: `Log verbosity. Level 1 logs resolution errors, level 2 every registration.`,
	}

	BuildDeps = FlagInfo{
		Name:        "build-deps",
		Description: `Also list the modules linked into the binary.`,
	}
)
