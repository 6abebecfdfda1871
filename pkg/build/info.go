// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package build describes the binary that is running.
package build

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// TimeFormat is the reference format for build.Time.
const TimeFormat = "2006/01/02 15:04:05"

var (
	// These variables are initialized via the linker -X flag when compiling
	// release binaries.
	tag      = "unknown" // Tag of this build (git describe --tags w/ optional '-dirty' suffix)
	utcTime  string      // Build time in UTC (year/month/day hour:min:sec)
	rev      string      // SHA-1 of this build (git rev-parse)
	platform = fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH)
)

// Info describes the build of the running binary.
type Info struct {
	GoVersion string
	Tag       string
	Time      string
	Revision  string
	Platform  string
	// Dependencies lists the modules linked into the binary as
	// "path@version" pairs.
	Dependencies []string
}

// GetInfo returns an Info struct populated with the build information.
// Fields that were not set by the linker are filled from the module build
// information when it is available.
func GetInfo() Info {
	info := Info{
		GoVersion: runtime.Version(),
		Tag:       tag,
		Time:      utcTime,
		Revision:  rev,
		Platform:  platform,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Tag == "unknown" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Tag = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Revision == "" {
				info.Revision = s.Value
			}
		case "vcs.time":
			if info.Time == "" {
				info.Time = s.Value
			}
		}
	}
	for _, dep := range bi.Deps {
		info.Dependencies = append(info.Dependencies, dep.Path+"@"+dep.Version)
	}
	return info
}

// Short returns a pretty printed build and version summary.
func (b Info) Short() string {
	return fmt.Sprintf("stmtbind %s (%s, built %s, %s)", b.Tag, b.Platform, b.Time, b.GoVersion)
}

// TestingOverrideTag allows tests to override the build tag.
func TestingOverrideTag(t string) func() {
	prev := tag
	tag = t
	return func() { tag = prev }
}
