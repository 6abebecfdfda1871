// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package leaktest detects goroutines that outlive the test that started
// them.
//
// Usage:
//
//	func TestFoo(t *testing.T) {
//		defer leaktest.AfterTest(t)()
//		...
//	}
package leaktest

import (
	"runtime"
	"sort"
	"strings"
	"time"
)

// interestingGoroutines returns all goroutines we care about for the purpose
// of leak checking, keyed by goroutine id. It excludes testing or runtime
// ones.
func interestingGoroutines() map[int64]string {
	buf := make([]byte, 2<<20)
	buf = buf[:runtime.Stack(buf, true)]
	gs := make(map[int64]string)
	for _, g := range strings.Split(string(buf), "\n\n") {
		sl := strings.SplitN(g, "\n", 2)
		if len(sl) != 2 {
			continue
		}
		stack := strings.TrimSpace(sl[1])
		if stack == "" ||
			strings.Contains(stack, "testing.(*T).Run") ||
			strings.Contains(stack, "testing.tRunner") ||
			strings.Contains(stack, "testing.Main(") ||
			strings.Contains(stack, "testing.(*M).") ||
			strings.Contains(stack, "interestingGoroutines") ||
			strings.Contains(stack, "runtime.MHeap_Scavenger") ||
			strings.Contains(stack, "signal.signal_recv") ||
			strings.Contains(stack, "sigterm.handler") ||
			strings.Contains(stack, "runtime_mcall") ||
			strings.Contains(stack, "goroutine in C code") {
			continue
		}
		var id int64
		for _, c := range strings.TrimPrefix(sl[0], "goroutine ") {
			if c < '0' || c > '9' {
				break
			}
			id = id*10 + int64(c-'0')
		}
		gs[id] = g
	}
	return gs
}

// T is the subset of testing.TB used by AfterTest.
type T interface {
	Errorf(format string, args ...interface{})
	Failed() bool
}

// AfterTest snapshots the currently-running goroutines and returns a
// function to be run at the end of tests to see whether any goroutines
// leaked. Goroutines get a few seconds to wind down before they are
// reported.
func AfterTest(t T) func() {
	orig := interestingGoroutines()
	return func() {
		// If there was a panic or an error, the leak report would only be
		// noise.
		if r := recover(); r != nil {
			panic(r)
		}
		if t.Failed() {
			return
		}

		deadline := time.Now().Add(5 * time.Second)
		for {
			var leaked []string
			for id, stack := range interestingGoroutines() {
				if _, ok := orig[id]; !ok {
					leaked = append(leaked, stack)
				}
			}
			if len(leaked) == 0 {
				return
			}
			if time.Now().After(deadline) {
				sort.Strings(leaked)
				for _, g := range leaked {
					t.Errorf("Leaked goroutine: %v", g)
				}
				return
			}
			time.Sleep(50 * time.Millisecond)
		}
	}
}
