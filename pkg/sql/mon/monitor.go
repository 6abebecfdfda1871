// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package mon implements byte budgets for memory owned by SQL compilation
// structures. A MemoryMonitor enforces a limit shared by all the accounts
// opened against it; a BoundAccount tracks the bytes reserved by a single
// owner and returns them to the monitor when closed.
package mon

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
	"github.com/cockroachdb/sqlbinder/pkg/util/syncutil"
)

// MemoryMonitor tracks and limits the bytes reserved by the accounts
// opened against it.
type MemoryMonitor struct {
	name  string
	limit int64

	mu struct {
		syncutil.Mutex
		curAllocated int64
		maxAllocated int64
		numAccounts  int
	}
}

// NewMonitor creates a monitor with the given byte limit. A limit of zero
// or less means unlimited.
func NewMonitor(name string, limit int64) *MemoryMonitor {
	if limit <= 0 {
		limit = math.MaxInt64
	}
	return &MemoryMonitor{name: name, limit: limit}
}

// NewUnlimitedMonitor creates a monitor that never refuses a reservation.
func NewUnlimitedMonitor(name string) *MemoryMonitor {
	return NewMonitor(name, math.MaxInt64)
}

// Name returns the monitor's name.
func (mm *MemoryMonitor) Name() string { return mm.name }

// Limit returns the monitor's byte limit.
func (mm *MemoryMonitor) Limit() int64 { return mm.limit }

// AllocBytes returns the number of bytes currently reserved through the
// monitor.
func (mm *MemoryMonitor) AllocBytes() int64 {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return mm.mu.curAllocated
}

// MaximumBytes returns the high-water mark of the monitor.
func (mm *MemoryMonitor) MaximumBytes() int64 {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return mm.mu.maxAllocated
}

// NumAccounts returns the number of accounts that are still open.
func (mm *MemoryMonitor) NumAccounts() int {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return mm.mu.numAccounts
}

func (mm *MemoryMonitor) reserveBytes(ctx context.Context, x int64) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.mu.curAllocated > mm.limit-x {
		return errors.WithDetailf(
			newMemoryBudgetExceededError(x, mm.mu.curAllocated, mm.limit),
			"monitor: %s", mm.name)
	}
	mm.mu.curAllocated += x
	if mm.mu.curAllocated > mm.mu.maxAllocated {
		mm.mu.maxAllocated = mm.mu.curAllocated
	}
	if log.V(3) {
		log.Infof(ctx, "%s: now at %d bytes (+%d)", log.Safe(mm.name), mm.mu.curAllocated, x)
	}
	return nil
}

func (mm *MemoryMonitor) releaseBytes(ctx context.Context, sz int64) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.mu.curAllocated < sz {
		log.Errorf(ctx, "%s: no bytes to release, current %d, free %d",
			log.Safe(mm.name), mm.mu.curAllocated, sz)
		sz = mm.mu.curAllocated
	}
	mm.mu.curAllocated -= sz
	if log.V(3) {
		log.Infof(ctx, "%s: now at %d bytes (-%d)", log.Safe(mm.name), mm.mu.curAllocated, sz)
	}
}

// newMemoryBudgetExceededError creates an error to be returned when a
// reservation would exceed the monitor's limit.
func newMemoryBudgetExceededError(
	requestedBytes int64, reservedBytes int64, budgetBytes int64,
) error {
	return pgerror.Newf(pgcode.OutOfMemory,
		"memory budget exceeded: %d bytes requested, %d currently allocated, %d bytes in budget",
		errors.Safe(requestedBytes),
		errors.Safe(reservedBytes),
		errors.Safe(budgetBytes),
	)
}
