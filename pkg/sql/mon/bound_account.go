// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mon

import "context"

// BoundAccount tracks the bytes reserved by one owner against a specific
// monitor.
//
// A BoundAccount is not safe for concurrent use; it belongs to a single
// owner, e.g. the string arena of one statement.
type BoundAccount struct {
	used int64
	mon  *MemoryMonitor
}

// MakeStandaloneBudget creates a BoundAccount that is not attached to any
// monitor. It records usage but never refuses a reservation.
func MakeStandaloneBudget() BoundAccount {
	return BoundAccount{}
}

// MakeBoundAccount creates a BoundAccount connected to the given monitor.
func (mm *MemoryMonitor) MakeBoundAccount() BoundAccount {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.mu.numAccounts++
	return BoundAccount{mon: mm}
}

// Used returns the number of bytes currently reserved by the account.
func (b *BoundAccount) Used() int64 {
	if b == nil {
		return 0
	}
	return b.used
}

// Monitor returns the monitor the account is bound to, or nil for a
// standalone budget.
func (b *BoundAccount) Monitor() *MemoryMonitor {
	return b.mon
}

// Grow reserves x more bytes. On failure the account is unchanged.
func (b *BoundAccount) Grow(ctx context.Context, x int64) error {
	if b.mon != nil {
		if err := b.mon.reserveBytes(ctx, x); err != nil {
			return err
		}
	}
	b.used += x
	return nil
}

// Shrink releases part of the account's reservation.
func (b *BoundAccount) Shrink(ctx context.Context, delta int64) {
	if b.used < delta {
		delta = b.used
	}
	b.used -= delta
	if b.mon != nil {
		b.mon.releaseBytes(ctx, delta)
	}
}

// Clear releases all the bytes reserved by the account but keeps it open.
func (b *BoundAccount) Clear(ctx context.Context) {
	b.Shrink(ctx, b.used)
}

// Close releases all the bytes reserved by the account and detaches it from
// its monitor. Close is idempotent.
func (b *BoundAccount) Close(ctx context.Context) {
	if b.mon == nil {
		b.used = 0
		return
	}
	b.Clear(ctx)
	b.mon.mu.Lock()
	b.mon.mu.numAccounts--
	b.mon.mu.Unlock()
	b.mon = nil
}
