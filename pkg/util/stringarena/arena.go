// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package stringarena provides an arena for interning the identifiers of a
// statement. Strings handed out by the arena share a few large chunks of
// memory which are accounted against a memory budget.
package stringarena

import (
	"context"
	"unsafe"

	"github.com/cockroachdb/sqlbinder/pkg/sql/mon"
)

const (
	minChunkSize = 256
	maxChunkSize = 64 << 10
)

// Arena provides arena allocation of a string from a []byte, reducing
// allocation overhead and GC pressure significantly when a large number of
// smallish strings are being allocated. Strings returned from the arena are
// never mutated and stay valid until the arena is discarded.
type Arena struct {
	alloc []byte
	acc   *mon.BoundAccount
	size  int64
}

// Make creates a new Arena with the specified monitoring account. If acc is
// nil, memory monitoring will be disabled.
func Make(acc *mon.BoundAccount) Arena {
	return Arena{acc: acc}
}

// AllocBytes allocates a string in the arena with contents specified by b.
func (a *Arena) AllocBytes(ctx context.Context, b []byte) (string, error) {
	n := len(b)
	if n == 0 {
		return "", nil
	}
	if cap(a.alloc)-len(a.alloc) < n {
		if err := a.reserve(ctx, n); err != nil {
			return "", err
		}
	}

	pos := len(a.alloc)
	data := a.alloc[pos : pos+n : pos+n]
	a.alloc = a.alloc[:pos+n]

	copy(data, b)
	return unsafe.String(&data[0], n), nil
}

// AllocString is like AllocBytes for a string argument. It allows callers
// to intern identifiers that were produced as strings without a separate
// conversion.
func (a *Arena) AllocString(ctx context.Context, s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return a.AllocBytes(ctx, unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Size returns the number of bytes reserved by the arena.
func (a *Arena) Size() int64 {
	return a.size
}

// UnsafeReset forgets the arena's chunks and releases the reservation.
// Strings previously returned by the arena must no longer be in use.
func (a *Arena) UnsafeReset(ctx context.Context) {
	if a.acc != nil {
		a.acc.Shrink(ctx, a.size)
	}
	a.alloc = nil
	a.size = 0
}

func (a *Arena) reserve(ctx context.Context, size int) error {
	newSize := 2 * cap(a.alloc)
	if newSize == 0 {
		newSize = minChunkSize
	}
	if newSize > maxChunkSize {
		newSize = maxChunkSize
	}
	if newSize < size {
		newSize = size
	}
	if a.acc != nil {
		if err := a.acc.Grow(ctx, int64(newSize)); err != nil {
			return err
		}
	}
	a.alloc = make([]byte, 0, newSize)
	a.size += int64(newSize)
	return nil
}
