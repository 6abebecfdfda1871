// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mon

import (
	"context"
	"testing"

	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
	"github.com/stretchr/testify/require"
)

func TestMemoryMonitor(t *testing.T) {
	defer log.Scope(t).Close(t)
	ctx := context.Background()

	m := NewMonitor("test", 100)
	a1 := m.MakeBoundAccount()
	a2 := m.MakeBoundAccount()
	require.Equal(t, 2, m.NumAccounts())

	require.NoError(t, a1.Grow(ctx, 60))
	require.NoError(t, a2.Grow(ctx, 40))
	require.Equal(t, int64(100), m.AllocBytes())

	err := a2.Grow(ctx, 1)
	require.Error(t, err)
	require.Equal(t, pgcode.OutOfMemory, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "memory budget exceeded: 1 bytes requested, 100 currently allocated")
	require.Equal(t, int64(40), a2.Used())

	a1.Shrink(ctx, 20)
	require.Equal(t, int64(40), a1.Used())
	require.NoError(t, a2.Grow(ctx, 20))
	require.Equal(t, int64(100), m.MaximumBytes())

	a1.Close(ctx)
	a1.Close(ctx)
	require.Equal(t, int64(60), m.AllocBytes())
	require.Equal(t, 1, m.NumAccounts())

	a2.Close(ctx)
	require.Equal(t, int64(0), m.AllocBytes())
	require.Equal(t, 0, m.NumAccounts())
}

func TestStandaloneBudget(t *testing.T) {
	ctx := context.Background()
	b := MakeStandaloneBudget()
	require.NoError(t, b.Grow(ctx, 1<<40))
	require.Equal(t, int64(1<<40), b.Used())
	require.Nil(t, b.Monitor())
	b.Close(ctx)
	require.Equal(t, int64(0), b.Used())
}
