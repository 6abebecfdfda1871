// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package stringarena

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/sqlbinder/pkg/sql/mon"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgerror"
	"github.com/stretchr/testify/require"
)

func TestArena(t *testing.T) {
	ctx := context.Background()
	m := mon.NewUnlimitedMonitor("test")
	acc := m.MakeBoundAccount()
	a := Make(&acc)

	buf := []byte("orders")
	s, err := a.AllocBytes(ctx, buf)
	require.NoError(t, err)
	require.Equal(t, "orders", s)

	// The arena copies its input.
	buf[0] = 'b'
	require.Equal(t, "orders", s)

	empty, err := a.AllocString(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "", empty)

	var strs []string
	for i := 0; i < 100; i++ {
		s, err := a.AllocString(ctx, fmt.Sprintf("col_%d", i))
		require.NoError(t, err)
		strs = append(strs, s)
	}
	for i, s := range strs {
		require.Equal(t, fmt.Sprintf("col_%d", i), s)
	}
	require.Equal(t, a.Size(), acc.Used())
	require.Equal(t, a.Size(), m.AllocBytes())

	big, err := a.AllocString(ctx, strings.Repeat("x", maxChunkSize+1))
	require.NoError(t, err)
	require.Len(t, big, maxChunkSize+1)

	a.UnsafeReset(ctx)
	require.Equal(t, int64(0), acc.Used())
	require.Equal(t, int64(0), m.AllocBytes())
}

func TestArenaBudget(t *testing.T) {
	ctx := context.Background()
	m := mon.NewMonitor("test", minChunkSize)
	acc := m.MakeBoundAccount()
	a := Make(&acc)

	_, err := a.AllocString(ctx, "fits")
	require.NoError(t, err)

	_, err = a.AllocString(ctx, strings.Repeat("y", minChunkSize))
	require.Error(t, err)
	require.Equal(t, pgcode.OutOfMemory, pgerror.GetPGCode(err))

	// The arena is still usable for what fits in the current chunk.
	s, err := a.AllocString(ctx, "ok")
	require.NoError(t, err)
	require.Equal(t, "ok", s)
}

func BenchmarkStringArena(b *testing.B) {
	const count = 1024
	vals := make([][]byte, count)
	for i := range vals {
		vals[i] = []byte(fmt.Sprint(i))
	}

	b.Run("arena", func(b *testing.B) {
		a := Make(nil /* acc */)
		m := make([]string, count)

		for i := 0; i < b.N; i++ {
			j := i % count
			s, err := a.AllocBytes(context.Background(), vals[j])
			if err != nil {
				b.Fatal(err)
			}
			m[j] = s
		}
	})

	b.Run("noarena", func(b *testing.B) {
		m := make([]string, count)

		for i := 0; i < b.N; i++ {
			j := i % count
			m[j] = string(vals[j])
		}
	})
}
