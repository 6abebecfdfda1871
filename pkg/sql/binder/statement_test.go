// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlbinder/pkg/sql/mon"
	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/cat"
	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/testutils/testcat"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlbinder/pkg/sql/types"
	"github.com/cockroachdb/sqlbinder/pkg/util"
	"github.com/cockroachdb/sqlbinder/pkg/util/leaktest"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
	"github.com/cockroachdb/sqlbinder/pkg/util/randutil"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestCatalog(numTables int) *testcat.Catalog {
	tc := testcat.New()
	for i := 0; i < numTables; i++ {
		tc.MustAddTable(fmt.Sprintf("t%d", i), "a int", fmt.Sprintf("c%d string", i))
	}
	return tc
}

func TestMissingCollaborators(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := newTestCatalog(1)
	plan := NewLogicalPlan(nil /* monitor */)
	defer plan.Close(ctx)
	stmt := plan.NewStatement(ctx)

	_, err := stmt.AddTableItem(ctx, nil /* catalog */, nil /* plan */, BaseTable, "t0", "", InvalidQueryID)
	require.Equal(t, PlanContextMissing, ErrorKind(err))
	require.True(t, errors.Is(err, ErrPlanContextMissing))
	require.Equal(t, pgcode.Internal, pgerror.GetPGCode(err))

	_, err = stmt.AddTableItem(ctx, nil /* catalog */, plan, BaseTable, "t0", "", InvalidQueryID)
	require.Equal(t, SchemaUnavailable, ErrorKind(err))

	_, err = stmt.AddColumnItem(ctx, tc, nil /* plan */, "a", "")
	require.Equal(t, PlanContextMissing, ErrorKind(err))

	_, err = stmt.AddColumnItem(ctx, nil /* catalog */, plan, "a", "")
	require.Equal(t, SchemaUnavailable, ErrorKind(err))

	require.Zero(t, stmt.NumTables())
	require.Zero(t, stmt.NumColumns())
}

func TestUnknownTableType(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := newTestCatalog(1)
	plan := NewLogicalPlan(nil /* monitor */)
	defer plan.Close(ctx)
	stmt := plan.NewStatement(ctx)

	_, err := stmt.AddTableItem(ctx, tc, plan, TableType(7), "t0", "", InvalidQueryID)
	require.Equal(t, InternalInconsistency, ErrorKind(err))
	require.Equal(t, pgcode.Internal, pgerror.GetPGCode(err))

	_, _, err = checkTableColumn(ctx, tc, plan, &TableItem{TableName: "t0", Type: TableType(7)}, "a")
	require.Equal(t, InternalInconsistency, ErrorKind(err))
}

func TestAliasTableWithoutAlias(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := newTestCatalog(1)
	plan := NewLogicalPlan(nil /* monitor */)
	defer plan.Close(ctx)
	stmt := plan.NewStatement(ctx)

	_, err := stmt.AddTableItem(ctx, tc, plan, AliasTable, "t0", "", InvalidQueryID)
	require.Equal(t, InternalInconsistency, ErrorKind(err))
	require.Contains(t, err.Error(), "empty alias")
	require.Zero(t, stmt.NumTables())
	require.Equal(t, MinGeneratedTableID, plan.GenerateTableID())
}

func TestErrorKind(t *testing.T) {
	require.Equal(t, NoError, ErrorKind(nil))
	require.Equal(t, Unclassified, ErrorKind(errors.New("boom")))
	require.Equal(t, UnknownColumn, ErrorKind(errors.Wrap(newUnknownColumnError("x"), "resolving")))
	require.Equal(t, "AmbiguousTable", AmbiguousTable.String())
	require.Equal(t, "Unclassified", Kind(99).String())
}

// TestTableRegistration registers random mixes of unaliased and aliased
// tables and checks that every name and alias resolves to its table and
// that bit indexes are dense.
func TestTableRegistration(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	rng := randutil.NewTestRand(t)
	const numTables = 10
	tc := newTestCatalog(numTables)

	for iter := 0; iter < 20; iter++ {
		plan := NewLogicalPlan(nil /* monitor */)
		stmt := plan.NewStatement(ctx)

		// Tables t0..t(numBase-1) are added unaliased, the others any number
		// of times under distinct aliases.
		numBase := rng.Intn(numTables)
		byName := make(map[string]TableID)
		var ids []TableID
		for i := 0; i < numBase; i++ {
			name := fmt.Sprintf("t%d", i)
			id, err := stmt.AddTableItem(ctx, tc, plan, BaseTable, name, "", InvalidQueryID)
			require.NoError(t, err)
			require.Equal(t, TableID(100+i), id)
			byName[name] = id
			ids = append(ids, id)
		}
		if numBase < numTables {
			for i, n := 0, rng.Intn(10); i < n; i++ {
				name := fmt.Sprintf("t%d", numBase+rng.Intn(numTables-numBase))
				alias := fmt.Sprintf("a%d", i)
				id, err := stmt.AddTableItem(ctx, tc, plan, AliasTable, name, alias, InvalidQueryID)
				require.NoError(t, err)
				require.GreaterOrEqual(t, id, MinGeneratedTableID)
				byName[alias] = id
				ids = append(ids, id)
			}
		}

		require.Equal(t, len(ids), stmt.NumTables())
		for name, id := range byName {
			require.Equal(t, id, stmt.TableIDByName(name), name)
			item, ok := stmt.TableItemByID(id)
			require.True(t, ok)
			require.Equal(t, name, item.Name())
		}

		require.Equal(t, 0, stmt.TableBitIndex(InvalidTableID))
		var bits util.FastIntSet
		for i, id := range ids {
			bit := stmt.TableBitIndex(id)
			require.Equal(t, i+1, bit)
			// Lookups are pure.
			require.Equal(t, bit, stmt.TableBitIndex(id))
			bits.Add(bit)
		}
		if len(ids) > 0 {
			expected := util.FastIntSet{}
			expected.AddRange(1, len(ids))
			require.True(t, expected.Equals(bits), "%s != %s", expected, bits)
		}
		plan.Close(ctx)
	}
}

func TestTableSet(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := newTestCatalog(3)
	plan := NewLogicalPlan(nil /* monitor */)
	defer plan.Close(ctx)
	stmt := plan.NewStatement(ctx)

	var ids []TableID
	for i := 0; i < 3; i++ {
		id, err := stmt.AddTableItem(ctx, tc, plan, BaseTable, fmt.Sprintf("t%d", i), "", InvalidQueryID)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	set, err := stmt.TableSet(ids[0], ids[2])
	require.NoError(t, err)
	require.Equal(t, "(1,3)", set.String())

	back, err := stmt.TableIDs(set)
	require.NoError(t, err)
	require.Equal(t, []TableID{ids[0], ids[2]}, back)

	_, err = stmt.TableSet(ids[1], 42)
	require.True(t, errors.HasAssertionFailure(err))
	_, err = stmt.TableSet(InvalidTableID)
	require.True(t, errors.HasAssertionFailure(err))
	_, err = stmt.TableIDs(util.MakeFastIntSet(0))
	require.True(t, errors.HasAssertionFailure(err))
}

func TestStablePointers(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := newTestCatalog(1)
	plan := NewLogicalPlan(nil /* monitor */)
	defer plan.Close(ctx)
	stmt := plan.NewStatement(ctx)

	_, err := stmt.AddTableItem(ctx, tc, plan, BaseTable, "t0", "", InvalidQueryID)
	require.NoError(t, err)
	table := stmt.TableItem(0)

	first, err := stmt.AddColumnItem(ctx, tc, plan, "a", "t0")
	require.NoError(t, err)
	for i := 0; i < 5*stableListChunkSize; i++ {
		_, err := stmt.AddColumnItem(ctx, tc, plan, "c0", "t0")
		require.NoError(t, err)
	}
	require.Same(t, first, stmt.ColumnItem(0))
	require.Same(t, table, stmt.TableItem(0))

	// The merge returns the entry added first and updates it in place.
	merged, err := stmt.AddColumnItem(ctx, tc, plan, "a", "")
	require.NoError(t, err)
	require.Same(t, first, merged)
	require.True(t, first.IsNameUnique)
	require.Equal(t, 1+5*stableListChunkSize, stmt.NumColumns())

	expected := ColumnItem{
		ColumnName: "a", TableID: 100, ColumnID: 1, Type: types.Int, IsNameUnique: true,
	}
	if diff := pretty.Diff(expected, *merged); len(diff) > 0 {
		t.Fatalf("unexpected column item:\n%s", diff)
	}
}

func TestAllocationFailed(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := newTestCatalog(1)
	monitor := mon.NewMonitor("test", 100 /* limit */)
	plan := NewLogicalPlan(monitor)
	defer plan.Close(ctx)
	stmt := plan.NewStatement(ctx)

	_, err := stmt.AddTableItem(ctx, tc, plan, BaseTable, "t0", "", InvalidQueryID)
	require.Equal(t, AllocationFailed, ErrorKind(err))
	require.Equal(t, pgcode.OutOfMemory, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "interning table name")

	// Nothing was registered.
	require.Zero(t, stmt.NumTables())
	require.Equal(t, -1, stmt.TableBitIndex(100))
	require.Equal(t, InvalidTableID, stmt.TableIDByName("t0"))
	require.Zero(t, monitor.AllocBytes())
}

// TestAllocationFailedAlias checks that a table name which would fit in the
// budget is not left charged when its alias does not fit.
func TestAllocationFailedAlias(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := newTestCatalog(1)
	monitor := mon.NewMonitor("test", 1000 /* limit */)
	plan := NewLogicalPlan(monitor)
	defer plan.Close(ctx)
	stmt := plan.NewStatement(ctx)

	alias := strings.Repeat("x", 2000)
	_, err := stmt.AddTableItem(ctx, tc, plan, AliasTable, "t0", alias, InvalidQueryID)
	require.Equal(t, AllocationFailed, ErrorKind(err))
	require.Zero(t, stmt.NumTables())
	require.Zero(t, stmt.MemoryUsage())
	require.Zero(t, monitor.AllocBytes())

	// The failed add did not consume a generated id either.
	id, err := stmt.AddTableItem(ctx, tc, plan, AliasTable, "t0", "x", InvalidQueryID)
	require.NoError(t, err)
	require.Equal(t, MinGeneratedTableID, id)
}

func TestMemoryAccounting(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := newTestCatalog(1)
	monitor := mon.NewUnlimitedMonitor("test")
	plan := NewLogicalPlan(monitor)
	stmt := plan.NewStatement(ctx)

	_, err := stmt.AddTableItem(ctx, tc, plan, AliasTable, "t0", "x", InvalidQueryID)
	require.NoError(t, err)
	require.Positive(t, stmt.MemoryUsage())
	require.Equal(t, stmt.MemoryUsage(), monitor.AllocBytes())

	plan.Close(ctx)
	require.Zero(t, monitor.AllocBytes())
	require.Zero(t, monitor.NumAccounts())
	_, ok := plan.Query(stmt.ID())
	require.False(t, ok)
}

func TestRedactableFormat(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := newTestCatalog(1)
	plan := NewLogicalPlan(nil /* monitor */)
	defer plan.Close(ctx)
	stmt := plan.NewStatement(ctx)

	_, err := stmt.AddTableItem(ctx, tc, plan, AliasTable, "t0", "secret", InvalidQueryID)
	require.NoError(t, err)
	_, err = stmt.AddColumnItem(ctx, tc, plan, "a", "secret")
	require.NoError(t, err)

	s := redact.Sprint(stmt)
	require.Contains(t, string(s), "‹t0› AS ‹secret›")
	require.NotContains(t, string(s.Redact()), "secret")
	require.Equal(t, stmt.String(), s.StripMarkers())
	require.Equal(t, `query 1
  tables:
    0: t0 AS secret id=65536 ref=100 type=alias bit=1
  columns:
    0: a id=1 type=int8 table=65536`, stmt.String())
}

// TestConcurrentDerivedTables binds several statements in parallel, all of
// them selecting from the same finished statement.
func TestConcurrentDerivedTables(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)
	ctx := context.Background()
	tc := newTestCatalog(4)
	plan := NewLogicalPlan(nil /* monitor */)
	defer plan.Close(ctx)

	nested := plan.NewStatement(ctx)
	_, err := nested.AddTableItem(ctx, tc, plan, BaseTable, "t0", "", InvalidQueryID)
	require.NoError(t, err)
	require.NoError(t, nested.AddSelectItem(ctx, "x", 1, types.Int))
	require.NoError(t, nested.AddSelectItem(ctx, "y", 2, types.String))
	nested.Finish()

	const numWorkers = 8
	stmts := make([]*Statement, numWorkers)
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		i := i
		g.Go(func() error {
			stmt := plan.NewStatement(gCtx)
			stmts[i] = stmt
			if _, err := stmt.AddTableItem(gCtx, tc, plan, GeneratedTable, "d", "", nested.ID()); err != nil {
				return err
			}
			table := fmt.Sprintf("t%d", 1+i%3)
			if _, err := stmt.AddTableItem(gCtx, tc, plan, BaseTable, table, "", InvalidQueryID); err != nil {
				return err
			}
			if _, err := stmt.AddColumnItem(gCtx, tc, plan, "y", ""); err != nil {
				return err
			}
			if _, err := stmt.AddColumnItem(gCtx, tc, plan, "x", "d"); err != nil {
				return err
			}
			stmt.Finish()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[TableID]bool)
	for _, stmt := range stmts {
		require.True(t, stmt.Finished())
		d := stmt.TableItem(0)
		require.False(t, seen[d.TableID], "table id %d generated twice", d.TableID)
		seen[d.TableID] = true

		y, ok := stmt.ColumnItemByName("y", "")
		require.True(t, ok)
		require.Equal(t, DerivedColumnIDBase+1, y.ColumnID)
		require.Equal(t, types.String, y.Type)
		x, ok := stmt.ColumnItemByID(d.TableID, DerivedColumnIDBase)
		require.True(t, ok)
		require.Equal(t, "x", x.ColumnName)
	}
	require.Len(t, plan.Queries(), numWorkers+1)
}

func TestCatalogStableIDs(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	tc := testcat.New()
	_, err := tc.AddTable(testcat.TableDef{
		Name: "big", ID: testcat.MaxTableID,
		Columns: []testcat.ColumnDef{{Name: "k", Type: "int", ID: 200}},
	})
	require.NoError(t, err)
	require.Less(t, TableID(testcat.MaxTableID), MinGeneratedTableID)

	plan := NewLogicalPlan(nil /* monitor */)
	defer plan.Close(ctx)
	stmt := plan.NewStatement(ctx)
	id, err := stmt.AddTableItem(ctx, tc, plan, BaseTable, "big", "", InvalidQueryID)
	require.NoError(t, err)
	require.Equal(t, TableID(testcat.MaxTableID), id)
	col, err := stmt.AddColumnItem(ctx, tc, plan, "k", "")
	require.NoError(t, err)
	require.Equal(t, ColumnID(200), col.ColumnID)

	var _ cat.Catalog = tc
}

// fixedCatalog is a catalog of tables with arbitrary ids and no columns.
type fixedCatalog map[string]cat.StableID

func (c fixedCatalog) LookupTableID(_ context.Context, name string) (cat.StableID, bool) {
	id, ok := c[name]
	return id, ok
}

func (c fixedCatalog) LookupColumn(context.Context, string, string) (cat.Column, bool) {
	return cat.Column{}, false
}

// TestCatalogIDAboveLimit checks that table ids a catalog returns above
// cat.MaxTableID are rejected, so they can never be confused with the ids
// generated for aliased and derived tables.
func TestCatalogIDAboveLimit(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()
	catalog := fixedCatalog{
		"small":   100,
		"big":     cat.StableID(MinGeneratedTableID),
		"invalid": cat.StableID(InvalidTableID),
	}
	plan := NewLogicalPlan(nil /* monitor */)
	defer plan.Close(ctx)

	q1 := plan.NewStatement(ctx)
	x, err := q1.AddTableItem(ctx, catalog, plan, AliasTable, "small", "x", InvalidQueryID)
	require.NoError(t, err)
	require.Equal(t, MinGeneratedTableID, x)

	for _, name := range []string{"big", "invalid"} {
		_, err = q1.AddTableItem(ctx, catalog, plan, BaseTable, name, "", InvalidQueryID)
		require.Equal(t, InternalInconsistency, ErrorKind(err), "%s", name)
		require.Contains(t, err.Error(), "above the maximum catalog table id")

		_, err = q1.AddTableItem(ctx, catalog, plan, AliasTable, name, "y", InvalidQueryID)
		require.Equal(t, InternalInconsistency, ErrorKind(err), "%s", name)
	}
	require.Equal(t, 1, q1.NumTables())

	// Another statement of the plan cannot reuse the id of x either.
	q2 := plan.NewStatement(ctx)
	_, err = q2.AddTableItem(ctx, catalog, plan, BaseTable, "big", "", InvalidQueryID)
	require.Equal(t, InternalInconsistency, ErrorKind(err))
	require.Zero(t, q2.NumTables())
	require.Equal(t, MinGeneratedTableID+1, plan.GenerateTableID())
}
