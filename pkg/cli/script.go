// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlbinder/pkg/sql/binder"
	"github.com/cockroachdb/sqlbinder/pkg/sql/mon"
	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/cat"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
	yaml "gopkg.in/yaml.v2"
)

// script is the YAML layout of a bind script. Each query lists the tables
// of its FROM clause, the columns it references, its projections and the
// ids of its WHERE predicates:
//
//	queries:
//	  - name: big_orders
//	    from:
//	      - table: orders
//	        alias: o
//	      - table: customers
//	    columns: [o.total]
//	    select:
//	      - column: name
//	      - alias: order_id
//	        column: o.id
//	    where: [1]
//	  - name: report
//	    from:
//	      - query: big_orders
//	        alias: b
//	    select:
//	      - column: b.order_id
//
// A FROM entry with a query field is a derived table selecting from an
// earlier query of the same script. Column references are "column" or
// "table.column".
type script struct {
	Queries []scriptQuery `yaml:"queries"`
}

type scriptQuery struct {
	Name    string         `yaml:"name"`
	From    []scriptTable  `yaml:"from"`
	Columns []string       `yaml:"columns"`
	Select  []scriptSelect `yaml:"select"`
	Where   []uint64       `yaml:"where"`
}

type scriptTable struct {
	Table string `yaml:"table"`
	Alias string `yaml:"alias"`
	Query string `yaml:"query"`
}

type scriptSelect struct {
	Alias  string `yaml:"alias"`
	Column string `yaml:"column"`
}

// scriptStats summarizes the binding of a script.
type scriptStats struct {
	queries   int
	peakBytes int64
}

func parseScript(data []byte) (*script, error) {
	var s script
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, errors.Wrap(err, "parsing script")
	}
	return &s, nil
}

// splitColumnRef splits "t.c" into column "c" and table "t".
func splitColumnRef(ref string) (column, table string) {
	if i := strings.LastIndexByte(ref, '.'); i >= 0 {
		return ref[i+1:], ref[:i]
	}
	return ref, ""
}

// bindScript binds the queries of s in order and writes each bound
// statement to out. Binding stops at the first error. All the statements
// of the script share one plan, whose memory is limited by maxMemory.
func bindScript(
	ctx context.Context,
	catalog cat.Catalog,
	s *script,
	maxMemory int64,
	redactable bool,
	out io.Writer,
) (scriptStats, error) {
	var stats scriptStats
	monitor := mon.NewMonitor("script", maxMemory)
	plan := binder.NewLogicalPlan(monitor)
	defer func() {
		stats.peakBytes = monitor.MaximumBytes()
		plan.Close(ctx)
	}()

	queryIDs := make(map[string]binder.QueryID, len(s.Queries))
	for i := range s.Queries {
		q := &s.Queries[i]
		name := q.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		stmt, err := bindQuery(ctx, catalog, plan, q, queryIDs)
		if err != nil {
			return stats, errors.Wrapf(err, "query %s", name)
		}
		if q.Name != "" {
			queryIDs[q.Name] = stmt.ID()
		}
		stats.queries++
		if redactable {
			fmt.Fprintln(out, redact.Sprint(stmt))
		} else {
			fmt.Fprintln(out, stmt.String())
		}
	}
	return stats, nil
}

func bindQuery(
	ctx context.Context,
	catalog cat.Catalog,
	plan *binder.LogicalPlan,
	q *scriptQuery,
	queryIDs map[string]binder.QueryID,
) (*binder.Statement, error) {
	stmt := plan.NewStatement(ctx)

	for _, from := range q.From {
		var err error
		switch {
		case from.Query != "":
			refID, ok := queryIDs[from.Query]
			if !ok {
				refID = binder.InvalidQueryID
			}
			name := from.Alias
			if name == "" {
				name = from.Query
			}
			_, err = stmt.AddTableItem(ctx, catalog, plan, binder.GeneratedTable, name, "", refID)
		case from.Alias != "":
			_, err = stmt.AddTableItem(ctx, catalog, plan, binder.AliasTable, from.Table, from.Alias, binder.InvalidQueryID)
		default:
			_, err = stmt.AddTableItem(ctx, catalog, plan, binder.BaseTable, from.Table, "", binder.InvalidQueryID)
		}
		if err != nil {
			return nil, err
		}
	}

	for _, ref := range q.Columns {
		column, table := splitColumnRef(ref)
		if _, err := stmt.AddColumnItem(ctx, catalog, plan, column, table); err != nil {
			return nil, err
		}
	}

	for i, sel := range q.Select {
		column, table := splitColumnRef(sel.Column)
		col, err := stmt.AddColumnItem(ctx, catalog, plan, column, table)
		if err != nil {
			return nil, err
		}
		alias := sel.Alias
		if alias == "" {
			alias = column
		}
		if err := stmt.AddSelectItem(ctx, alias, binder.ExprID(i+1), col.Type); err != nil {
			return nil, err
		}
	}

	for _, expr := range q.Where {
		if err := stmt.AddWhereExpr(binder.ExprID(expr)); err != nil {
			return nil, err
		}
	}

	stmt.Finish()
	log.VEventf(ctx, 1, "bound query %d with %d tables and %d columns",
		stmt.ID(), log.Safe(stmt.NumTables()), log.Safe(stmt.NumColumns()))
	return stmt, nil
}
