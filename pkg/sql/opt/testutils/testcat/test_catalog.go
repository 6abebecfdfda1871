// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package testcat provides an in-memory implementation of cat.Catalog. It is
// used by binder tests and by the stmtbind tool, which loads it from YAML.
package testcat

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/cat"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlbinder/pkg/sql/types"
	"github.com/cockroachdb/sqlbinder/pkg/util/syncutil"
	"github.com/google/btree"
)

const (
	// firstTableID is the id given to the first table that is added without
	// an explicit id.
	firstTableID = 100

	// MaxTableID is the largest id a catalog table may have.
	MaxTableID = cat.MaxTableID

	// firstColumnID is the id of the first column of a table when no
	// explicit ids are given.
	firstColumnID = 1
)

// Catalog implements the cat.Catalog interface for testing purposes.
type Catalog struct {
	mu struct {
		syncutil.RWMutex
		// tables is ordered by table name.
		tables *btree.BTree
		byID   map[cat.StableID]*Table
		// counter is the id given to the next table without an explicit id.
		counter cat.StableID
	}
}

var _ cat.Catalog = &Catalog{}

// New creates a new empty instance of the test catalog.
func New() *Catalog {
	tc := &Catalog{}
	tc.mu.tables = btree.New(8 /* degree */)
	tc.mu.byID = make(map[cat.StableID]*Table)
	tc.mu.counter = firstTableID
	return tc
}

// ColumnDef describes a column to add to the catalog.
type ColumnDef struct {
	Name string `yaml:"name"`
	// Type is the SQL spelling of the column type, see types.TypeForName.
	Type string `yaml:"type"`
	// ID is optional; zero means "next id in ordinal order".
	ID cat.StableID `yaml:"id,omitempty"`
}

// TableDef describes a table to add to the catalog.
type TableDef struct {
	Name string `yaml:"name"`
	// ID is optional; zero means "next free id".
	ID      cat.StableID `yaml:"id,omitempty"`
	Columns []ColumnDef  `yaml:"columns"`
}

// Table implements the cat.DataSource interface for testing purposes.
type Table struct {
	TabID   cat.StableID
	TabName string
	Columns []cat.Column
}

var _ cat.DataSource = &Table{}
var _ btree.Item = &Table{}

// ID is part of the cat.DataSource interface.
func (tt *Table) ID() cat.StableID { return tt.TabID }

// Name is part of the cat.DataSource interface.
func (tt *Table) Name() string { return tt.TabName }

// ColumnCount is part of the cat.DataSource interface.
func (tt *Table) ColumnCount() int { return len(tt.Columns) }

// Column is part of the cat.DataSource interface.
func (tt *Table) Column(ord int) cat.Column { return tt.Columns[ord] }

// Less implements the btree.Item interface.
func (tt *Table) Less(than btree.Item) bool {
	return tt.TabName < than.(*Table).TabName
}

func (tt *Table) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "TABLE %s (id=%d)", tt.TabName, tt.TabID)
	for i, col := range tt.Columns {
		branch := "├──"
		if i == len(tt.Columns)-1 {
			branch = "└──"
		}
		fmt.Fprintf(&buf, "\n %s %s %s (id=%d)", branch, col.Name, col.Type.SQLString(), col.ID)
	}
	return buf.String()
}

// LookupTableID is part of the cat.Catalog interface.
func (tc *Catalog) LookupTableID(_ context.Context, name string) (cat.StableID, bool) {
	if tab := tc.Table(name); tab != nil {
		return tab.TabID, true
	}
	return 0, false
}

// LookupColumn is part of the cat.Catalog interface.
func (tc *Catalog) LookupColumn(
	_ context.Context, tableName, columnName string,
) (cat.Column, bool) {
	tab := tc.Table(tableName)
	if tab == nil {
		return cat.Column{}, false
	}
	return cat.FindColumn(tab, columnName)
}

// Table returns the table with the given name, or nil if there is none.
func (tc *Catalog) Table(name string) *Table {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	if item := tc.mu.tables.Get(&Table{TabName: name}); item != nil {
		return item.(*Table)
	}
	return nil
}

// TableByID returns the table with the given id, or nil if there is none.
func (tc *Catalog) TableByID(id cat.StableID) *Table {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.mu.byID[id]
}

// Tables returns all the tables in the catalog ordered by name.
func (tc *Catalog) Tables() []*Table {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	res := make([]*Table, 0, tc.mu.tables.Len())
	tc.mu.tables.Ascend(func(i btree.Item) bool {
		res = append(res, i.(*Table))
		return true
	})
	return res
}

// AddTable adds a table to the catalog.
func (tc *Catalog) AddTable(def TableDef) (*Table, error) {
	if def.Name == "" {
		return nil, pgerror.New(pgcode.InvalidName, "table name must not be empty")
	}
	tab := &Table{TabName: def.Name, Columns: make([]cat.Column, 0, len(def.Columns))}
	nextColID := cat.StableID(firstColumnID)
	seenNames := make(map[string]struct{}, len(def.Columns))
	seenIDs := make(map[cat.StableID]struct{}, len(def.Columns))
	for _, colDef := range def.Columns {
		if _, ok := seenNames[colDef.Name]; ok {
			return nil, pgerror.Newf(pgcode.DuplicateColumn,
				"column %q specified more than once in table %q", colDef.Name, def.Name)
		}
		seenNames[colDef.Name] = struct{}{}
		typ, ok := types.TypeForName(colDef.Type)
		if !ok {
			return nil, pgerror.Newf(pgcode.UndefinedObject,
				"type %q of column %q does not exist", colDef.Type, colDef.Name)
		}
		id := colDef.ID
		if id == 0 {
			id = nextColID
		}
		if _, ok := seenIDs[id]; ok {
			return nil, errors.Newf("duplicate column id %d in table %q", id, def.Name)
		}
		seenIDs[id] = struct{}{}
		nextColID = id + 1
		tab.Columns = append(tab.Columns, cat.Column{ID: id, Name: colDef.Name, Type: typ})
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.mu.tables.Has(tab) {
		return nil, pgerror.Newf(pgcode.DuplicateTable, "relation %q already exists", def.Name)
	}
	tab.TabID = def.ID
	if tab.TabID == 0 {
		for {
			tab.TabID = tc.mu.counter
			tc.mu.counter++
			if _, ok := tc.mu.byID[tab.TabID]; !ok {
				break
			}
		}
	}
	if tab.TabID > MaxTableID {
		return nil, errors.Newf("table id %d of %q is above the maximum catalog id %d",
			tab.TabID, def.Name, MaxTableID)
	}
	if other, ok := tc.mu.byID[tab.TabID]; ok {
		return nil, errors.Newf("table id %d of %q is already used by %q",
			tab.TabID, def.Name, other.TabName)
	}
	tc.mu.tables.ReplaceOrInsert(tab)
	tc.mu.byID[tab.TabID] = tab
	return tab, nil
}

// MustAddTable is like AddTable but panics on error. The columns are given
// as "name type" pairs.
func (tc *Catalog) MustAddTable(name string, cols ...string) *Table {
	def := TableDef{Name: name}
	for _, c := range cols {
		fields := strings.Fields(c)
		if len(fields) != 2 {
			panic(errors.AssertionFailedf("invalid column definition %q", c))
		}
		def.Columns = append(def.Columns, ColumnDef{Name: fields[0], Type: fields[1]})
	}
	tab, err := tc.AddTable(def)
	if err != nil {
		panic(err)
	}
	return tab
}

// String lists the catalog tables in name order.
func (tc *Catalog) String() string {
	var buf strings.Builder
	for i, tab := range tc.Tables() {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(tab.String())
	}
	return buf.String()
}
