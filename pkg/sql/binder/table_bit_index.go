// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlbinder/pkg/util"
)

// tableBitIndex maps the table ids of a statement to dense indexes so that
// sets of tables can be represented as bitmaps. Index 0 belongs to
// InvalidTableID; real tables are numbered from 1 in registration order.
// Indexes are never reassigned.
type tableBitIndex struct {
	byID map[TableID]int
	ids  []TableID
}

func makeTableBitIndex() tableBitIndex {
	var b tableBitIndex
	b.reserveSentinel()
	return b
}

func (b *tableBitIndex) reserveSentinel() {
	b.byID = map[TableID]int{InvalidTableID: 0}
	b.ids = []TableID{InvalidTableID}
}

// assign gives the next free index to id.
func (b *tableBitIndex) assign(id TableID) (int, error) {
	if idx, ok := b.byID[id]; ok {
		return 0, errors.AssertionFailedf("table %d already has bit index %d", id, idx)
	}
	idx := len(b.ids)
	b.byID[id] = idx
	b.ids = append(b.ids, id)
	return idx, nil
}

func (b *tableBitIndex) lookup(id TableID) (int, bool) {
	idx, ok := b.byID[id]
	return idx, ok
}

// tableID is the inverse of lookup.
func (b *tableBitIndex) tableID(idx int) (TableID, bool) {
	if idx < 0 || idx >= len(b.ids) {
		return InvalidTableID, false
	}
	return b.ids[idx], true
}

// len includes the sentinel.
func (b *tableBitIndex) len() int {
	return len(b.ids)
}

// TableBitIndex returns the bit index of the given table, or -1 if the table
// is not registered in the statement. InvalidTableID always has index 0.
func (s *Statement) TableBitIndex(id TableID) int {
	if idx, ok := s.bitIndex.lookup(id); ok {
		return idx
	}
	return -1
}

// TableSet returns the set of bit indexes of the given tables.
func (s *Statement) TableSet(ids ...TableID) (util.FastIntSet, error) {
	var set util.FastIntSet
	for _, id := range ids {
		idx, ok := s.bitIndex.lookup(id)
		if !ok || idx == 0 {
			return util.FastIntSet{}, errors.AssertionFailedf(
				"table %d is not registered in query %d", id, s.id)
		}
		set.Add(idx)
	}
	return set, nil
}

// TableIDs returns the ids of the tables in the given set of bit indexes,
// in index order.
func (s *Statement) TableIDs(set util.FastIntSet) ([]TableID, error) {
	res := make([]TableID, 0, set.Len())
	var err error
	set.ForEach(func(idx int) {
		if err != nil {
			return
		}
		id, ok := s.bitIndex.tableID(idx)
		if !ok || idx == 0 {
			err = errors.AssertionFailedf("bit index %d is not assigned in query %d", idx, s.id)
			return
		}
		res = append(res, id)
	})
	return res, err
}
