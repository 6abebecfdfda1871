// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import "github.com/cockroachdb/redact"

// SafeFormat implements the redact.SafeFormatter interface. Identifiers
// chosen by the user are redactable; ids, types and keywords are not.
//
// The output lists the tables, columns, WHERE predicates and projections of
// the statement:
//
//	query 2
//	  tables:
//	    0: t1 id=100 ref=100 type=base bit=1
//	    1: t2 AS x id=65536 ref=101 type=alias bit=2
//	  columns:
//	    0: a id=1 type=int8 table=100 unique
//	  where: 7 9
//	  select:
//	    0: a expr=3 type=int8
//
// Empty sections are omitted.
func (s *Statement) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("query %d", s.id)

	if n := s.tables.len(); n > 0 {
		w.SafeString("\n  tables:")
		for i := 0; i < n; i++ {
			t := s.tables.get(i)
			w.Printf("\n    %d: %s", redact.Safe(i), t.TableName)
			if t.AliasName != "" {
				w.Printf(" AS %s", t.AliasName)
			}
			w.Printf(" id=%d ref=%d type=%s bit=%d",
				t.TableID, redact.Safe(t.RefID), t.Type, redact.Safe(s.TableBitIndex(t.TableID)))
		}
	}

	if n := s.columns.len(); n > 0 {
		w.SafeString("\n  columns:")
		for i := 0; i < n; i++ {
			c := s.columns.get(i)
			w.Printf("\n    %d: %s id=%d type=%s table=%d",
				redact.Safe(i), c.ColumnName, c.ColumnID, redact.Safe(c.Type.SQLString()), c.TableID)
			if c.IsNameUnique {
				w.SafeString(" unique")
			}
		}
	}

	if len(s.where) > 0 {
		w.SafeString("\n  where:")
		for _, e := range s.where {
			w.Printf(" %d", e)
		}
	}

	if len(s.selects) > 0 {
		w.SafeString("\n  select:")
		for i := range s.selects {
			sel := &s.selects[i]
			w.Printf("\n    %d: %s expr=%d type=%s",
				redact.Safe(i), sel.Alias, sel.Expr, redact.Safe(sel.Type.SQLString()))
		}
	}
}

func (s *Statement) String() string {
	return redact.StringWithoutMarkers(s)
}
