// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/cockroachdb/sqlbinder/pkg/sql/mon"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
	"github.com/cockroachdb/sqlbinder/pkg/util/syncutil"
)

// LogicalPlan is a PlanContext that owns the statements of one plan. It
// generates table ids above the catalog id space and accounts the memory of
// its statements against a shared monitor.
//
// LogicalPlan is safe for concurrent use, so that independent statements of
// a plan can be bound in parallel.
type LogicalPlan struct {
	monitor *mon.MemoryMonitor

	// nextTableID and nextQueryID are accessed atomically.
	nextTableID uint64
	nextQueryID uint64

	mu struct {
		syncutil.RWMutex
		queries map[QueryID]*Statement
	}
}

var _ PlanContext = &LogicalPlan{}

// NewLogicalPlan creates an empty plan. A nil monitor means the memory of
// the plan is not limited.
func NewLogicalPlan(monitor *mon.MemoryMonitor) *LogicalPlan {
	if monitor == nil {
		monitor = mon.NewUnlimitedMonitor("plan")
	}
	p := &LogicalPlan{
		monitor:     monitor,
		nextTableID: uint64(MinGeneratedTableID),
		nextQueryID: 1,
	}
	p.mu.queries = make(map[QueryID]*Statement)
	return p
}

// GenerateTableID is part of the TableIDGenerator interface.
func (p *LogicalPlan) GenerateTableID() TableID {
	return TableID(atomic.AddUint64(&p.nextTableID, 1) - 1)
}

// NewStatement creates a statement with a fresh query id and registers it
// in the plan. The statement can be found through Query right away, but it
// cannot be selected from until it is finished.
func (p *LogicalPlan) NewStatement(ctx context.Context) *Statement {
	id := QueryID(atomic.AddUint64(&p.nextQueryID, 1) - 1)
	s := NewStatement(id, p.monitor.MakeBoundAccount())
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mu.queries[id] = s
	log.VEventf(ctx, 2, "new query %d", id)
	return s
}

// Query is part of the QueryLookup interface.
func (p *LogicalPlan) Query(id QueryID) (*Statement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.mu.queries[id]
	return s, ok
}

// Queries returns the statements of the plan ordered by id.
func (p *LogicalPlan) Queries() []*Statement {
	p.mu.RLock()
	defer p.mu.RUnlock()
	res := make([]*Statement, 0, len(p.mu.queries))
	for _, s := range p.mu.queries {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].id < res[j].id })
	return res
}

// Monitor returns the memory monitor of the plan.
func (p *LogicalPlan) Monitor() *mon.MemoryMonitor {
	return p.monitor
}

// Close releases the memory of all the statements of the plan.
func (p *LogicalPlan) Close(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, s := range p.mu.queries {
		s.Close(ctx)
		delete(p.mu.queries, id)
	}
}
