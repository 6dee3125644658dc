/*
 * Copyright 2022 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package localgraph computes, for every read of a local variable in a
// function, the exact set of writes whose values may reach that read —
// the reaching-definitions graph the dead-store-elimination framework and
// the local-subtyping pass both build equivalence reasoning on top of.
package localgraph

import (
	"github.com/binaryen-go/localdse/cfgwalk"
	"github.com/binaryen-go/localdse/ir"
)

// Locations maps a local-read or local-write expression to the handle
// that lets a rewriter substitute it in place.
type Locations map[ir.Expr]ir.Slot

// LocalGraph is the reaching-definitions graph for one function, plus the
// optional influence maps and SSA classification computed on demand.
type LocalGraph struct {
	fn   *ir.Function
	cfg  *cfgwalk.CFG

	getSetses map[*ir.LocalGet]writeSet
	locations Locations

	writesOf map[int][]*ir.LocalSet
	getsOf   map[int][]*ir.LocalGet

	getInfluences map[*ir.LocalGet][]Write
	setInfluences map[Write][]*ir.LocalGet

	ssaComputed bool
	ssa         map[int]bool
}

// state is the per-local-index reaching-write-set vector flowing through
// the CFG. An empty entry means no write of that index reaches this point
// yet; it occurs only in the join accumulator before any predecessor's
// exit state has been unioned in.
type state []writeSet

// seedState is the state at the function's entry point: every index maps
// to {entry-sentinel}.
func seedState(n int) state {
	s := make(state, n)
	for i := range s {
		s[i] = singleton(entryWrite(i))
	}
	return s
}

// emptyState is the join accumulator's identity element: no writes of any
// index reach yet, before any predecessor's exit state is unioned in.
func emptyState(n int) state {
	return make(state, n)
}

func (s state) clone() state {
	return append(state{}, s...)
}

// unionInto unions o into s in place, reporting whether s changed.
func (s state) unionInto(o state) bool {
	changed := false
	for i := range s {
		var grew bool
		s[i], grew = s[i].union(o[i])
		changed = changed || grew
	}
	return changed
}

func (s state) equal(o state) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].equal(o[i]) {
			return false
		}
	}
	return true
}

// Build runs the forward reaching-definitions flow over cfg and returns
// the resulting graph for fn. Two passes are used: a block-granularity
// fixed-point over entry/exit state vectors, followed by one detailed
// replay per block, against the now-stable entry state, that records
// each read's exact reaching-write set and each read/write's
// substitution handle.
func Build(fn *ir.Function, cfg *cfgwalk.CFG) *LocalGraph {
	g := &LocalGraph{
		fn:        fn,
		cfg:       cfg,
		getSetses: map[*ir.LocalGet]writeSet{},
		locations: Locations{},
		writesOf:  map[int][]*ir.LocalSet{},
		getsOf:    map[int][]*ir.LocalGet{},
	}

	n := fn.NumLocals()
	entryState := make(map[int]state, len(cfg.Blocks))
	exitState := make(map[int]state, len(cfg.Blocks))
	visited := make(map[int]bool, len(cfg.Blocks))

	worklist := newBlockWorklist(cfg)
	worklist.push(cfg.Entry)

	for {
		bb, ok := worklist.pop()
		if !ok {
			break
		}

		joined := g.join(bb, cfg, exitState, n)
		if visited[bb.ID] && entryState[bb.ID].equal(joined) {
			continue
		}

		visited[bb.ID] = true
		entryState[bb.ID] = joined
		exitState[bb.ID] = transfer(joined.clone(), bb)

		for _, succ := range bb.Succ {
			worklist.push(succ)
		}
	}

	for _, bb := range cfg.Blocks {
		s, ok := entryState[bb.ID]
		if !ok {
			// unreachable from Entry: conservatively treat as if the
			// entry value may still reach every read here.
			s = seedState(n)
		}
		g.replay(s.clone(), bb)
	}

	return g
}

// join computes the entry state for bb: the function's all-entry-sentinel
// vector for the entry block, or the pointwise union of every visited
// predecessor's exit state otherwise. An unvisited predecessor contributes
// nothing yet; the worklist guarantees bb will be revisited once that
// predecessor's exit state exists. A block with no predecessors at all
// (unreachable from Entry) is seeded the same conservative way as Entry.
func (g *LocalGraph) join(bb *cfgwalk.BasicBlock, cfg *cfgwalk.CFG, exitState map[int]state, n int) state {
	if bb.ID == cfg.Entry.ID || len(bb.Pred) == 0 {
		return seedState(n)
	}
	joined := emptyState(n)
	for _, p := range bb.Pred {
		if ex, ok := exitState[p.ID]; ok {
			joined.unionInto(ex)
		}
	}
	return joined
}

// transfer applies bb's writes to s without recording per-read detail;
// used only to drive the block-level fixed point.
func transfer(s state, bb *cfgwalk.BasicBlock) state {
	cfgwalk.Walk(bb, func(e ir.Expr, _ ir.Slot) {
		if w, ok := e.(*ir.LocalSet); ok {
			s[w.Index] = singleton(setWrite(w))
		}
	})
	return s
}

// replay re-walks bb against its now-stable entry state, recording every
// read's exact reaching-write set and every read/write's location.
func (g *LocalGraph) replay(s state, bb *cfgwalk.BasicBlock) {
	cfgwalk.Walk(bb, func(e ir.Expr, slot ir.Slot) {
		switch v := e.(type) {
		case *ir.LocalGet:
			g.getSetses[v] = s[v.Index]
			g.locations[v] = slot
			g.getsOf[v.Index] = append(g.getsOf[v.Index], v)
		case *ir.LocalSet:
			s[v.Index] = singleton(setWrite(v))
			g.locations[v] = slot
			g.writesOf[v.Index] = append(g.writesOf[v.Index], v)
		}
	})
}

// ReachingWrites returns the set of writes that may define get's value,
// including the entry sentinel where the function's initial value may
// still reach get along some path.
func (g *LocalGraph) ReachingWrites(get *ir.LocalGet) []Write {
	return sortedList(g.getSetses[get].list())
}

// Locations exposes the read/write substitution handles recorded while
// building the graph.
func (g *LocalGraph) Locations() Locations {
	return g.locations
}
