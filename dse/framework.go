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

package dse

import (
	"github.com/binaryen-go/localdse/cfgwalk"
	"github.com/binaryen-go/localdse/effect"
	"github.com/binaryen-go/localdse/internal/graphutil"
	"github.com/binaryen-go/localdse/ir"
	"github.com/binaryen-go/localdse/localgraph"
)

// Framework discovers and removes dead stores of one kind over a single
// function's CFG, per the three-phase algorithm: relevance capture,
// per-store forward flow, and rewrite.
type Framework struct {
	cfg     *cfgwalk.CFG
	order   []*cfgwalk.BasicBlock
	graph   *localgraph.LocalGraph
	adapter Adapter

	relevant  map[int][]ir.Expr
	storeSlot map[ir.Expr]ir.Slot

	OptimizableStores OptimizableStores
}

// NewFramework builds a framework over cfg using graph for equivalence
// reasoning and adapter for the store/load kind it targets. Phases 1 and
// 2 both iterate blocks in a gonum-computed deterministic order rather
// than cfg.Blocks' raw declaration order, so results are reproducible
// independent of how the caller happened to assemble the block list.
func NewFramework(cfg *cfgwalk.CFG, graph *localgraph.LocalGraph, adapter Adapter) *Framework {
	return &Framework{
		cfg:       cfg,
		order:     graphutil.Build(cfg).DeterministicOrder(),
		graph:     graph,
		adapter:   adapter,
		relevant:  map[int][]ir.Expr{},
		storeSlot: map[ir.Expr]ir.Slot{},
	}
}

// Run executes all three phases in order, leaving OptimizableStores
// populated and every fully-dead store rewritten in place.
func (f *Framework) Run() {
	f.capture()
	f.flow()
	f.rewrite()
}

// capture is phase 1: one walk over the CFG recording, per block, the
// ordered list of expressions worth observing during the forward scan —
// stores, adapter-relevant expressions, and anything that reaches global
// code — plus each store's in-place substitution handle.
func (f *Framework) capture() {
	for _, bb := range f.order {
		cfgwalk.Walk(bb, func(e ir.Expr, slot ir.Slot) {
			eff := effect.Of(e)
			isStore := f.adapter.IsStore(e)
			if isStore || f.adapter.IsRelevant(e, eff) || reachesGlobalCode(eff) {
				f.relevant[bb.ID] = append(f.relevant[bb.ID], e)
			}
			if isStore {
				f.storeSlot[e] = slot
			}
		})
	}
}

// flow is phase 2: for every store found during capture, scan forward
// through the CFG classifying each subsequent relevant expression.
func (f *Framework) flow() {
	f.OptimizableStores = OptimizableStores{}
	for _, bb := range f.order {
		list := f.relevant[bb.ID]
		for i, e := range list {
			if !f.adapter.IsStore(e) {
				continue
			}
			loads, optimizable := f.scanFrom(bb, i+1, e)
			if optimizable {
				f.OptimizableStores[e] = loads
			}
		}
	}
}

// scanFrom runs the per-store forward flow for store, starting at index
// start within origin's relevant list (strictly after the store itself),
// and spreading to successor blocks from offset 0 as the scan reaches
// each block's end without halting or trampling. The first scan of origin
// runs unconditionally, outside of visited; only blocks reached afterward
// through a successor edge are guarded against repeat enqueueing, so a
// back edge that loops around to origin itself is scanned a second time
// from offset 0 rather than being treated as already covered.
func (f *Framework) scanFrom(origin *cfgwalk.BasicBlock, start int, store ir.Expr) ([]ir.Expr, bool) {
	var loads []ir.Expr
	visited := map[int]bool{}

	wl := newScanWorklist()
	wl.push(scanTask{origin, start})

	for {
		task, ok := wl.pop()
		if !ok {
			return loads, true
		}

		trampled, halted := f.scanBlock(task, store, &loads)
		if halted {
			return nil, false
		}
		if trampled {
			continue
		}

		if f.cfg.Exit != nil && task.block.ID == f.cfg.Exit.ID {
			return nil, false
		}
		if len(task.block.Succ) == 0 {
			return nil, false
		}

		for _, succ := range task.block.Succ {
			if !visited[succ.ID] {
				visited[succ.ID] = true
				wl.push(scanTask{succ, 0})
			}
		}
	}
}

// scanBlock runs the scan step over task.block's relevant list starting
// at task.start, reporting whether the path trampled out or the whole
// analysis must halt.
func (f *Framework) scanBlock(task scanTask, store ir.Expr, loads *[]ir.Expr) (trampled, halted bool) {
	list := f.relevant[task.block.ID]
	if task.start >= len(list) {
		return false, false
	}

	for _, c := range list[task.start:] {
		ceff := effect.Of(c)

		if f.adapter.IsLoadFrom(c, ceff, store, f.graph) {
			*loads = append(*loads, c)
			continue
		}
		if f.adapter.Tramples(c, ceff, store, f.graph) {
			return true, false
		}
		if reachesGlobalCode(ceff) || f.adapter.MayInteract(c, ceff, store) {
			return false, true
		}
	}

	return false, false
}

// rewrite is phase 3: every optimizable store with an empty load list is
// fully dead and is replaced in place by the adapter's drop-equivalent.
func (f *Framework) rewrite() {
	for store, loads := range f.OptimizableStores {
		if len(loads) != 0 {
			continue
		}
		slot := f.storeSlot[store]
		*slot = f.adapter.ReplaceWithDrops(store)
	}
}
