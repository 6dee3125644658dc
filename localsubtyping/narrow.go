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

// Package localsubtyping is a consumer of the local graph, not part of
// the analytical core: it replaces a var's declared type with the single
// type every one of its reaching writes actually produces, when they all
// agree on a type different from the declaration. The type tags carry no
// subtype relation, so no check is made that the new type is narrower.
// Parameters are never narrowed — their type is fixed by the calling
// convention regardless of what the function body does with them.
package localsubtyping

import (
	"github.com/binaryen-go/localdse/cfgwalk"
	"github.com/binaryen-go/localdse/ir"
	"github.com/binaryen-go/localdse/localgraph"
)

// Narrow inspects every var in fn and replaces its declared type wherever
// every reaching write observed through g agrees on one type other than
// the declared one, updating every ir.LocalGet of that index to match.
// Returns the indices actually narrowed.
func Narrow(fn *ir.Function, cfg *cfgwalk.CFG, g *localgraph.LocalGraph) []int {
	var narrowed []int

	for i := range fn.Locals {
		if fn.IsParam(i) {
			continue
		}

		t, ok := agreedType(cfg, g, i, fn.Locals[i])
		if !ok || t == fn.Locals[i] {
			continue
		}

		if g.IsSSA(i) {
			// An SSA index has exactly one source of truth for its
			// value; agreedType disagreeing with it would mean this
			// package's walk found a type the graph did not, which is
			// a bug in one of the two, not a legitimate narrowing.
			assertSSAAgreement(cfg, g, i, t)
		}

		fn.Locals[i] = t
		forEachGet(cfg, i, func(get *ir.LocalGet) { get.Ty = t })
		narrowed = append(narrowed, i)
	}

	return narrowed
}

// agreedType returns the single value type every reaching write of index
// i produces, ignoring the unreachable type (an unreachable-typed write
// never executes to completion, so it can never actually disagree), and
// whether they all agree on it.
func agreedType(cfg *cfgwalk.CFG, g *localgraph.LocalGraph, i int, declared ir.LocalType) (ir.LocalType, bool) {
	var agreed ir.LocalType
	seen := false
	consistent := true

	forEachGet(cfg, i, func(get *ir.LocalGet) {
		for _, w := range g.ReachingWrites(get) {
			t := declared
			if !w.Entry {
				t = ir.ValueType(w.Set.Value)
			}
			if t == ir.TypeUnreachable {
				continue
			}
			switch {
			case !seen:
				agreed, seen = t, true
			case t != agreed:
				consistent = false
			}
		}
	})

	return agreed, seen && consistent
}

func forEachGet(cfg *cfgwalk.CFG, index int, visit func(*ir.LocalGet)) {
	for _, bb := range cfg.Blocks {
		cfgwalk.Walk(bb, func(e ir.Expr, _ ir.Slot) {
			if get, ok := e.(*ir.LocalGet); ok && get.Index == index {
				visit(get)
			}
		})
	}
}

func assertSSAAgreement(cfg *cfgwalk.CFG, g *localgraph.LocalGraph, i int, agreed ir.LocalType) {
	forEachGet(cfg, i, func(get *ir.LocalGet) {
		for _, w := range g.ReachingWrites(get) {
			if w.Entry {
				continue
			}
			if t := ir.ValueType(w.Set.Value); t != ir.TypeUnreachable && t != agreed {
				panic("localsubtyping: SSA index disagreed with its own single write's type")
			}
		}
	})
}
