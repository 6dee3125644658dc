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

// Package dse implements the dead-store-elimination framework: a
// per-store forward traversal over a function's control-flow graph that
// classifies every downstream expression as a matching load, a full
// trample, or an opaque interaction, parameterized over a Kind Adapter
// for globals, linear memory, or aggregate fields.
package dse

import (
	"github.com/binaryen-go/localdse/effect"
	"github.com/binaryen-go/localdse/ir"
	"github.com/binaryen-go/localdse/localgraph"
)

// Adapter configures the framework for one store/load kind. All methods
// except ReplaceWithDrops are pure predicates over a single expression
// node's own (non-recursive) effects; none may mutate the tree.
type Adapter interface {
	// IsStore reports whether e is a store of this adapter's kind.
	IsStore(e ir.Expr) bool
	// IsRelevant reports whether e is an observation point worth
	// recording during relevance capture, independent of whether it is
	// itself a store.
	IsRelevant(e ir.Expr, eff effect.Flags) bool
	// IsLoadFrom reports whether c observes (at least some of) the
	// value s wrote.
	IsLoadFrom(c ir.Expr, ceff effect.Flags, s ir.Expr, g *localgraph.LocalGraph) bool
	// Tramples reports whether c completely overwrites what s wrote,
	// making s's value unobservable along this path from here on.
	Tramples(c ir.Expr, ceff effect.Flags, s ir.Expr, g *localgraph.LocalGraph) bool
	// MayInteract reports whether c might observe or overwrite s's
	// value in a way IsLoadFrom/Tramples could not already confirm or
	// deny — the conservative fallback that disqualifies s.
	MayInteract(c ir.Expr, ceff effect.Flags, s ir.Expr) bool
	// ReplaceWithDrops returns the in-place replacement for a store
	// found fully dead: its operand subtrees evaluated, values discarded.
	ReplaceWithDrops(s ir.Expr) ir.Expr
}

// OptimizableStores maps each store found optimizable at analysis end to
// the loads observed to read its value. A store present with an empty
// slice has no observed loads and is eligible for removal.
type OptimizableStores map[ir.Expr][]ir.Expr

// reachesGlobalCode is the shared "reaches global code" predicate used in
// both relevance capture and the per-store scan: control or observation
// escaping the function outright.
func reachesGlobalCode(eff effect.Flags) bool {
	return eff.ReachesGlobalCode()
}
