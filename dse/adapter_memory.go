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
	"github.com/binaryen-go/localdse/builder"
	"github.com/binaryen-go/localdse/effect"
	"github.com/binaryen-go/localdse/ir"
	"github.com/binaryen-go/localdse/localgraph"
)

// MemoryAdapter configures the framework for linear-memory scalar loads
// and stores.
type MemoryAdapter struct{}

func (MemoryAdapter) IsStore(e ir.Expr) bool {
	_, ok := e.(*ir.Store)
	return ok
}

func (MemoryAdapter) IsRelevant(e ir.Expr, eff effect.Flags) bool {
	return eff.ReadsMemory || eff.WritesMemory
}

// IsLoadFrom implements the atomic-compatibility rule: an atomic store
// observed by a non-atomic load is not a match, because the atomic store
// carries alignment-trap semantics the non-atomic load lacks; the reverse
// (non-atomic store, atomic load) is allowed.
func (MemoryAdapter) IsLoadFrom(c ir.Expr, ceff effect.Flags, s ir.Expr, g *localgraph.LocalGraph) bool {
	load, ok := c.(*ir.Load)
	if !ok {
		return false
	}
	if load.Ty == ir.TypeUnreachable {
		return false
	}
	store := s.(*ir.Store)
	if store.Atomic && !load.Atomic {
		return false
	}
	if load.Bytes != store.Bytes || load.Bytes != load.Ty.ByteSize() {
		return false
	}
	if load.Offset != store.Offset {
		return false
	}
	return g.Equivalent(load.Ptr, store.Ptr)
}

func (MemoryAdapter) Tramples(c ir.Expr, ceff effect.Flags, s ir.Expr, g *localgraph.LocalGraph) bool {
	other, ok := c.(*ir.Store)
	if !ok {
		return false
	}
	store := s.(*ir.Store)
	if store.Atomic && !other.Atomic {
		return false
	}
	if other.Bytes != store.Bytes || other.Offset != store.Offset {
		return false
	}
	return g.Equivalent(other.Ptr, store.Ptr)
}

func (MemoryAdapter) MayInteract(c ir.Expr, ceff effect.Flags, s ir.Expr) bool {
	return ceff.ReadsMemory || ceff.WritesMemory
}

func (MemoryAdapter) ReplaceWithDrops(s ir.Expr) ir.Expr {
	store := s.(*ir.Store)
	return builder.MakeSequence(builder.MakeDrop(store.Ptr), builder.MakeDrop(store.Value))
}
