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

// AggregateAdapter configures the framework for aggregate field
// accesses. Only meaningful when the driver's configuration says the
// target runtime supports aggregate types; the driver is responsible for
// not constructing this adapter otherwise.
type AggregateAdapter struct{}

func (AggregateAdapter) IsStore(e ir.Expr) bool {
	_, ok := e.(*ir.FieldSet)
	return ok
}

func (AggregateAdapter) IsRelevant(e ir.Expr, eff effect.Flags) bool {
	_, ok := e.(*ir.FieldGet)
	return ok
}

// IsLoadFrom requires the same field index, the same static reference
// type (subtyping is not exploited), and an equivalent reference
// subexpression.
func (AggregateAdapter) IsLoadFrom(c ir.Expr, ceff effect.Flags, s ir.Expr, g *localgraph.LocalGraph) bool {
	get, ok := c.(*ir.FieldGet)
	if !ok {
		return false
	}
	set := s.(*ir.FieldSet)
	if get.Field != set.Field || get.RefType != set.RefType {
		return false
	}
	return g.Equivalent(get.Ref, set.Ref)
}

func (AggregateAdapter) Tramples(c ir.Expr, ceff effect.Flags, s ir.Expr, g *localgraph.LocalGraph) bool {
	other, ok := c.(*ir.FieldSet)
	if !ok {
		return false
	}
	set := s.(*ir.FieldSet)
	if other.Field != set.Field || other.RefType != set.RefType {
		return false
	}
	return g.Equivalent(other.Ref, set.Ref)
}

func (AggregateAdapter) MayInteract(c ir.Expr, ceff effect.Flags, s ir.Expr) bool {
	return ceff.ReadsHeap || ceff.WritesHeap
}

func (AggregateAdapter) ReplaceWithDrops(s ir.Expr) ir.Expr {
	set := s.(*ir.FieldSet)
	return builder.MakeSequence(builder.MakeDrop(set.Ref), builder.MakeDrop(set.Value))
}
