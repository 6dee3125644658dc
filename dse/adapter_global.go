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

// GlobalAdapter configures the framework for scalar global variables.
// Globals are addressed by name only, so every predicate here reduces to
// a name comparison; the local graph is never consulted.
type GlobalAdapter struct{}

func (GlobalAdapter) IsStore(e ir.Expr) bool {
	_, ok := e.(*ir.GlobalSet)
	return ok
}

func (GlobalAdapter) IsRelevant(e ir.Expr, eff effect.Flags) bool {
	_, ok := e.(*ir.GlobalGet)
	return ok
}

func (GlobalAdapter) IsLoadFrom(c ir.Expr, ceff effect.Flags, s ir.Expr, g *localgraph.LocalGraph) bool {
	get, ok := c.(*ir.GlobalGet)
	if !ok {
		return false
	}
	return get.Name == s.(*ir.GlobalSet).Name
}

func (GlobalAdapter) Tramples(c ir.Expr, ceff effect.Flags, s ir.Expr, g *localgraph.LocalGraph) bool {
	other, ok := c.(*ir.GlobalSet)
	if !ok {
		return false
	}
	return other.Name == s.(*ir.GlobalSet).Name
}

// MayInteract is always false: globals are otherwise opaque only through
// calls, and calls already trip "reaches global code" upstream of here.
func (GlobalAdapter) MayInteract(c ir.Expr, ceff effect.Flags, s ir.Expr) bool {
	return false
}

func (GlobalAdapter) ReplaceWithDrops(s ir.Expr) ir.Expr {
	return builder.MakeDrop(s.(*ir.GlobalSet).Value)
}
