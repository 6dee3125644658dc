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

// Package effect classifies a single expression node's side effects,
// excluding its children. A full expression-effect analysis is treated
// as an external collaborator; this package gives it the minimal
// concrete shape the dead-store-elimination framework needs, dispatched
// with the same type-switch style used elsewhere in this core.
package effect

import (
	"github.com/binaryen-go/localdse/ir"
)

// Flags are the non-recursive effects of one expression node.
type Flags struct {
	ReadsMemory  bool
	WritesMemory bool
	ReadsHeap    bool
	WritesHeap   bool
	MayCall      bool
	MayThrow     bool
	MayTrap      bool
	IsReturn     bool
}

// ReachesGlobalCode reports whether control or observation can escape
// the function outright.
func (f Flags) ReachesGlobalCode() bool {
	return f.MayCall || f.MayThrow || f.MayTrap || f.IsReturn
}

// Of computes the effect flags for e alone, not recursing into children.
func Of(e ir.Expr) Flags {
	switch v := e.(type) {
	case *ir.Load:
		return Flags{ReadsMemory: true, MayTrap: v.Atomic}
	case *ir.Store:
		return Flags{WritesMemory: true, MayTrap: v.Atomic}
	case *ir.FieldGet:
		return Flags{ReadsHeap: true, MayTrap: true}
	case *ir.FieldSet:
		return Flags{WritesHeap: true, MayTrap: true}
	case *ir.Call:
		return Flags{MayCall: true}
	case *ir.Return:
		return Flags{IsReturn: true}
	case *ir.Unreachable:
		return Flags{MayTrap: true}
	default:
		return Flags{}
	}
}
