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

package localgraph

import (
	"github.com/binaryen-go/localdse/ir"
)

// Equivalent decides whether a and b definitely evaluate to the same
// value: peel both through fallthrough wrappers, then require either two
// reads of the same local with identical reaching-write sets, or two
// equal constants. Everything else is conservatively "not equivalent" —
// an absence of proof, not a proof of absence.
func (g *LocalGraph) Equivalent(a, b ir.Expr) bool {
	pa, pb := peel(a), peel(b)

	if ga, ok := pa.(*ir.LocalGet); ok {
		if gb, ok := pb.(*ir.LocalGet); ok {
			return ga.Index == gb.Index && g.getSetses[ga].equal(g.getSetses[gb])
		}
		return false
	}

	if ca, ok := pa.(*ir.Const); ok {
		if cb, ok := pb.(*ir.Const); ok {
			return ca.Type_ == cb.Type_ && ca.I == cb.I
		}
		return false
	}

	return false
}

// peel reduces e through expressions that merely forward a child's value
// — in this core, a Block whose single statement is itself the value —
// to the ultimate value-producing subexpression.
func peel(e ir.Expr) ir.Expr {
	for {
		blk, ok := e.(*ir.Block)
		if !ok || len(blk.List) != 1 {
			return e
		}
		e = blk.List[0]
	}
}
