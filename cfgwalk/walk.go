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

package cfgwalk

import (
	"github.com/binaryen-go/localdse/ir"
)

// Visit is invoked once per expression encountered while walking a block,
// in post-order (children before parents), with the stable substitution
// handle for that expression's slot in its parent, so a visitor can
// rewrite a node in place without re-locating it in the parent.
type Visit func(e ir.Expr, slot ir.Slot)

// Walk visits every expression in bb's statement trees, in evaluation
// order, so that by the time a parent is visited every child's own
// effects have already been observed by the caller.
func Walk(bb *BasicBlock, visit Visit) {
	for i := range bb.Stmts {
		walkSlot(&bb.Stmts[i], visit)
	}
}

func walkSlot(slot ir.Slot, visit Visit) {
	e := *slot
	if e == nil {
		return
	}
	if p, ok := e.(ir.Parented); ok {
		for _, child := range p.Children() {
			walkSlot(child, visit)
		}
	}
	visit(e, slot)
}
