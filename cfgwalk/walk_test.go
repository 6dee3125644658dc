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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binaryen-go/localdse/ir"
)

func TestWalkVisitsChildrenBeforeParent(t *testing.T) {
	inner := &ir.Const{Type_: ir.I32, I: 1}
	set := &ir.LocalSet{Index: 0, Value: inner}
	bb := &BasicBlock{ID: 0, Stmts: []ir.Expr{set}}

	var order []ir.Expr
	Walk(bb, func(e ir.Expr, slot ir.Slot) {
		order = append(order, e)
	})

	require.Len(t, order, 2)
	require.Same(t, inner, order[0])
	require.Same(t, set, order[1])
}

func TestWalkSlotAllowsInPlaceSubstitution(t *testing.T) {
	set := &ir.LocalSet{Index: 0, Value: &ir.Const{Type_: ir.I32, I: 1}}
	bb := &BasicBlock{ID: 0, Stmts: []ir.Expr{set}}

	Walk(bb, func(e ir.Expr, slot ir.Slot) {
		if _, ok := e.(*ir.Const); ok {
			*slot = &ir.Const{Type_: ir.I32, I: 99}
		}
	})

	require.Equal(t, int64(99), set.Value.(*ir.Const).I)
}

func TestReversePostOrder(t *testing.T) {
	entry := &BasicBlock{ID: 0}
	left := &BasicBlock{ID: 1}
	right := &BasicBlock{ID: 2}
	join := &BasicBlock{ID: 3}

	entry.AddSucc(left)
	entry.AddSucc(right)
	left.AddSucc(join)
	right.AddSucc(join)

	cfg := &CFG{Blocks: []*BasicBlock{entry, left, right, join}, Entry: entry, Exit: join}

	var order []int
	cfg.ReversePostOrder(func(bb *BasicBlock) {
		order = append(order, bb.ID)
	})

	require.Equal(t, 0, order[0])
	require.Equal(t, 3, order[len(order)-1])
	require.Len(t, order, 4)
}
