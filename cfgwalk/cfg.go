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
	"github.com/oleiade/lane"
)

// ReversePostOrder visits every block reachable from Entry in reverse
// postorder. Successor edges are followed in their
// recorded order, so the traversal is fully deterministic, using a
// lane.Stack for the same traversal shape as the rest of this package.
func (g *CFG) ReversePostOrder(visit func(bb *BasicBlock)) {
	for _, bb := range g.postOrder() {
		visit(bb)
	}
}

func (g *CFG) postOrder() []*BasicBlock {
	visited := make(map[int]bool, len(g.Blocks))
	order := make([]*BasicBlock, 0, len(g.Blocks))
	type frame struct {
		bb   *BasicBlock
		next int
	}
	st := lane.NewStack()
	if g.Entry == nil {
		return nil
	}
	visited[g.Entry.ID] = true
	st.Push(&frame{bb: g.Entry})
	for !st.Empty() {
		top := st.Head().(*frame)
		if top.next < len(top.bb.Succ) {
			succ := top.bb.Succ[top.next]
			top.next++
			if !visited[succ.ID] {
				visited[succ.ID] = true
				st.Push(&frame{bb: succ})
			}
			continue
		}
		st.Pop()
		order = append(order, top.bb)
	}
	reversed := make([]*BasicBlock, len(order))
	for i, bb := range order {
		reversed[len(order)-1-i] = bb
	}
	return reversed
}
