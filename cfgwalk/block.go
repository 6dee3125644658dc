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

// Package cfgwalk provides the minimal concrete control-flow-graph shape
// the local graph and dead-store-elimination cores are written against.
// Lowering a function's structured control flow into basic blocks is left
// to the caller; this package only fixes the block/edge data structure
// callers hand in and the expression-order walk over it that both cores
// share.
package cfgwalk

import (
	"fmt"

	"github.com/binaryen-go/localdse/ir"
)

// BasicBlock is an ordered run of statement roots with no internal branch.
type BasicBlock struct {
	ID    int
	Stmts []ir.Expr
	Pred  []*BasicBlock
	Succ  []*BasicBlock
}

func (bb *BasicBlock) String() string {
	return fmt.Sprintf("bb_%d", bb.ID)
}

// AddSucc links self to to, recording both directions of the edge.
func (self *BasicBlock) AddSucc(to *BasicBlock) {
	self.Succ = append(self.Succ, to)
	to.Pred = append(to.Pred, self)
}

// CFG is a function's basic-block graph with a distinguished entry/exit.
type CFG struct {
	Blocks []*BasicBlock
	Entry  *BasicBlock
	Exit   *BasicBlock
}

// Block looks up a block by id, or nil if none matches.
func (g *CFG) Block(id int) *BasicBlock {
	for _, bb := range g.Blocks {
		if bb.ID == id {
			return bb
		}
	}
	return nil
}
