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

// Package refinalize is the post-rewrite cleanup utility consumers call
// after any pass mutates the tree. Phase 3 of the store-elimination
// framework builds replacement sequences with builder.MakeSequence; run
// back to back across multiple adapter passes, those sequence blocks can
// end up nested inside one another. CFG flattens
// that redundant structure bottom-up so later passes and debug dumps see
// a tree as flat as if it had been built that way from the start.
package refinalize

import (
	"github.com/binaryen-go/localdse/cfgwalk"
	"github.com/binaryen-go/localdse/ir"
)

// CFG flattens every statement root across cfg's blocks in place.
func CFG(cfg *cfgwalk.CFG) {
	for _, bb := range cfg.Blocks {
		for i := range bb.Stmts {
			bb.Stmts[i] = flatten(bb.Stmts[i])
		}
	}
}

// flatten recurses into every child slot first, then inlines the List of
// every Block nested directly in a Block's List, so nested
// sequences flatten from the leaves up.
func flatten(e ir.Expr) ir.Expr {
	if p, ok := e.(ir.Parented); ok {
		for _, slot := range p.Children() {
			*slot = flatten(*slot)
		}
	}

	blk, ok := e.(*ir.Block)
	if !ok {
		return e
	}

	out := make([]ir.Expr, 0, len(blk.List))
	for _, stmt := range blk.List {
		if inner, ok := stmt.(*ir.Block); ok {
			out = append(out, inner.List...)
			continue
		}
		out = append(out, stmt)
	}
	blk.List = out
	return blk
}
