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

package localsubtyping

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binaryen-go/localdse/cfgwalk"
	"github.com/binaryen-go/localdse/ir"
	"github.com/binaryen-go/localdse/localgraph"
)

func linearCFG(stmts ...ir.Expr) *cfgwalk.CFG {
	bb := &cfgwalk.BasicBlock{ID: 0, Stmts: stmts}
	return &cfgwalk.CFG{Blocks: []*cfgwalk.BasicBlock{bb}, Entry: bb, Exit: bb}
}

func TestNarrowSingleConsistentWrite(t *testing.T) {
	fn := &ir.Function{Locals: []ir.LocalType{ir.Ref}, VarBase: 0}
	set := &ir.LocalSet{Index: 0, Value: &ir.Const{Type_: ir.I32, I: 1}}
	get := &ir.LocalGet{Index: 0, Ty: ir.Ref}
	cfg := linearCFG(set, get)

	g := localgraph.Build(fn, cfg)
	g.ComputeSSAIndexes()

	narrowed := Narrow(fn, cfg, g)

	require.Equal(t, []int{0}, narrowed)
	require.Equal(t, ir.I32, fn.Locals[0])
	require.Equal(t, ir.I32, get.Ty)
}

func TestNarrowSkipsParams(t *testing.T) {
	fn := &ir.Function{Locals: []ir.LocalType{ir.Ref}, VarBase: 1}
	set := &ir.LocalSet{Index: 0, Value: &ir.Const{Type_: ir.I32, I: 1}}
	get := &ir.LocalGet{Index: 0, Ty: ir.Ref}
	cfg := linearCFG(set, get)

	g := localgraph.Build(fn, cfg)
	g.ComputeSSAIndexes()

	narrowed := Narrow(fn, cfg, g)

	require.Empty(t, narrowed)
	require.Equal(t, ir.Ref, fn.Locals[0])
}

func TestNarrowSkipsDisagreeingWrites(t *testing.T) {
	fn := &ir.Function{Locals: []ir.LocalType{ir.Ref}}

	entry := &cfgwalk.BasicBlock{ID: 0}
	thenBB := &cfgwalk.BasicBlock{ID: 1}
	elseBB := &cfgwalk.BasicBlock{ID: 2}
	join := &cfgwalk.BasicBlock{ID: 3}
	entry.AddSucc(thenBB)
	entry.AddSucc(elseBB)
	thenBB.AddSucc(join)
	elseBB.AddSucc(join)

	setI32 := &ir.LocalSet{Index: 0, Value: &ir.Const{Type_: ir.I32, I: 1}}
	setI64 := &ir.LocalSet{Index: 0, Value: &ir.Const{Type_: ir.I64, I: 2}}
	use := &ir.LocalGet{Index: 0, Ty: ir.Ref}

	thenBB.Stmts = []ir.Expr{setI32}
	elseBB.Stmts = []ir.Expr{setI64}
	join.Stmts = []ir.Expr{use}

	cfg := &cfgwalk.CFG{Blocks: []*cfgwalk.BasicBlock{entry, thenBB, elseBB, join}, Entry: entry, Exit: join}

	g := localgraph.Build(fn, cfg)
	g.ComputeSSAIndexes()

	narrowed := Narrow(fn, cfg, g)

	require.Empty(t, narrowed)
	require.Equal(t, ir.Ref, fn.Locals[0])
}

func TestNarrowAgreesAcrossPhi(t *testing.T) {
	fn := &ir.Function{Locals: []ir.LocalType{ir.Ref}}

	entry := &cfgwalk.BasicBlock{ID: 0}
	thenBB := &cfgwalk.BasicBlock{ID: 1}
	elseBB := &cfgwalk.BasicBlock{ID: 2}
	join := &cfgwalk.BasicBlock{ID: 3}
	entry.AddSucc(thenBB)
	entry.AddSucc(elseBB)
	thenBB.AddSucc(join)
	elseBB.AddSucc(join)

	setA := &ir.LocalSet{Index: 0, Value: &ir.Const{Type_: ir.I32, I: 1}}
	setB := &ir.LocalSet{Index: 0, Value: &ir.Const{Type_: ir.I32, I: 2}}
	use := &ir.LocalGet{Index: 0, Ty: ir.Ref}

	thenBB.Stmts = []ir.Expr{setA}
	elseBB.Stmts = []ir.Expr{setB}
	join.Stmts = []ir.Expr{use}

	cfg := &cfgwalk.CFG{Blocks: []*cfgwalk.BasicBlock{entry, thenBB, elseBB, join}, Entry: entry, Exit: join}

	g := localgraph.Build(fn, cfg)
	g.ComputeSSAIndexes()
	require.False(t, g.IsSSA(0))

	narrowed := Narrow(fn, cfg, g)

	require.Equal(t, []int{0}, narrowed)
	require.Equal(t, ir.I32, fn.Locals[0])
	require.Equal(t, ir.I32, use.Ty)
}
