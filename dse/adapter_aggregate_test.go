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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binaryen-go/localdse/effect"
	"github.com/binaryen-go/localdse/ir"
	"github.com/binaryen-go/localdse/localgraph"
)

// TestAggregateFieldReStore covers let r = new Box; r.f = 1; r.f = 2;
// read r.f. The first field write is trampled by the second before the
// read observes it.
func TestAggregateFieldReStore(t *testing.T) {
	ref := &ir.Const{Type_: ir.Ref, I: 1}
	first := &ir.FieldSet{Ref: ref, RefType: "Box", Field: 0, Value: &ir.Const{Type_: ir.I32, I: 1}}
	second := &ir.FieldSet{Ref: &ir.Const{Type_: ir.Ref, I: 1}, RefType: "Box", Field: 0, Value: &ir.Const{Type_: ir.I32, I: 2}}
	read := &ir.FieldGet{Ref: &ir.Const{Type_: ir.Ref, I: 1}, RefType: "Box", Field: 0, Ty: ir.I32}

	cfg := singleBlockCFG(first, second, read)
	graph := localgraph.Build(&ir.Function{}, cfg)

	fw := NewFramework(cfg, graph, AggregateAdapter{})
	fw.Run()

	seq, ok := cfg.Blocks[0].Stmts[0].(*ir.Block)
	require.True(t, ok, "first field write should have been replaced by a drop sequence")
	require.Len(t, seq.List, 2)
	_, ok = seq.List[0].(*ir.Drop)
	require.True(t, ok)

	require.Same(t, second, cfg.Blocks[0].Stmts[1])
}

func TestAggregateFieldMismatchedIndexIsNotLoadFrom(t *testing.T) {
	ref := &ir.Const{Type_: ir.Ref, I: 1}
	store := &ir.FieldSet{Ref: ref, RefType: "Box", Field: 0, Value: &ir.Const{Type_: ir.I32, I: 1}}
	other := &ir.FieldGet{Ref: ref, RefType: "Box", Field: 1, Ty: ir.I32}

	adapter := AggregateAdapter{}
	require.False(t, adapter.IsLoadFrom(other, effect.Of(other), store, nil))
}
