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
)

func TestGlobalAdapterIsStore(t *testing.T) {
	adapter := GlobalAdapter{}
	require.True(t, adapter.IsStore(&ir.GlobalSet{Name: "g"}))
	require.False(t, adapter.IsStore(&ir.GlobalGet{Name: "g"}))
	require.False(t, adapter.IsStore(&ir.Const{Type_: ir.I32, I: 1}))
}

func TestGlobalAdapterIsRelevant(t *testing.T) {
	adapter := GlobalAdapter{}
	get := &ir.GlobalGet{Name: "g"}
	require.True(t, adapter.IsRelevant(get, effect.Of(get)))
	require.False(t, adapter.IsRelevant(&ir.Const{Type_: ir.I32, I: 1}, effect.Flags{}))
}

func TestGlobalAdapterMatchesByName(t *testing.T) {
	adapter := GlobalAdapter{}
	store := &ir.GlobalSet{Name: "g", Value: &ir.Const{Type_: ir.I32, I: 1}}
	sameName := &ir.GlobalGet{Name: "g", Ty: ir.I32}
	otherName := &ir.GlobalGet{Name: "h", Ty: ir.I32}

	require.True(t, adapter.IsLoadFrom(sameName, effect.Of(sameName), store, nil))
	require.False(t, adapter.IsLoadFrom(otherName, effect.Of(otherName), store, nil))

	otherStore := &ir.GlobalSet{Name: "g", Value: &ir.Const{Type_: ir.I32, I: 2}}
	unrelatedStore := &ir.GlobalSet{Name: "h", Value: &ir.Const{Type_: ir.I32, I: 2}}
	require.True(t, adapter.Tramples(otherStore, effect.Of(otherStore), store, nil))
	require.False(t, adapter.Tramples(unrelatedStore, effect.Of(unrelatedStore), store, nil))
}

func TestGlobalAdapterNeverMayInteract(t *testing.T) {
	adapter := GlobalAdapter{}
	call := &ir.Call{Callee: "f"}
	require.False(t, adapter.MayInteract(call, effect.Of(call), &ir.GlobalSet{Name: "g"}))
}

func TestGlobalAdapterReplaceWithDrops(t *testing.T) {
	adapter := GlobalAdapter{}
	value := &ir.Const{Type_: ir.I32, I: 5}
	store := &ir.GlobalSet{Name: "g", Value: value}

	replacement := adapter.ReplaceWithDrops(store)
	drop, ok := replacement.(*ir.Drop)
	require.True(t, ok)
	require.Same(t, value, drop.Value)
}
