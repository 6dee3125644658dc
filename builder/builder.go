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

// Package builder is the minimal IR-construction collaborator the
// dead-store-elimination framework needs to turn a removed store into a
// drop of its operand subtrees.
package builder

import (
	"github.com/binaryen-go/localdse/ir"
)

// MakeDrop evaluates e and discards its result.
func MakeDrop(e ir.Expr) ir.Expr {
	return &ir.Drop{Value: e}
}

// MakeSequence evaluates a then b, in order, yielding b's value.
func MakeSequence(a, b ir.Expr) ir.Expr {
	return &ir.Block{List: []ir.Expr{a, b}}
}
