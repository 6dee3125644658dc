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

// Package ir defines the expression-tree node kinds the local-graph and
// dead-store-elimination cores operate on. Pass management, CFG
// construction and expression-effect analysis live in sibling packages;
// this package only fixes the shape of the tree they walk.
package ir

import (
	"fmt"
)

// Expr is any node in an expression tree. Identity is pointer identity:
// every concrete kind below is always held as a pointer, so two Expr
// values compare equal with == iff they are the same node.
type Expr interface {
	fmt.Stringer
	irexpr()
}

// Slot is a stable handle to the field inside a parent node that holds a
// child reference. Replacing *slot in place substitutes the child without
// needing to re-locate its parent.
type Slot = *Expr

// Parented is implemented by every node that has children, so generic
// tree walkers can recurse and rewriters can substitute in place.
type Parented interface {
	Expr
	Children() []Slot
}

// TypeTag is the static type of an expression's value. TypeUnreachable is
// the sentinel used for expressions that never produce a runtime value.
type TypeTag uint8

const (
	I32 TypeTag = iota
	I64
	F32
	F64
	Ref
	TypeUnreachable
)

func (t TypeTag) String() string {
	switch t {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Ref:
		return "ref"
	case TypeUnreachable:
		return "unreachable"
	default:
		return "?"
	}
}

// ByteSize returns the full, unpacked byte width of a value of this type.
// Memory loads/stores narrower than this are partial accesses and must
// never be treated as a full load-from match.
func (t TypeTag) ByteSize() uint8 {
	switch t {
	case I32, F32:
		return 4
	case I64, F64:
		return 8
	case Ref:
		return 8
	default:
		return 0
	}
}

// LocalType is the declared type of a parameter or var slot.
type LocalType = TypeTag

// ZeroValue returns the type-dependent default a var of this type holds
// before any write reaches it.
func ZeroValue(t LocalType) *Const {
	return &Const{Type_: t, I: 0}
}

// ValueType returns the static type of e's value, or TypeUnreachable for
// node kinds that never produce one. Exported so consumers outside this
// package (e.g. a local-type-narrowing pass) can inspect a reaching
// write's value type without a parallel type switch of their own.
func ValueType(e Expr) TypeTag {
	if t, ok := e.(interface{ Type() TypeTag }); ok {
		return t.Type()
	}
	return TypeUnreachable
}

func typeOf(e Expr) TypeTag { return ValueType(e) }
