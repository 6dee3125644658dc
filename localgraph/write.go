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

package localgraph

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/binaryen-go/localdse/ir"
)

// Write is a single member of a reaching-write set: either the function's
// entry sentinel for a local index, or an actual local-set expression.
// Comparable by ==, so it can be used directly as a map key.
type Write struct {
	Entry bool
	Index int
	Set   *ir.LocalSet
}

func entryWrite(index int) Write { return Write{Entry: true, Index: index} }
func setWrite(s *ir.LocalSet) Write { return Write{Set: s} }

func (w Write) String() string {
	if w.Entry {
		return fmt.Sprintf("entry(%d)", w.Index)
	}
	return fmt.Sprintf("%p", w.Set)
}

// writeSet is a reaching-write set tuned for the measured common case of
// one or two members (a single definition, or a two-way phi). It stores
// up to two members inline and spills to a slice only beyond that,
// unlike a general map-backed set, which is sized for whole-function
// spill-slot tracking rather than per-read write sets.
type writeSet struct {
	a, b Write
	n    int
	rest []Write
}

func singleton(w Write) writeSet {
	return writeSet{a: w, n: 1}
}

func (s writeSet) has(w Write) bool {
	if s.n > 0 && s.a == w {
		return true
	}
	if s.n > 1 && s.b == w {
		return true
	}
	for _, r := range s.rest {
		if r == w {
			return true
		}
	}
	return false
}

// add returns a set containing s's members plus w, and whether w was new.
func (s writeSet) add(w Write) (writeSet, bool) {
	if s.has(w) {
		return s, false
	}
	switch s.n {
	case 0:
		s.a, s.n = w, 1
	case 1:
		s.b, s.n = w, 2
	default:
		s.rest = append(append([]Write{}, s.rest...), w)
	}
	return s, true
}

// union returns the pointwise union of s and o, and whether it grew s.
func (s writeSet) union(o writeSet) (writeSet, bool) {
	grew := false
	for _, w := range o.list() {
		var added bool
		s, added = s.add(w)
		grew = grew || added
	}
	return s, grew
}

func (s writeSet) list() []Write {
	out := make([]Write, 0, s.len())
	if s.n > 0 {
		out = append(out, s.a)
	}
	if s.n > 1 {
		out = append(out, s.b)
	}
	out = append(out, s.rest...)
	return out
}

func (s writeSet) len() int {
	n := s.n
	return n + len(s.rest)
}

func (s writeSet) equal(o writeSet) bool {
	if s.len() != o.len() {
		return false
	}
	for _, w := range s.list() {
		if !o.has(w) {
			return false
		}
	}
	return true
}

// sortedList renders a deterministic ordering of a write set's members
// (entry sentinels first, by index), so ReachingWrites returns a list that
// does not depend on the order writes were added to the set.
func sortedList(ws []Write) []Write {
	out := append([]Write{}, ws...)
	slices.SortFunc(out, func(a, b Write) bool {
		if a.Entry != b.Entry {
			return a.Entry
		}
		if a.Entry {
			return a.Index < b.Index
		}
		return fmt.Sprintf("%p", a.Set) < fmt.Sprintf("%p", b.Set)
	})
	return out
}
