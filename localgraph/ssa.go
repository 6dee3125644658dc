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

// ComputeSSAIndexes classifies every local index as SSA or not: a local
// is SSA when every read sees exactly one write, it is the same write
// for every read of that index, and no other write of the index exists
// besides it (or, for zero-write indices, every read sees only the entry
// sentinel).
func (g *LocalGraph) ComputeSSAIndexes() {
	g.ssa = make(map[int]bool, len(g.fn.Locals))

	for i := range g.fn.Locals {
		writes := g.writesOf[i]
		if len(writes) > 1 {
			g.ssa[i] = false
			continue
		}

		var want Write
		if len(writes) == 1 {
			want = setWrite(writes[0])
		} else {
			want = entryWrite(i)
		}

		ok := true
		for _, get := range g.getsOf[i] {
			ws := g.getSetses[get]
			if ws.len() != 1 || !ws.has(want) {
				ok = false
				break
			}
		}
		g.ssa[i] = ok
	}
}

// IsSSA reports whether index was classified SSA by the last call to
// ComputeSSAIndexes.
func (g *LocalGraph) IsSSA(index int) bool {
	if g.ssa == nil {
		panic("localgraph: IsSSA called before ComputeSSAIndexes")
	}
	return g.ssa[index]
}
