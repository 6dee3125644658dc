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
	"github.com/binaryen-go/localdse/ir"
)

// ComputeSetInfluences populates the write→reads-influenced map: for
// every write s, the reads that may see it — the exact inverse of
// getSetses. Walked through getsOf in local-index then visitation order
// rather than ranged directly over the getSetses map, so the resulting
// read lists come out in a reproducible order instead of Go's
// randomized map iteration order.
func (g *LocalGraph) ComputeSetInfluences() {
	g.setInfluences = make(map[Write][]*ir.LocalGet)
	for i := range g.fn.Locals {
		for _, get := range g.getsOf[i] {
			for _, w := range g.getSetses[get].list() {
				g.setInfluences[w] = append(g.setInfluences[w], get)
			}
		}
	}
}

// SetInfluences returns the reads that may observe w's value, after
// ComputeSetInfluences has run.
func (g *LocalGraph) SetInfluences(w Write) []*ir.LocalGet {
	return g.setInfluences[w]
}

// ComputeGetInfluences populates the get→writes-influenced map: for every
// read g, the writes whose right-hand side transitively uses g. "Uses"
// means g's own expression node occurs somewhere in the write's Value
// subtree — reachable through arbitrarily nested subexpressions (see
// DESIGN.md for this choice of "transitively").
func (g *LocalGraph) ComputeGetInfluences() {
	g.getInfluences = make(map[*ir.LocalGet][]Write)
	for i := range g.fn.Locals {
		for _, w := range g.writesOf[i] {
			gets := make(map[*ir.LocalGet]bool)
			collectGets(w.Value, gets)
			for get := range gets {
				g.getInfluences[get] = append(g.getInfluences[get], setWrite(w))
			}
		}
	}
}

// GetInfluences returns the writes whose value transitively uses get,
// after ComputeGetInfluences has run.
func (g *LocalGraph) GetInfluences(get *ir.LocalGet) []Write {
	return g.getInfluences[get]
}

func collectGets(e ir.Expr, out map[*ir.LocalGet]bool) {
	if e == nil {
		return
	}
	if get, ok := e.(*ir.LocalGet); ok {
		out[get] = true
	}
	if p, ok := e.(ir.Parented); ok {
		for _, slot := range p.Children() {
			collectGets(*slot, out)
		}
	}
}
