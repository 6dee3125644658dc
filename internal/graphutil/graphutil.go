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

// Package graphutil wraps a *cfgwalk.CFG as a gonum directed graph,
// giving the dead-store framework a deterministic block visitation order
// computed by gonum's topological sort instead of a hand-rolled
// traversal.
package graphutil

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/binaryen-go/localdse/cfgwalk"
)

// Graph is a *cfgwalk.CFG viewed through gonum's graph interfaces.
type Graph struct {
	g     *simple.DirectedGraph
	order []*cfgwalk.BasicBlock
}

// Build wraps cfg and precomputes a deterministic block visitation order:
// a topological sort when the CFG is acyclic (the common case for a
// function with no loops), with blocks that have no fixed relative order
// taken by ascending id, falling back to cfg's own declaration order
// — itself deterministic — when it is not, since gonum's topo.Sort
// rejects cyclic input outright.
func Build(cfg *cfgwalk.CFG) *Graph {
	g := simple.NewDirectedGraph()
	for _, bb := range cfg.Blocks {
		g.AddNode(simple.Node(int64(bb.ID)))
	}
	selfLoop := false
	for _, bb := range cfg.Blocks {
		for _, succ := range bb.Succ {
			from, to := int64(bb.ID), int64(succ.ID)
			if from == to {
				// simple.DirectedGraph forbids self-loops outright; a
				// self-loop is itself a cycle, so record that fact
				// instead of feeding it to SetEdge.
				selfLoop = true
				continue
			}
			if !g.HasEdgeFromTo(from, to) {
				g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
			}
		}
	}

	gr := &Graph{g: g}
	if order, err := topo.SortStabilized(g, nil); err == nil && !selfLoop {
		for _, n := range order {
			if bb := cfg.Block(int(n.ID())); bb != nil {
				gr.order = append(gr.order, bb)
			}
		}
	} else {
		gr.order = append(gr.order, cfg.Blocks...)
	}
	return gr
}

// DeterministicOrder returns the block visitation order computed at
// Build time.
func (gr *Graph) DeterministicOrder() []*cfgwalk.BasicBlock {
	return gr.order
}
