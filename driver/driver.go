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

// Package driver wires the local graph and the three dead-store
// adapters into a single pass-manager-compatible pass, and fans that
// pass out across a module's functions in parallel.
package driver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/binaryen-go/localdse/cfgwalk"
	"github.com/binaryen-go/localdse/dse"
	"github.com/binaryen-go/localdse/internal/debugdump"
	"github.com/binaryen-go/localdse/ir"
	"github.com/binaryen-go/localdse/localgraph"
	"github.com/binaryen-go/localdse/pass"
	"github.com/binaryen-go/localdse/refinalize"
)

// Config configures one run of the local-dead-store-elimination pass.
type Config struct {
	// BuildCFG lowers a function's structured control flow into the
	// basic blocks this core's analyses walk. CFG construction is
	// outside this core's scope; callers supply it.
	BuildCFG func(*ir.Function) *cfgwalk.CFG

	// SupportAggregates enables the aggregate-field adapter; leave
	// false for runtimes with no aggregate/struct types.
	SupportAggregates bool

	// ComputeInfluences populates the local graph's inverse influence
	// maps after building it, for callers that need them.
	ComputeInfluences bool

	// Trace renders each adapter run's optimizable-store map via
	// go-spew, for diagnostics.
	Trace func(adapterName string, dump string)
}

type localDSEPass struct {
	cfg Config
}

// NewPass returns the local-dead-store-elimination pass configured by cfg.
func NewPass(cfg Config) pass.FunctionPass {
	return &localDSEPass{cfg: cfg}
}

func (p *localDSEPass) Name() string { return "LocalDeadStoreElimination" }

// IsFunctionParallel is always true: no state crosses function
// boundaries.
func (p *localDSEPass) IsFunctionParallel() bool { return true }

// Run builds fn's local graph once and runs the store-elimination
// framework three times — globals, memory, then aggregates when
// supported — in that fixed order, since each run's rewrites are visible
// to the next.
func (p *localDSEPass) Run(ctx context.Context, fn *ir.Function) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := p.cfg.BuildCFG(fn)
	graph := localgraph.Build(fn, cfg)
	if p.cfg.ComputeInfluences {
		graph.ComputeSetInfluences()
		graph.ComputeGetInfluences()
	}
	graph.ComputeSSAIndexes()

	adapters := []struct {
		name    string
		adapter dse.Adapter
	}{
		{"globals", dse.GlobalAdapter{}},
		{"memory", dse.MemoryAdapter{}},
	}
	if p.cfg.SupportAggregates {
		adapters = append(adapters, struct {
			name    string
			adapter dse.Adapter
		}{"aggregates", dse.AggregateAdapter{}})
	}

	for _, a := range adapters {
		fw := dse.NewFramework(cfg, graph, a.adapter)
		fw.Run()
		refinalize.CFG(cfg)
		if p.cfg.Trace != nil {
			p.cfg.Trace(a.name, debugdump.SdumpStores(fw.OptimizableStores))
		}
	}

	return nil
}

// RunModule runs the pass over every function in mod, one goroutine per
// function — the only place concurrency appears in this core, since no
// analysis state crosses function boundaries.
func RunModule(ctx context.Context, mod *ir.Module, cfg Config) error {
	p := NewPass(cfg)
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range mod.Funcs {
		fn := fn
		g.Go(func() error {
			return p.Run(ctx, fn)
		})
	}
	return g.Wait()
}
