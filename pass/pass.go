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

// Package pass is the minimal pass-manager contract the driver pass plugs
// into: an ordered list of descriptors run in sequence, generalized from
// a fixed whole-graph pipeline to a named, independently schedulable
// FunctionPass.
package pass

import (
	"context"

	"github.com/binaryen-go/localdse/ir"
)

// FunctionPass runs once per function. IsFunctionParallel reports whether
// the pass manager may run it for multiple functions concurrently; this
// core's passes carry no state across functions, so every implementation
// here returns true.
type FunctionPass interface {
	Name() string
	Run(ctx context.Context, fn *ir.Function) error
	IsFunctionParallel() bool
}

// Descriptor pairs a pass with the description the pass manager reports
// in diagnostics.
type Descriptor struct {
	Pass FunctionPass
	Desc string
}

// RunOrdered runs every pass in passes, in order, against fn. A later
// pass observes the IR mutations made by every earlier one — the fixed
// order the local-DSE driver's three adapter runs depend on.
func RunOrdered(ctx context.Context, fn *ir.Function, passes []Descriptor) error {
	for _, p := range passes {
		if err := p.Pass.Run(ctx, fn); err != nil {
			return err
		}
	}
	return nil
}
