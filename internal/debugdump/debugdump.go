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

// Package debugdump renders internal analysis state for tests and an
// optional trace mode on the driver.
package debugdump

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/binaryen-go/localdse/dse"
	"github.com/binaryen-go/localdse/ir"
)

// Sdump renders v (typically a localgraph snapshot) as a deeply-expanded
// string for diagnostics.
func Sdump(v interface{}) string {
	return spew.Sdump(v)
}

// SdumpStores renders m with its keys in a deterministic order. Go's map
// iteration order is randomized per run, and trace output that reorders
// itself between otherwise-identical runs defeats the point of dumping
// it for comparison.
func SdumpStores(m dse.OptimizableStores) string {
	keys := maps.Keys(m)
	slices.SortFunc(keys, func(a, b ir.Expr) bool {
		return fmt.Sprintf("%p", a) < fmt.Sprintf("%p", b)
	})

	var out strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&out, "%s => %s\n", spew.Sdump(k), spew.Sdump(m[k]))
	}
	return out.String()
}
