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

package ir

// Function is an ordered sequence of expression trees with a
// parameter/local table. Locals below VarBase are parameters, initialized
// from arguments; locals at or above VarBase are vars, initialized to
// their type's zero value.
type Function struct {
	Name    string
	Locals  []LocalType
	VarBase int
}

// NumLocals returns the number of parameter and var slots combined.
func (f *Function) NumLocals() int { return len(f.Locals) }

// IsParam reports whether index names a parameter rather than a var.
func (f *Function) IsParam(index int) bool { return index < f.VarBase }

// Global describes a module-level mutable slot addressed by name.
type Global struct {
	Name string
	Type LocalType
}

// Module groups the functions and globals a driver pass runs over.
type Module struct {
	Funcs   []*Function
	Globals []Global
}
