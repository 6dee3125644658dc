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

package dse

import (
	"github.com/oleiade/lane"

	"github.com/binaryen-go/localdse/cfgwalk"
)

// scanTask is one pending scan of a block for a single store, starting
// at the given index into that block's relevant list.
type scanTask struct {
	block *cfgwalk.BasicBlock
	start int
}

// scanWorklist is the per-store deferred worklist of blocks-to-scan; the
// caller is responsible for never pushing a block already visited for
// this store, which is what keeps the scan non-repeating. Backed by
// lane.Queue, for the same worklist-driven traversal shape used
// elsewhere in this core.
type scanWorklist struct {
	q *lane.Queue
}

func newScanWorklist() *scanWorklist {
	return &scanWorklist{q: lane.NewQueue()}
}

func (w *scanWorklist) push(t scanTask) {
	w.q.Enqueue(t)
}

func (w *scanWorklist) pop() (scanTask, bool) {
	if w.q.Empty() {
		return scanTask{}, false
	}
	return w.q.Dequeue().(scanTask), true
}
