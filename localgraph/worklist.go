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
	"github.com/oleiade/lane"

	"github.com/binaryen-go/localdse/cfgwalk"
)

// blockWorklist is the fixed-point worklist the local graph's forward
// flow drains to convergence. It never holds the same block twice at
// once, matching the lane.Queue-backed worklists used elsewhere in this
// core, so a block already pending a re-visit is not re-queued.
type blockWorklist struct {
	q      *lane.Queue
	queued map[int]bool
}

func newBlockWorklist(cfg *cfgwalk.CFG) *blockWorklist {
	return &blockWorklist{
		q:      lane.NewQueue(),
		queued: make(map[int]bool, len(cfg.Blocks)),
	}
}

func (w *blockWorklist) push(bb *cfgwalk.BasicBlock) {
	if w.queued[bb.ID] {
		return
	}
	w.queued[bb.ID] = true
	w.q.Enqueue(bb)
}

func (w *blockWorklist) pop() (*cfgwalk.BasicBlock, bool) {
	if w.q.Empty() {
		return nil, false
	}
	bb := w.q.Dequeue().(*cfgwalk.BasicBlock)
	w.queued[bb.ID] = false
	return bb, true
}
