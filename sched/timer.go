// Copyright 2024 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sched

import (
	"sync/atomic"
	"time"
)

// the timer's lifecycle values.
// a timer moves from timerPending to exactly one of the other two values.
const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

// Timer is the handle of a callback scheduled through Loop.AfterFunc.
type Timer struct {
	fn   func()
	when time.Time

	// state is the only field shared across goroutines: Stop may be called
	// from anywhere, while fn fires on the loop goroutine.
	state atomic.Int32
}

// Stop cancels the scheduled callback, and returns whether the cancellation
// prevented it from running or not.
// It returns false, if the callback has already run, or if the timer has
// already been stopped.
// It's safe to call from any goroutine, and multiple times.
//
// The timer's entry is dropped lazily by the loop; Stop only marks it.
func (t *Timer) Stop() bool {
	return t.state.CompareAndSwap(timerPending, timerStopped)
}

// timerHeap is a min-heap of timers, ordered by deadline.
// It's owned exclusively by the loop goroutine, and implements
// container/heap.Interface.
type timerHeap []*Timer

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].when.Before(h[j].when) }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(v any) {
	*h = append(*h, v.(*Timer))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
