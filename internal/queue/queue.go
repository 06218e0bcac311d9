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

// Package queue holds the FIFO queue used for storing the deferred's queued
// handlers.
//
// The queue is iterated only by repeatedly popping its front element, never
// through a fixed-length view, so it stays consistent when a popped element's
// execution pushes new elements or pops the remaining ones (the deferred's
// re-entrant resolution case).
//
// It's not safe for concurrent use, matching the single-threaded model of
// its only user.
package queue

// Queue is a FIFO queue of T values.
//
// The zero value is an empty, ready to use queue.
type Queue[T any] struct {
	// items is the backing slice. the front of the queue is items[head].
	items []T
	head  int
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}

// Empty returns true, only if no values are currently queued.
func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}

// PushBack appends v to the back of the queue.
func (q *Queue[T]) PushBack(v T) {
	q.items = append(q.items, v)
}

// PopFront removes and returns the front value of the queue.
// It returns the zero value of T and false, if the queue is empty.
func (q *Queue[T]) PopFront() (v T, ok bool) {
	if q.Empty() {
		return v, false
	}

	v = q.items[q.head]

	// clear the popped slot, so the queue doesn't keep the value reachable.
	var zero T
	q.items[q.head] = zero
	q.head++

	// reset the backing slice once it's fully consumed, so that the space
	// before the head index can be reused by later pushes.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return v, true
}
