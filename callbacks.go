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

package deferred

// handlerFunc is the boxed form in which all handlers are queued, regardless
// of the shape of the callback they were attached with.
// The vals slice is the payload of whichever resolution episode is current at
// the moment the handler runs, and must not be modified by the handler.
type handlerFunc[T any] interface {
	call(vals []T)
}

type valsHandler[T any] func(vals ...T)
type valHandler[T any] func(val T)

func (cb valsHandler[T]) call(vals []T) {
	cb(vals...)
}
func (cb valHandler[T]) call(vals []T) {
	// a unary callback observes the first payload value, or the zero value
	// of T on an empty payload (like a timeout failure).
	var val T
	if len(vals) != 0 {
		val = vals[0]
	}
	cb(val)
}

// runHandler invokes the handler h with the payload that's current on d at
// the moment of the call, recovering any panic it may cause.
//
// It returns the recovered value and true, if the handler panicked.
func runHandler[T any](d *Deferred[T], h handlerFunc[T]) (v any, faulted bool) {
	defer func() {
		if rv := recover(); rv != nil {
			v, faulted = rv, true
		}
	}()

	// note: d.payload is read here, not at the call site, as a nested
	// Resolve call from a previously drained handler may have replaced it.
	h.call(d.payload)
	return nil, false
}
