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

import (
	"github.com/hashicorp/go-multierror"

	"github.com/asmsh/deferred/internal/queue"
)

// Deferred represents the eventual outcome, success or failure, of an
// asynchronous operation, plus the payload values associated with that
// outcome.
// Reactions to the outcome are attached through OnSuccess and OnFailure,
// before or after the outcome is known, and the outcome is assigned through
// Resolve (or the Succeed and Fail shorthands), possibly more than once.
//
// The zero value is a usable, Pending Deferred with the default Config.
//
// A Deferred value is not safe for concurrent use.
// All of its methods must run on one logical thread of control, typically
// the goroutine of the sched.Loop that its timeouts are scheduled on.
// Re-entrant calls, like a handler resolving or attaching on the Deferred
// that's currently draining it, are safe.
type Deferred[T any] struct {
	core *deferredCore

	// status and payload describe the current resolution episode.
	// payload is replaced wholesale by each Resolve call, so a handler
	// always observes the payload that's current at the moment it runs.
	status  State
	payload []T

	// the queued reactions, one queue per outcome.
	// a handler is popped off its queue immediately before it runs, so it
	// can never run twice within the episode it was queued for, and so the
	// queues stay consistent under re-entrant mutation.
	successQ queue.Queue[handlerFunc[T]]
	failureQ queue.Queue[handlerFunc[T]]

	// timeout is the handle of the pending scheduled timeout, if any.
	// it's stopped and cleared by each Resolve call, and replaced by each
	// ScheduleTimeout call.
	timeout Timer
}

// State returns the state of the current resolution episode.
func (d *Deferred[T]) State() State {
	return d.status
}

// Payload returns a copy of the payload of the current resolution episode.
// It returns nil while the Deferred is Pending, or when the current episode
// carries an empty payload (like a timeout failure).
func (d *Deferred[T]) Payload() []T {
	if len(d.payload) == 0 {
		return nil
	}
	vals := make([]T, len(d.payload))
	copy(vals, d.payload)
	return vals
}

// OnSuccess attaches the callback cb as a reaction to a success outcome.
//
// If the Deferred is Pending, cb is queued until a Resolve call selects the
// success queue.
// If it's already Succeeded, cb is invoked with the current payload,
// synchronously, before OnSuccess returns.
// If it's currently Failed, cb stays queued, and only runs if a future
// Resolve call re-resolves the Deferred to Succeeded.
//
// It will panic if a nil callback is passed.
func (d *Deferred[T]) OnSuccess(cb func(vals ...T)) {
	if cb == nil {
		panic(nilCallbackPanicMsg)
	}
	d.attach(Succeeded, valsHandler[T](cb))
}

// OnSuccessVal is like OnSuccess, for callbacks that only care about the
// first payload value.
// The callback is passed the zero value of T, if the payload is empty.
//
// It will panic if a nil callback is passed.
func (d *Deferred[T]) OnSuccessVal(cb func(val T)) {
	if cb == nil {
		panic(nilCallbackPanicMsg)
	}
	d.attach(Succeeded, valHandler[T](cb))
}

// OnFailure attaches the callback cb as a reaction to a failure outcome.
// It behaves like OnSuccess, with Succeeded and Failed swapped.
//
// It will panic if a nil callback is passed.
func (d *Deferred[T]) OnFailure(cb func(vals ...T)) {
	if cb == nil {
		panic(nilCallbackPanicMsg)
	}
	d.attach(Failed, valsHandler[T](cb))
}

// OnFailureVal is like OnFailure, for callbacks that only care about the
// first payload value.
// The callback is passed the zero value of T, if the payload is empty,
// which is always the case for timeout failures.
//
// It will panic if a nil callback is passed.
func (d *Deferred[T]) OnFailureVal(cb func(val T)) {
	if cb == nil {
		panic(nilCallbackPanicMsg)
	}
	d.attach(Failed, valHandler[T](cb))
}

// Resolve assigns the outcome and the payload of a new resolution episode,
// then drains the handler queue matching the outcome, in attachment order,
// invoking each handler with the payload that's current at the moment it
// runs.
// It doesn't return before every handler reachable this way has run.
//
// Resolve can be called at any time: on a Pending Deferred, on an already
// resolved one (re-resolution, which re-fires the newly selected queue), and
// from inside a handler that a previous Resolve call is currently draining.
// In the re-entrant case, the nested call runs its own full drain to
// completion before control returns to the outer one, and the outer drain
// then continues over whatever remains of its own queue.
//
// Any pending timeout is cancelled before the outcome is assigned.
//
// It will panic if outcome is neither Succeeded nor Failed.
func (d *Deferred[T]) Resolve(outcome State, vals ...T) {
	if outcome != Succeeded && outcome != Failed {
		panic(invalidOutcomePanicMsg)
	}

	d.cancelTimeout()

	// the new status and payload are assigned strictly before any handler
	// is invoked.
	d.status = outcome
	d.payload = vals

	d.drain(outcome)
}

// Succeed is shorthand for Resolve(Succeeded, vals...).
func (d *Deferred[T]) Succeed(vals ...T) {
	d.Resolve(Succeeded, vals...)
}

// Fail is shorthand for Resolve(Failed, vals...).
func (d *Deferred[T]) Fail(vals ...T) {
	d.Resolve(Failed, vals...)
}

func (d *Deferred[T]) queueOf(outcome State) *queue.Queue[handlerFunc[T]] {
	if outcome == Succeeded {
		return &d.successQ
	}
	return &d.failureQ
}

// attach queues the handler h for the given outcome, or runs it immediately
// if that outcome is the current status.
func (d *Deferred[T]) attach(outcome State, h handlerFunc[T]) {
	if d.status == outcome {
		d.runInline(h)
		return
	}

	// Pending, or resolved to the opposite outcome: stay queued, untouched,
	// until or unless a future Resolve call selects this queue.
	d.queueOf(outcome).PushBack(h)
}

// runInline runs a single handler outside of a drain loop, which happens
// when a handler is attached for the outcome the Deferred is already
// resolved to.
func (d *Deferred[T]) runInline(h handlerFunc[T]) {
	if v, faulted := runHandler(d, h); faulted {
		d.core.surface(multierror.Append(nil, newHandlerFault(v)))
	}
}

// drain consumes the handler queue matching outcome, in FIFO order, removing
// each handler immediately before invoking it.
//
// Iteration happens by repeatedly popping the front of the live queue, never
// over a snapshot, so the queue tolerates being drained or appended to by
// nested Resolve or attach calls made from inside a handler:
//   - a nested Resolve with the same outcome empties this same queue, so the
//     outer loop finds it empty and stops, without re-processing anything.
//   - a nested Resolve with the opposite outcome drains the other queue to
//     completion, then the outer loop continues over what remains of its own
//     queue, delivering the now-current payload (last call wins).
//
// A handler panic doesn't stop the drain: it's recovered, and the faults of
// the episode are surfaced through the configured fault policy after the
// loop finishes.
func (d *Deferred[T]) drain(outcome State) {
	q := d.queueOf(outcome)

	var faults *multierror.Error
	for {
		h, ok := q.PopFront()
		if !ok {
			break
		}
		if v, faulted := runHandler(d, h); faulted {
			faults = multierror.Append(faults, newHandlerFault(v))
		}
	}

	if faults != nil {
		d.core.surface(faults)
	}
}
