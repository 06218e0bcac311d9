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

// Package deferred provides a lightweight, lock-free deferred result
// primitive for single-threaded cooperative schedulers.
//
// A Deferred represents the eventual outcome of an asynchronous operation,
// success or failure, along with the payload values associated with that
// outcome.
// Interested parties attach reaction handlers to it at any point, before or
// after the outcome is known, and the operation's initiator resolves it once
// the outcome is known, or schedules a timeout that resolves it to Failed.
//
// A Deferred has three states, and it can be in only one of them, at any time:
// Pending: the operation that corresponds to this Deferred has not finished.
// Succeeded: the most recent resolution episode assigned a success outcome.
// Failed: the most recent resolution episode assigned a failure outcome.
//
//
// Resolution and Re-Resolution:-
//
// * Resolving assigns the new state and payload, then drains the handler
// queue matching the outcome, synchronously, in attachment(FIFO) order,
// removing each handler from its queue immediately before invoking it.
//
// * Resolve doesn't return before every handler reachable by its drain has
// finished executing.
//
// * Resolving is allowed at any time, including on an already resolved
// Deferred (which re-fires the newly selected handler queue), and including
// from inside a handler that's currently being drained. A nested Resolve
// call runs its own full drain to completion before the outer drain
// continues over what remains of its own queue, so no handler is ever
// delivered twice within the episode it was queued for.
//
// * Handlers observe the payload that's current at the moment they run, not
// the one that was current when the drain started, so across nested
// resolution episodes, the last assigned payload wins.
//
// * Attaching a handler for the outcome the Deferred is currently resolved
// to invokes it immediately, synchronously, inline with the attaching call.
// Attaching a handler for the opposite outcome leaves it queued, untouched,
// until or unless a future resolution selects it.
//
//
// Concurrency Notes:-
//
// * The Deferred type is built for a single-threaded cooperative scheduling
// model: all calls on one Deferred value must happen on one logical thread
// of control, and no internal locking exists (or is needed).
//
// * Correctness under re-entrancy rests on run-to-completion drains and
// pop-front queue iteration, not on mutual exclusion.
//
// * The sched subpackage provides a single-goroutine scheduler that external
// collaborators (running on other goroutines) can submit resolutions to, and
// that timeouts can be scheduled on, to uphold this model.
//
//
// Fault Notes:-
//
// * A panic inside a handler doesn't prevent the remaining handlers of the
// same drain episode from running: the panic is recovered and wrapped in a
// *HandlerFault, and the episode's faults are aggregated and surfaced, after
// the drain finishes, to the configured FaultHandler, or to the configured
// Logger if no FaultHandler is set.
//
// * If neither is configured, the drain panics with an *UncaughtFault once
// it finishes, so that handler bugs don't silently vanish.
//
// * A Deferred that's never resolved and has no timeout scheduled simply
// never runs its handlers; the package can't detect that, it's a bug in the
// initiating code.
package deferred
