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

// Package sched provides a minimal single-goroutine cooperative scheduler.
//
// A Loop runs submitted callbacks and scheduled one-shot timers on one
// goroutine, run-to-completion, in submission order.
// It exists so that code built on a single-threaded model, like the deferred
// package's Deferred type, has one logical thread of control to live on,
// while collaborators on other goroutines marshal calls onto it via Submit.
//
// It's deliberately not an I/O reactor: it knows nothing about file
// descriptors, network readiness, or polling. Callbacks and timers only.
package sched

import (
	"container/heap"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
)

// ErrClosed is returned by Submit when the loop has been closed.
var ErrClosed = errors.New("sched: the loop is closed")

const nilCallbackPanicMsg = "sched: the provided callback is nil"

// Config configures a Loop's behavior.
type Config struct {
	// FaultHandler receives the value of any panic recovered from a
	// callback run by the loop, the loop's top-level fault channel.
	FaultHandler func(v any)

	// Logger receives recovered callback panics, only if no FaultHandler
	// is set.
	// The logr.Logger zero value is treated as no logger at all.
	//
	// If neither FaultHandler nor Logger is set, recovered panics are
	// written to the standard logger, never swallowed, and never allowed
	// to kill the loop goroutine.
	Logger logr.Logger
}

// Loop is a single-goroutine cooperative scheduler.
//
// All callbacks, submitted or scheduled, run on the loop goroutine, one at a
// time, to completion. A callback that blocks, blocks the whole loop.
type Loop struct {
	tasks   chan func()
	done    chan struct{}
	stopped chan struct{}
	closed  atomic.Bool

	// timers is owned exclusively by the loop goroutine.
	// other goroutines reach it only through tasks.
	timers timerHeap

	faultHandler func(v any)
	logger       logr.Logger
	loggerSet    bool
}

// ingressSize is the capacity of the loop's task channel.
// Submit blocks once this many callbacks are waiting to run.
const ingressSize = 128

// New returns a new Loop, configured with the provided Config, c, if any,
// and starts its goroutine.
//
// The returned Loop must be released with Close once it's no longer needed.
func New(c ...*Config) *Loop {
	l := &Loop{
		tasks:   make(chan func(), ingressSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	if len(c) != 0 && c[0] != nil {
		if cb := c[0].FaultHandler; cb != nil {
			l.faultHandler = cb
		}
		if logger := c[0].Logger; logger.GetSink() != nil {
			l.logger = logger
			l.loggerSet = true
		}
	}

	go l.run()
	return l
}

// Submit queues the callback fn to run on the loop goroutine, after all
// previously submitted callbacks.
// It's safe to call from any goroutine, including from a callback that's
// currently running on the loop (though such a call may block if the loop's
// ingress buffer is full).
//
// It returns ErrClosed, if the loop is closed before or while queueing.
//
// It will panic if a nil callback is passed.
func (l *Loop) Submit(fn func()) error {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	if l.closed.Load() {
		return ErrClosed
	}

	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

// AfterFunc schedules the callback fn to run on the loop goroutine after at
// least duration d.
// It's safe to call from any goroutine.
//
// The returned Timer can stop the callback before it runs.
// If the loop is already closed, the returned Timer is dead: it never fires,
// and its Stop returns false.
//
// It will panic if a nil callback is passed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}

	t := &Timer{fn: fn, when: time.Now().Add(d)}
	if err := l.Submit(func() { heap.Push(&l.timers, t) }); err != nil {
		t.state.Store(timerStopped)
	}
	return t
}

// Close stops the loop and waits for its goroutine to return.
// Callbacks still queued, and timers that haven't fired, are dropped.
// It's safe to call multiple times, and from any goroutine other than the
// loop's own.
func (l *Loop) Close() {
	if l.closed.CompareAndSwap(false, true) {
		close(l.done)
	}
	<-l.stopped
}

func (l *Loop) run() {
	defer close(l.stopped)

	// the wakeup timer is reused across iterations, armed only while some
	// scheduled timer is pending.
	wakeup := time.NewTimer(time.Hour)
	defer wakeup.Stop()
	stopWakeup := func() {
		if !wakeup.Stop() {
			select {
			case <-wakeup.C:
			default:
			}
		}
	}
	stopWakeup()

	for {
		next, ok := l.fireDue()

		var wakeC <-chan time.Time
		stopWakeup()
		if ok {
			wakeup.Reset(time.Until(next))
			wakeC = wakeup.C
		}

		select {
		case <-l.done:
			return
		case fn := <-l.tasks:
			l.exec(fn)
		case <-wakeC:
			// fall through to fire the now-due timers.
		}
	}
}

// fireDue pops and runs every timer that's due, skipping stopped ones, and
// returns the deadline of the earliest timer still pending, if any.
// It must run on the loop goroutine.
func (l *Loop) fireDue() (next time.Time, ok bool) {
	now := time.Now()
	for l.timers.Len() > 0 {
		t := l.timers[0]
		if t.state.Load() == timerStopped {
			heap.Pop(&l.timers)
			continue
		}
		if t.when.After(now) {
			return t.when, true
		}

		heap.Pop(&l.timers)
		if t.state.CompareAndSwap(timerPending, timerFired) {
			l.exec(t.fn)
			// the callback may have taken a while; re-read the clock so
			// later timers aren't fired early.
			now = time.Now()
		}
	}
	return time.Time{}, false
}

// exec runs a single callback, recovering any panic it may cause, so that
// one faulty callback can't kill the loop goroutine.
func (l *Loop) exec(fn func()) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if l.faultHandler != nil {
			l.faultHandler(v)
			return
		}
		if l.loggerSet {
			l.logger.Error(fmt.Errorf("%v", v), "sched: recovered panic in a callback")
			return
		}
		log.Printf("sched: recovered panic in a callback: %v", v)
	}()

	fn()
}
