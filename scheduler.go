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
	"time"

	"github.com/asmsh/deferred/sched"
)

// Scheduler is the capability a Deferred value consumes from its environment
// to run its timeouts.
// It's the only external collaborator of the Deferred type.
//
// The returned callback must be invoked at most once, after at least duration
// d, on the same logical thread of control that the rest of the Deferred's
// calls run on, unless the returned Timer is stopped first.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is the handle of a callback scheduled through a Scheduler.
type Timer interface {
	// Stop cancels the scheduled callback, and returns whether the
	// cancellation prevented it from running or not.
	// It returns false, if the callback has already run or has already
	// been stopped.
	Stop() bool
}

// TimerScheduler is a Scheduler that schedules callbacks directly through
// time.AfterFunc.
// It's the Scheduler used when no other Scheduler is configured.
//
// Note that time.AfterFunc runs the callback on its own goroutine, so it
// preserves the Deferred's single-threaded model only if the embedding code
// does its own serialization.
// When in doubt, use a LoopScheduler instead.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return goTimer{t: time.AfterFunc(d, fn)}
}

type goTimer struct{ t *time.Timer }

func (gt goTimer) Stop() bool { return gt.t.Stop() }

// LoopScheduler is a Scheduler that schedules callbacks on a sched.Loop, so
// that timeouts run on the loop goroutine, serialized with every other call
// submitted to that loop.
type LoopScheduler struct {
	Loop *sched.Loop
}

func (s LoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return s.Loop.AfterFunc(d, fn)
}

// defScheduler is used for scheduling timeouts on Deferred values that have
// no Scheduler configured.
var defScheduler Scheduler = TimerScheduler{}
