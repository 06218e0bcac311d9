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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asmsh/deferred/sched"
)

// With a LoopScheduler, the timeout callback, and hence the whole failure
// drain, runs on the loop goroutine, so handlers and Resolve calls submitted
// through the same loop never race with it.
func TestLoopSchedulerTimeout(t *testing.T) {
	loop := sched.New()
	defer loop.Close()

	d := New[string](&Config{Scheduler: LoopScheduler{Loop: loop}})

	fired := make(chan []string, 1)
	d.OnFailure(func(vals ...string) { fired <- vals })

	require.NoError(t, loop.Submit(func() {
		d.ScheduleTimeout(10 * time.Millisecond)
	}))

	select {
	case vals := <-fired:
		assert.Empty(t, vals)
	case <-time.After(2 * time.Second):
		t.Fatal("the timeout never fired")
	}

	state := make(chan State, 1)
	require.NoError(t, loop.Submit(func() { state <- d.State() }))
	assert.Equal(t, Failed, <-state)
}

func TestLoopSchedulerResolveBeatsTimeout(t *testing.T) {
	loop := sched.New()
	defer loop.Close()

	d := New[int](&Config{Scheduler: LoopScheduler{Loop: loop}})

	failures := make(chan struct{}, 1)
	successes := make(chan int, 1)
	d.OnFailure(func(vals ...int) { failures <- struct{}{} })
	d.OnSuccessVal(func(val int) { successes <- val })

	require.NoError(t, loop.Submit(func() {
		d.ScheduleTimeout(time.Minute)
		d.Succeed(42)
	}))

	select {
	case got := <-successes:
		assert.Equal(t, 42, got)
	case <-time.After(2 * time.Second):
		t.Fatal("the success drain never happened")
	}

	select {
	case <-failures:
		t.Fatal("the stopped timeout still fired")
	case <-time.After(50 * time.Millisecond):
	}
}
