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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsInOrder(t *testing.T) {
	loop := New()
	defer loop.Close()

	var got []int
	var wg sync.WaitGroup
	wg.Add(1)
	for i := 1; i <= 5; i++ {
		i := i
		require.NoError(t, loop.Submit(func() { got = append(got, i) }))
	}
	require.NoError(t, loop.Submit(wg.Done))
	wg.Wait()

	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestAfterFuncFires(t *testing.T) {
	loop := New()
	defer loop.Close()

	fired := make(chan time.Time, 1)
	start := time.Now()
	loop.AfterFunc(20*time.Millisecond, func() { fired <- time.Now() })

	select {
	case at := <-fired:
		assert.GreaterOrEqual(t, at.Sub(start), 20*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("the timer never fired")
	}
}

func TestAfterFuncOrder(t *testing.T) {
	loop := New()
	defer loop.Close()

	var mu sync.Mutex
	var got []string
	record := func(s string) func() {
		return func() {
			mu.Lock()
			got = append(got, s)
			mu.Unlock()
		}
	}

	done := make(chan struct{})
	// scheduled out of order on purpose: the heap must fire them by deadline.
	loop.AfterFunc(60*time.Millisecond, func() { record("late")(); close(done) })
	loop.AfterFunc(20*time.Millisecond, record("early"))
	loop.AfterFunc(40*time.Millisecond, record("mid"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("the timers never fired")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"early", "mid", "late"}, got)
}

func TestTimerStop(t *testing.T) {
	loop := New()
	defer loop.Close()

	fired := make(chan struct{})
	tm := loop.AfterFunc(50*time.Millisecond, func() { close(fired) })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop(), "a second Stop must report the timer as spent")

	select {
	case <-fired:
		t.Fatal("a stopped timer fired")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestClose(t *testing.T) {
	loop := New()

	ran := make(chan struct{})
	require.NoError(t, loop.Submit(func() { close(ran) }))
	<-ran

	loop.Close()
	loop.Close() // closing twice is a no-op

	assert.ErrorIs(t, loop.Submit(func() {}), ErrClosed)

	// timers created on a closed loop are born dead.
	tm := loop.AfterFunc(time.Millisecond, func() {
		t.Error("a timer of a closed loop fired")
	})
	assert.False(t, tm.Stop())
	time.Sleep(20 * time.Millisecond)
}

func TestSubmitNilPanics(t *testing.T) {
	loop := New()
	defer loop.Close()

	assert.PanicsWithValue(t, nilCallbackPanicMsg, func() {
		_ = loop.Submit(nil)
	})
	assert.PanicsWithValue(t, nilCallbackPanicMsg, func() {
		loop.AfterFunc(time.Second, nil)
	})
}

func TestFaultHandlerReceivesPanic(t *testing.T) {
	faults := make(chan any, 1)
	loop := New(&Config{
		FaultHandler: func(v any) { faults <- v },
	})
	defer loop.Close()

	require.NoError(t, loop.Submit(func() { panic("boom") }))

	select {
	case v := <-faults:
		assert.Equal(t, "boom", v)
	case <-time.After(2 * time.Second):
		t.Fatal("the fault was never surfaced")
	}

	// the loop survived the panic and keeps serving tasks.
	ran := make(chan struct{})
	require.NoError(t, loop.Submit(func() { close(ran) }))
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("the loop died after a recovered panic")
	}
}
