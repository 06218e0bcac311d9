package deferred

import "time"

// ScheduleTimeout schedules, through the configured Scheduler, a one-shot
// callback after at least duration dur, that resolves the Deferred to Failed
// with an empty payload, unless a resolution happens first.
//
// At most one timeout is active at a time: scheduling a new one stops and
// replaces any prior one, and any Resolve call (including the timeout itself
// firing) stops the active one.
//
// A timeout failure is indistinguishable, at the handler level, from an
// explicit Fail call with no payload values.
func (d *Deferred[T]) ScheduleTimeout(dur time.Duration) {
	d.cancelTimeout()

	var t Timer
	t = d.core.timeoutScheduler().AfterFunc(dur, func() {
		// the handle is spent once the callback runs: clear it first, so
		// the Fail call below doesn't try to stop it.
		if d.timeout == t {
			d.timeout = nil
		}
		d.Fail()
	})
	d.timeout = t
}

// cancelTimeout stops and clears the active timeout, if any.
func (d *Deferred[T]) cancelTimeout() {
	if d.timeout != nil {
		d.timeout.Stop()
		d.timeout = nil
	}
}
