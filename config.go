package deferred

import (
	"github.com/go-logr/logr"
)

// Config configures the behavior of the Deferred values created with it.
type Config struct {
	// Scheduler runs the one-shot timeout callbacks scheduled through
	// ScheduleTimeout.
	// If it's nil, a TimerScheduler is used.
	Scheduler Scheduler

	// FaultHandler receives the faults of each drain episode, after all of
	// the episode's handlers have run.
	// The error passed is an aggregate which wraps one *HandlerFault value
	// per handler that panicked during the episode.
	FaultHandler func(err error)

	// Logger receives the faults of each drain episode, only if no
	// FaultHandler is set.
	// The logr.Logger zero value is treated as no logger at all.
	//
	// If neither FaultHandler nor Logger is set, a drain episode with faults
	// panics with an *UncaughtFault error once all of its handlers have run,
	// so that handler bugs don't go unnoticed.
	Logger logr.Logger
}

// deferredCore holds the resolved configuration shared by the operations of
// a Deferred value.
// All of its methods work on a nil receiver, which represents the default
// configuration, so the Deferred zero value stays usable.
type deferredCore struct {
	scheduler    Scheduler
	faultHandler func(err error)
	logger       logr.Logger
	loggerSet    bool
}

func newCore(c []*Config) *deferredCore {
	if len(c) == 0 || c[0] == nil {
		return nil
	}

	core := &deferredCore{}
	if s := c[0].Scheduler; s != nil {
		core.scheduler = s
	}
	if cb := c[0].FaultHandler; cb != nil {
		core.faultHandler = cb
	}
	if logger := c[0].Logger; logger.GetSink() != nil {
		core.logger = logger
		core.loggerSet = true
	}
	return core
}

// timeoutScheduler returns the Scheduler to schedule timeouts on.
func (dc *deferredCore) timeoutScheduler() Scheduler {
	if dc != nil && dc.scheduler != nil {
		return dc.scheduler
	}
	return defScheduler
}

// surface delivers the faults of a finished drain episode, err, according
// to the configured fault policy.
func (dc *deferredCore) surface(err error) {
	if dc != nil {
		if dc.faultHandler != nil {
			dc.faultHandler(err)
			return
		}
		if dc.loggerSet {
			dc.logger.Error(err, "deferred: faults in drain episode")
			return
		}
	}
	panic(newUncaughtFault(err))
}
