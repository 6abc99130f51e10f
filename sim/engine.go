package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Engine is the cooperative process scheduler. It owns the virtual clock and
// the event queue and runs exactly one process at a time.
//
// Thread-safety: NOT thread-safe. An Engine, and every Pool bound to it, must
// be driven from a single goroutine.
type Engine struct {
	clock   float64
	queue   *EventQueue
	nextPID int64
	running *Handle
	ran     bool

	executed int64
}

// NewEngine creates an engine with its clock at zero.
func NewEngine() *Engine {
	return &Engine{queue: NewEventQueue()}
}

// Now returns the current virtual time.
func (e *Engine) Now() float64 { return e.clock }

// Executed returns the number of events run so far.
func (e *Engine) Executed() int64 { return e.executed }

// Pending returns the number of events waiting in the queue.
func (e *Engine) Pending() int { return e.queue.Len() }

// Spawn registers p and schedules its first Resume at the current time.
func (e *Engine) Spawn(name string, p Process) *Handle {
	if p == nil {
		panic("Spawn: process must not be nil")
	}
	h := &Handle{id: e.nextPID, name: name, proc: p, state: StateSuspended}
	e.nextPID++
	e.wake(0, nil, h)
	return h
}

// Schedule inserts a wake-up for h at Now()+delay.
// Returns ErrInvalidDelay for negative or NaN delays. A handle may hold at
// most one pending wake-up; violating that, or waking a terminated process,
// panics.
func (e *Engine) Schedule(delay float64, key *float64, h *Handle) (EventID, error) {
	if delay < 0 || math.IsNaN(delay) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDelay, delay)
	}
	if h == nil {
		panic("Schedule: handle must not be nil")
	}
	if h.state == StateTerminated {
		panic(fmt.Errorf("%w: %s is terminated", ErrNotSuspended, h))
	}
	if h.pending {
		panic(fmt.Errorf("%w: %s", ErrDoubleWakeup, h))
	}
	h.pending = true
	// A running process that schedules its own wake-up suspends on return.
	h.state = StateSuspended
	return e.queue.Schedule(e.clock+delay, key, h), nil
}

// Hold suspends the running process h for delay units of virtual time.
func (e *Engine) Hold(h *Handle, delay float64) {
	e.mustBeRunning(h, "Hold")
	e.wake(delay, nil, h)
}

// Passivate suspends the running process h with no wake-up scheduled.
// Some other process must later Schedule it (a resource grant).
func (e *Engine) Passivate(h *Handle) {
	e.mustBeRunning(h, "Passivate")
	h.state = StateSuspended
}

func (e *Engine) wake(delay float64, key *float64, h *Handle) {
	if _, err := e.Schedule(delay, key, h); err != nil {
		panic(err)
	}
}

func (e *Engine) mustBeRunning(h *Handle, op string) {
	if h == nil || h != e.running || h.state != StateRunning {
		panic(fmt.Sprintf("%s: %v is not the running process", op, h))
	}
}

// Run executes events in (time, sequence) order until the queue empties or
// the next event lies beyond horizon. Events past the horizon are discarded;
// the clock finishes at horizon. An Engine runs once.
func (e *Engine) Run(horizon float64) error {
	if horizon < 0 || math.IsNaN(horizon) {
		return fmt.Errorf("%w: %v", ErrInvalidHorizon, horizon)
	}
	if e.ran {
		return ErrAlreadyRun
	}
	e.ran = true
	logrus.Infof("[t=%.4f] Starting run, horizon=%.4f, %d pending events", e.clock, horizon, e.queue.Len())

	for {
		next, ok := e.queue.PeekTime()
		if !ok {
			break
		}
		if next > horizon {
			logrus.Debugf("[t=%.4f] Discarding %d events beyond horizon", e.clock, e.queue.Len())
			e.queue.Clear()
			break
		}
		ev := e.queue.PopNext()
		if ev.Time < e.clock {
			panic(fmt.Errorf("%w: event at %v, clock %v", ErrTimeTravel, ev.Time, e.clock))
		}
		e.clock = ev.Time
		e.resume(ev)
	}

	if horizon > e.clock && !math.IsInf(horizon, 1) {
		e.clock = horizon
	}
	logrus.Infof("[t=%.4f] Run ended after %d events", e.clock, e.executed)
	return nil
}

func (e *Engine) resume(ev *Event) {
	h := ev.Handle
	if h.state != StateSuspended || !h.pending {
		panic(fmt.Errorf("%w: %s", ErrNotSuspended, h))
	}
	logrus.Debugf("[t=%.4f] Resuming %s (event %d)", e.clock, h, ev.Seq)
	h.pending = false
	h.state = StateRunning
	e.running = h
	e.executed++

	h.proc.Resume(e, h)

	e.running = nil
	if h.state == StateRunning {
		h.state = StateTerminated
		logrus.Debugf("[t=%.4f] %s terminated", e.clock, h)
	}
}
