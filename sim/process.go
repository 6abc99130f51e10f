package sim

import "fmt"

// Process is a unit of simulation logic re-entered by the Engine.
// Resume runs until the process either suspends (Engine.Hold,
// Engine.Passivate, or a Pool.Request that cannot be granted) or returns
// without suspending, which terminates it.
type Process interface {
	Resume(eng *Engine, h *Handle)
}

// ProcessState is the lifecycle state of a process.
type ProcessState int

const (
	StateSuspended ProcessState = iota
	StateRunning
	StateTerminated
)

func (s ProcessState) String() string {
	switch s {
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("ProcessState(%d)", int(s))
	}
}

// Handle is the engine's reference to a spawned process.
type Handle struct {
	id      int64
	name    string
	proc    Process
	state   ProcessState
	pending bool // a wake-up event for this handle is in the queue
}

// ID returns the spawn-order identifier of the process.
func (h *Handle) ID() int64 { return h.id }

// Name returns the label given at spawn time.
func (h *Handle) Name() string { return h.name }

// State returns the current lifecycle state.
func (h *Handle) State() ProcessState { return h.state }

func (h *Handle) String() string {
	return fmt.Sprintf("%s#%d(%s)", h.name, h.id, h.state)
}
