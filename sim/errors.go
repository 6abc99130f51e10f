package sim

import "errors"

// Construction and validation errors. Callers match them with errors.Is.
var (
	ErrInvalidDelay        = errors.New("invalid delay")
	ErrInvalidCapacity     = errors.New("invalid capacity")
	ErrInvalidRate         = errors.New("invalid rate")
	ErrInvalidHorizon      = errors.New("invalid horizon")
	ErrUnknownPolicy       = errors.New("unknown admission policy")
	ErrUnknownDistribution = errors.New("unknown distribution")
	ErrEmptyStatistics     = errors.New("no wait samples recorded")
	ErrAlreadyRun          = errors.New("engine already run")
)

// Contract violations. These indicate a bug in a process or in the engine
// itself and are raised through panic, never returned.
var (
	ErrDoubleRelease = errors.New("capacity token released twice")
	ErrForeignToken  = errors.New("capacity token belongs to another pool")
	ErrNotSuspended  = errors.New("resumed process is not suspended")
	ErrDoubleWakeup  = errors.New("process already has a pending wake-up")
	ErrTimeTravel    = errors.New("event scheduled before current time")
)
