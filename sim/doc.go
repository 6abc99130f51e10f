// Package sim provides the discrete-event simulation engine for queueing
// networks.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: Event and the (time, sequence)-ordered EventQueue
//   - engine.go: the cooperative scheduler that advances the virtual clock
//     and resumes processes one at a time
//   - resource.go: the server pool, its waiters and capacity tokens
//   - job.go: the arrival generator and job lifecycle processes
//   - simulation.go: wiring one queueing model onto a fresh engine
//
// # Processes
//
// Processes are explicit state machines. The engine calls Resume; the
// process runs until it suspends through Engine.Hold (timed wake-up),
// through a Pool.Request that cannot be granted, or returns, which
// terminates it. A grant wakes the waiting process with a zero-delay event,
// so equal-time events always run in the order they were scheduled.
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - Process: simulation logic re-entered by the engine
//   - AdmissionPolicy: choose the waiter that receives a freed server
//   - Distribution: service and inter-arrival time families (M, D, C)
//   - Source: the injected random-variate generator
//
// Sub-packages:
//   - sim/theory/: closed-form queueing results used for validation
//   - sim/experiment/: replications and utilization sweeps
//   - sim/trace/: grant-decision trace recording
package sim
