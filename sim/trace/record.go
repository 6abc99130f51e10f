// Package trace provides grant-decision recording for admission policy analysis.
// It has no dependencies on sim/ and stores plain data types.
package trace

// GrantRecord captures a single server grant made by a resource pool.
type GrantRecord struct {
	ProcessID   int64    // spawn id of the process that received the server
	RequestedAt float64  // virtual time of the request
	GrantedAt   float64  // virtual time of the grant
	PriorityKey *float64 // admission key used (nil under FIFO)
	QueueDepth  int      // requests still waiting right after the grant
	Immediate   bool     // true when granted without queueing
}

// Wait returns the time the request spent queued.
func (g GrantRecord) Wait() float64 {
	return g.GrantedAt - g.RequestedAt
}
