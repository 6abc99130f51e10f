// Tracks run-wide counters and time-averaged pool statistics.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about one simulation run
// for final reporting.
type Metrics struct {
	Arrivals        int64   `json:"arrivals"`          // jobs spawned
	Started         int64   `json:"started"`           // jobs granted a server
	Completed       int64   `json:"completed"`         // jobs that released their server
	Utilization     float64 `json:"utilization"`       // time-averaged busy fraction of servers
	MeanQueueLength float64 `json:"mean_queue_length"` // time-averaged number of waiters
	Horizon         float64 `json:"horizon"`
	Events          int64   `json:"events"`
}

// Print writes the metrics and, when available, the wait summary to w.
func (m *Metrics) Print(w io.Writer, waits *WaitSummary) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Horizon              : %.2f\n", m.Horizon)
	fmt.Fprintf(w, "Events Executed      : %d\n", m.Events)
	fmt.Fprintf(w, "Arrivals             : %d\n", m.Arrivals)
	fmt.Fprintf(w, "Started Service      : %d\n", m.Started)
	fmt.Fprintf(w, "Completed            : %d\n", m.Completed)
	fmt.Fprintf(w, "Server Utilization   : %.4f\n", m.Utilization)
	fmt.Fprintf(w, "Mean Queue Length    : %.4f\n", m.MeanQueueLength)
	if waits == nil {
		fmt.Fprintln(w, "Wait Time            : no samples")
		return
	}
	fmt.Fprintf(w, "Mean Wait            : %.4f ± %.4f\n", waits.Mean, waits.CI95)
	fmt.Fprintf(w, "Wait StdDev          : %.4f\n", waits.StdDev)
	fmt.Fprintf(w, "Wait P50/P95/P99     : %.4f / %.4f / %.4f\n", waits.P50, waits.P95, waits.P99)
	fmt.Fprintf(w, "Max Wait             : %.4f\n", waits.Max)
}
