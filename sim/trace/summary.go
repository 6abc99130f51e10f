package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalGrants     int
	ImmediateGrants int
	QueuedGrants    int
	MaxQueueDepth   int
	MeanQueueDepth  float64 // mean depth observed at grant time
	MeanQueuedWait  float64 // mean wait over queued grants only
	MaxWait         float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil || len(st.Grants) == 0 {
		return summary
	}

	summary.TotalGrants = len(st.Grants)
	depthSum := 0
	queuedWait := 0.0
	for _, g := range st.Grants {
		if g.Immediate {
			summary.ImmediateGrants++
		} else {
			summary.QueuedGrants++
			queuedWait += g.Wait()
		}
		depthSum += g.QueueDepth
		if g.QueueDepth > summary.MaxQueueDepth {
			summary.MaxQueueDepth = g.QueueDepth
		}
		if w := g.Wait(); w > summary.MaxWait {
			summary.MaxWait = w
		}
	}
	summary.MeanQueueDepth = float64(depthSum) / float64(summary.TotalGrants)
	if summary.QueuedGrants > 0 {
		summary.MeanQueuedWait = queuedWait / float64(summary.QueuedGrants)
	}
	return summary
}
