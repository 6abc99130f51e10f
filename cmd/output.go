package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim/experiment"
	"github.com/rugbym/Stochastic-simulation-assignment2/sim/trace"
)

// writeJSON writes v as indented JSON to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	logrus.Infof("Results written to %s", path)
	return nil
}

func printTheory(w *float64) {
	if w == nil {
		fmt.Println("Theoretical Wait     : no closed form")
		return
	}
	fmt.Printf("Theoretical Wait     : %.4f\n", *w)
}

func printTraceSummary(ts *trace.TraceSummary) {
	fmt.Println("=== Grant Trace ===")
	fmt.Printf("Grants               : %d (%d immediate, %d queued)\n", ts.TotalGrants, ts.ImmediateGrants, ts.QueuedGrants)
	fmt.Printf("Queue Depth max/mean : %d / %.4f\n", ts.MaxQueueDepth, ts.MeanQueueDepth)
	fmt.Printf("Mean Queued Wait     : %.4f\n", ts.MeanQueuedWait)
}

func printReplicated(rep *experiment.Replicated, theoryWait *float64) {
	est := rep.Estimate
	fmt.Println("=== Replicated Simulation ===")
	fmt.Printf("Model                : %s (%s)\n", rep.Config.Kendall(), rep.Config.Admission)
	fmt.Printf("Replications         : %d (%d with samples)\n", len(rep.Runs), est.Runs)
	if est.Runs == 0 {
		fmt.Println("Mean Wait            : no samples")
	} else {
		fmt.Printf("Mean Wait            : %.4f ± %.4f\n", est.Mean, est.CI95)
		fmt.Printf("StdDev of Run Means  : %.4f\n", est.StdDev)
	}
	printTheory(theoryWait)
}
