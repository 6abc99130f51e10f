package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/rugbym/Stochastic-simulation-assignment2/sim"
	"github.com/rugbym/Stochastic-simulation-assignment2/sim/experiment"
	"github.com/rugbym/Stochastic-simulation-assignment2/sim/trace"
)

// runOutput is the JSON document written by `run --results`.
type runOutput struct {
	Scenario   sim.Scenario           `json:"scenario"`
	Metrics    sim.Metrics            `json:"metrics"`
	Waits      *sim.WaitSummary       `json:"waits,omitempty"`
	Samples    []sim.WaitSample       `json:"samples,omitempty"`
	Trace      *trace.TraceSummary    `json:"trace,omitempty"`
	Replicated *experiment.Replicated `json:"replicated,omitempty"`
	Theory     *float64               `json:"theory,omitempty"`
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the queueing simulation",
	Run: func(cmd *cobra.Command, args []string) {
		sc := resolveScenario(cmd)
		startTime := time.Now()
		logrus.Infof("Starting %s simulation, horizon=%.2f, seed=%d, replications=%d",
			sc.Simulation.Kendall(), sc.Horizon, sc.Seed, sc.Replications)

		out := runOutput{Scenario: *sc}
		if w, err := experiment.TheoreticalWait(sc.Simulation); err == nil {
			out.Theory = &w
		}

		if sc.Replications > 1 {
			rep, err := experiment.Replicate(context.Background(), sc.Simulation, sc.Horizon, sc.Seed, sc.Replications, workers)
			if err != nil {
				logrus.Fatalf("Replications failed: %v", err)
			}
			out.Replicated = rep
			printReplicated(rep, out.Theory)
		} else {
			runSingle(sc, &out)
		}

		if resultsPath != "" {
			if err := writeJSON(resultsPath, out); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

func runSingle(sc *sim.Scenario, out *runOutput) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(sc.Seed))
	s, err := sim.NewSimulation(sc.Simulation, rng.Streams())
	if err != nil {
		logrus.Fatalf("Invalid simulation: %v", err)
	}
	s.EnableTrace(trace.TraceLevel(sc.Trace))

	samples, err := s.Run(sc.Horizon)
	if err != nil {
		logrus.Fatalf("Simulation failed: %v", err)
	}
	out.Metrics = s.Metrics()
	out.Samples = samples
	if summary, err := s.Stats().Summarize(); err == nil {
		out.Waits = &summary
	} else {
		logrus.Warnf("No job started service before the horizon: %v", err)
	}
	if st := s.Trace(); st != nil {
		out.Trace = trace.Summarize(st)
	}

	m := s.Metrics()
	m.Print(os.Stdout, out.Waits)
	printTheory(out.Theory)
	if out.Trace != nil {
		printTraceSummary(out.Trace)
	}
}
