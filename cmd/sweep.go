package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim/experiment"
)

var (
	sweepRhos    []float64 // Target utilizations
	sweepServers []int     // Server counts
)

// sweepCmd replicates the model across utilizations or server counts and
// compares each point with its closed-form mean wait.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep utilization or server count and compare with theory",
	Run: func(cmd *cobra.Command, args []string) {
		sc := resolveScenario(cmd)
		opts := experiment.Options{
			Horizon:      sc.Horizon,
			Seed:         sc.Seed,
			Replications: sc.Replications,
			Workers:      workers,
		}

		var (
			report *experiment.Report
			err    error
		)
		if len(sweepServers) > 0 {
			report, err = experiment.ServerSweep(context.Background(), sc.Simulation, sweepServers, opts)
		} else {
			report, err = experiment.UtilizationSweep(context.Background(), sc.Simulation, sweepRhos, opts)
		}
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		report.Print(os.Stdout)
		if len(sweepServers) == 0 && !report.MonotoneInRho() {
			logrus.Warnf("Simulated mean wait is not monotone in utilization; consider more replications or a longer horizon")
		}
		if resultsPath != "" {
			if err := writeJSON(resultsPath, report); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
	},
}
