package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/rugbym/Stochastic-simulation-assignment2/sim"
	"github.com/rugbym/Stochastic-simulation-assignment2/sim/trace"
)

var (
	logLevel string // Log verbosity level

	// CLI flags for the queueing model
	configPath   string  // Optional YAML scenario file
	servers      int     // Number of servers
	admission    string  // Admission policy: fifo or sjf
	service      string  // Service time family: M, D or C
	serviceRate  float64 // Service rate μ per server
	arrival      string  // Inter-arrival family: M or D
	arrivalRate  float64 // Arrival rate λ
	initialJobs  int     // Jobs present at time zero
	horizon      float64 // Simulation horizon (virtual time)
	seed         int64   // Master seed
	replications int     // Independent replications
	workers      int     // Concurrent replications (0 = GOMAXPROCS)
	traceLevel   string  // Grant trace level
	resultsPath  string  // Optional JSON output file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queuesim",
	Short: "Discrete-event simulator for single- and multi-server queues",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addModelFlags registers the queueing-model flags shared by run and sweep.
func addModelFlags(cmd *cobra.Command) {
	def := sim.DefaultScenario()
	cmd.Flags().StringVar(&configPath, "config", "", "YAML scenario file; explicitly set flags override its values")
	cmd.Flags().IntVar(&servers, "servers", def.Simulation.Servers, "Number of servers")
	cmd.Flags().StringVar(&admission, "admission", def.Simulation.Admission, "Admission policy (fifo, sjf)")
	cmd.Flags().StringVar(&service, "service", def.Simulation.Service, "Service time distribution (M, D, C)")
	cmd.Flags().Float64Var(&serviceRate, "service-rate", def.Simulation.ServiceRate, "Service rate per server (mu)")
	cmd.Flags().StringVar(&arrival, "arrival", def.Simulation.Arrival, "Inter-arrival distribution (M, D)")
	cmd.Flags().Float64Var(&arrivalRate, "arrival-rate", def.Simulation.ArrivalRate, "Arrival rate (lambda)")
	cmd.Flags().IntVar(&initialJobs, "initial-jobs", def.Simulation.InitialJobs, "Jobs already present at time zero")
	cmd.Flags().Float64Var(&horizon, "horizon", def.Horizon, "Simulation horizon (virtual time units)")
	cmd.Flags().Int64Var(&seed, "seed", def.Seed, "Master seed for random variates")
	cmd.Flags().IntVar(&replications, "replications", def.Replications, "Number of independent replications")
	cmd.Flags().IntVar(&workers, "workers", 0, "Replications run concurrently (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&resultsPath, "results", "", "Write results as JSON to this file")
}

// resolveScenario merges the optional scenario file with explicitly set flags
// and validates the result.
func resolveScenario(cmd *cobra.Command) *sim.Scenario {
	sc := sim.DefaultScenario()
	if configPath != "" {
		loaded, err := sim.LoadScenario(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		sc = *loaded
	}

	flags := cmd.Flags()
	override := func(name string, apply func()) {
		if configPath == "" || flags.Changed(name) {
			apply()
		}
	}
	override("servers", func() { sc.Simulation.Servers = servers })
	override("admission", func() { sc.Simulation.Admission = admission })
	override("service", func() { sc.Simulation.Service = service })
	override("service-rate", func() { sc.Simulation.ServiceRate = serviceRate })
	override("arrival", func() { sc.Simulation.Arrival = arrival })
	override("arrival-rate", func() { sc.Simulation.ArrivalRate = arrivalRate })
	override("initial-jobs", func() { sc.Simulation.InitialJobs = initialJobs })
	override("horizon", func() { sc.Horizon = horizon })
	override("seed", func() { sc.Seed = seed })
	override("replications", func() { sc.Replications = replications })
	if flags.Lookup("trace") != nil {
		override("trace", func() { sc.Trace = traceLevel })
	}

	if err := sc.Validate(); err != nil {
		logrus.Fatalf("Invalid scenario: %v", err)
	}
	return &sc
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addModelFlags(runCmd)
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Grant trace level (none, grants); grants requires --replications 1")
	rootCmd.AddCommand(runCmd)

	addModelFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepRhos, "rhos", []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}, "Target utilizations")
	sweepCmd.Flags().IntSliceVar(&sweepServers, "server-counts", nil, "Sweep server counts at the fixed arrival rate instead of utilizations")
	rootCmd.AddCommand(sweepCmd)

	theoryCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 0.5, "Arrival rate (lambda)")
	theoryCmd.Flags().Float64Var(&serviceRate, "service-rate", 1.0, "Service rate per server (mu)")
	theoryCmd.Flags().IntVar(&servers, "servers", 1, "Number of servers")
	rootCmd.AddCommand(theoryCmd)
}
