// Package experiment runs independent replications of a queueing model and
// compares their averages against closed-form results.
package experiment

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim"
)

// RunResult is the outcome of one replication.
type RunResult struct {
	Replication int         `json:"replication"`
	Key         int64       `json:"key"` // seed of the replication's PartitionedRNG
	Samples     int         `json:"samples"`
	MeanWait    float64     `json:"mean_wait"`
	StdDevWait  float64     `json:"stddev_wait"`
	Empty       bool        `json:"empty"` // no job started service before the horizon
	Metrics     sim.Metrics `json:"metrics"`
}

// Estimate summarizes per-replication mean waits.
type Estimate struct {
	Runs   int     `json:"runs"` // non-empty replications
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	CI95   float64 `json:"ci95"`
}

// Replicated holds every replication of one configuration.
type Replicated struct {
	Config   sim.Config  `json:"config"`
	Horizon  float64     `json:"horizon"`
	Runs     []RunResult `json:"runs"`
	Estimate Estimate    `json:"estimate"`
}

// Replicate runs n independent replications of cfg until horizon.
// Replication i draws from NewPartitionedRNG(seed).ForReplication(i), so the
// results depend only on (cfg, horizon, seed, n), never on workers.
// workers <= 0 uses GOMAXPROCS.
func Replicate(ctx context.Context, cfg sim.Config, horizon float64, seed int64, n, workers int) (*Replicated, error) {
	if n <= 0 {
		return nil, fmt.Errorf("replications must be positive, got %d", n)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)

	// PartitionedRNG is not thread-safe: derive every replication's RNG here.
	master := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	rngs := make([]*sim.PartitionedRNG, n)
	for i := range rngs {
		rngs[i] = master.ForReplication(i)
	}

	results := make([]RunResult, n)
	errs := make([]error, n)
	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i], errs[i] = runOne(cfg, horizon, i, rngs[i])
			}
		}()
	}

	fed := 0
feed:
	for fed < n {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case indices <- fed:
			fed++
		}
	}
	close(indices)
	wg.Wait()

	// A cancellation that arrives after the last replication was handed out
	// does not discard finished work.
	if fed < n {
		return nil, ctx.Err()
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("replication %d: %w", i, err)
		}
	}

	rep := &Replicated{Config: cfg, Horizon: horizon, Runs: results}
	rep.Estimate = estimate(results)
	logrus.Infof("%s %s: %d/%d replications with samples, mean wait %.4f ± %.4f",
		cfg.Kendall(), cfg.Admission, rep.Estimate.Runs, n, rep.Estimate.Mean, rep.Estimate.CI95)
	return rep, nil
}

func runOne(cfg sim.Config, horizon float64, idx int, rng *sim.PartitionedRNG) (RunResult, error) {
	s, err := sim.NewSimulation(cfg, rng.Streams())
	if err != nil {
		return RunResult{}, err
	}
	if _, err := s.Run(horizon); err != nil {
		return RunResult{}, err
	}
	res := RunResult{
		Replication: idx,
		Key:         int64(rng.Key()),
		Samples:     s.Stats().Len(),
		Metrics:     s.Metrics(),
	}
	mean, err := s.Stats().Mean()
	if err != nil {
		res.Empty = true
		return res, nil
	}
	res.MeanWait = mean
	res.StdDevWait, _ = s.Stats().StdDev()
	return res, nil
}

func estimate(runs []RunResult) Estimate {
	means := make([]float64, 0, len(runs))
	for _, r := range runs {
		if !r.Empty {
			means = append(means, r.MeanWait)
		}
	}
	est := Estimate{Runs: len(means)}
	switch len(means) {
	case 0:
		return est
	case 1:
		est.Mean = means[0]
		return est
	}
	est.Mean = stat.Mean(means, nil)
	est.StdDev = stat.StdDev(means, nil)
	est.CI95 = sim.HalfWidth95(est.StdDev, len(means))
	return est
}

// MeanWait returns the across-replication mean wait, or
// sim.ErrEmptyStatistics when no replication recorded a sample.
func (r *Replicated) MeanWait() (float64, error) {
	if r.Estimate.Runs == 0 {
		return 0, sim.ErrEmptyStatistics
	}
	return r.Estimate.Mean, nil
}
