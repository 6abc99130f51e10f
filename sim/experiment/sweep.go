package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/rs/xid"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim"
	"github.com/rugbym/Stochastic-simulation-assignment2/sim/theory"
)

// ErrNoClosedForm is returned when no formula covers the configuration.
var ErrNoClosedForm = errors.New("no closed-form result for this model")

// TheoreticalWait returns the steady-state mean wait of cfg.
//
// Exponential service with Poisson arrivals uses Erlang C for any server
// count; deterministic and "C" service use Pollaczek–Khinchine for a single
// server. SJF keys are drawn independently of the realized service time, so
// the admission order carries no information about service and the FCFS
// result applies to both policies.
func TheoreticalWait(cfg sim.Config) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if cfg.Arrival != "" && cfg.Arrival != sim.DistMarkovian {
		return 0, fmt.Errorf("%w: %s", ErrNoClosedForm, cfg.Kendall())
	}
	if cfg.Service == sim.DistMarkovian {
		return theory.MMnMeanWait(cfg.ArrivalRate, cfg.ServiceRate, cfg.Servers)
	}
	if cfg.Servers != 1 {
		return 0, fmt.Errorf("%w: %s", ErrNoClosedForm, cfg.Kendall())
	}
	svc, err := sim.NewServiceDistribution(cfg.Service, cfg.ServiceRate)
	if err != nil {
		return 0, err
	}
	return theory.MG1MeanWait(cfg.ArrivalRate, svc.Mean(), svc.SecondMoment())
}

// Point is one configuration of a sweep.
type Point struct {
	Label     string      `json:"label"`
	Rho       float64     `json:"rho"`
	Result    *Replicated `json:"result"`
	Theory    float64     `json:"theory"`
	HasTheory bool        `json:"has_theory"`
}

// Report collects the points of one sweep.
type Report struct {
	ID           string     `json:"id"`
	Base         sim.Config `json:"base"`
	Horizon      float64    `json:"horizon"`
	Seed         int64      `json:"seed"`
	Replications int        `json:"replications"`
	Points       []Point    `json:"points"`
}

// Options controls how each sweep point is replicated.
type Options struct {
	Horizon      float64
	Seed         int64
	Replications int
	Workers      int
}

// UtilizationSweep runs base at each target utilization ρ by setting
// λ = ρ·n / E[S]. Every point reuses opts.Seed, so points see common random
// numbers and differ only in λ.
func UtilizationSweep(ctx context.Context, base sim.Config, rhos []float64, opts Options) (*Report, error) {
	svc, err := sim.NewServiceDistribution(base.Service, base.ServiceRate)
	if err != nil {
		return nil, err
	}
	cfgs := make([]sim.Config, len(rhos))
	labels := make([]string, len(rhos))
	for i, rho := range rhos {
		if !(rho > 0) {
			return nil, fmt.Errorf("%w: target utilization must be positive, got %v", sim.ErrInvalidRate, rho)
		}
		cfg := base
		cfg.ArrivalRate = rho * float64(base.Servers) / svc.Mean()
		cfgs[i] = cfg
		labels[i] = fmt.Sprintf("rho=%.2f", rho)
	}
	return sweep(ctx, base, cfgs, labels, opts)
}

// ServerSweep runs base with each server count at a fixed arrival rate.
func ServerSweep(ctx context.Context, base sim.Config, servers []int, opts Options) (*Report, error) {
	cfgs := make([]sim.Config, len(servers))
	labels := make([]string, len(servers))
	for i, n := range servers {
		cfg := base
		cfg.Servers = n
		cfgs[i] = cfg
		labels[i] = fmt.Sprintf("servers=%d", n)
	}
	return sweep(ctx, base, cfgs, labels, opts)
}

func sweep(ctx context.Context, base sim.Config, cfgs []sim.Config, labels []string, opts Options) (*Report, error) {
	report := &Report{
		ID:           xid.New().String(),
		Base:         base,
		Horizon:      opts.Horizon,
		Seed:         opts.Seed,
		Replications: opts.Replications,
		Points:       make([]Point, 0, len(cfgs)),
	}
	for i, cfg := range cfgs {
		rep, err := Replicate(ctx, cfg, opts.Horizon, opts.Seed, opts.Replications, opts.Workers)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", labels[i], err)
		}
		p := Point{Label: labels[i], Rho: cfg.Utilization(), Result: rep}
		if w, err := TheoreticalWait(cfg); err == nil {
			p.Theory, p.HasTheory = w, true
		}
		report.Points = append(report.Points, p)
	}
	return report, nil
}

// Print writes the report as an aligned table.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Sweep %s: %s %s, horizon %.1f, %d replications ===\n",
		r.ID, r.Base.Kendall(), r.Base.Admission, r.Horizon, r.Replications)
	fmt.Fprintf(w, "%-14s %8s %12s %10s %12s %10s\n", "point", "rho", "sim wait", "ci95", "theory", "rel err")
	for _, p := range r.Points {
		est := p.Result.Estimate
		theoryCol, errCol := "-", "-"
		if p.HasTheory {
			theoryCol = fmt.Sprintf("%.4f", p.Theory)
			if p.Theory > 0 && est.Runs > 0 {
				errCol = fmt.Sprintf("%+.3f", (est.Mean-p.Theory)/p.Theory)
			}
		}
		simCol := "-"
		if est.Runs > 0 {
			simCol = fmt.Sprintf("%.4f", est.Mean)
		}
		fmt.Fprintf(w, "%-14s %8.3f %12s %10.4f %12s %10s\n", p.Label, p.Rho, simCol, est.CI95, theoryCol, errCol)
	}
}

// MonotoneInRho reports whether simulated mean waits never decrease across
// points ordered by increasing ρ.
func (r *Report) MonotoneInRho() bool {
	prev := math.Inf(-1)
	for _, p := range r.Points {
		m, err := p.Result.MeanWait()
		if err != nil {
			continue
		}
		if m < prev {
			return false
		}
		prev = m
	}
	return true
}
