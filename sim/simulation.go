package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim/trace"
)

// Simulation wires one queueing model onto a fresh Engine. Every Simulation
// owns its engine, pool and collector; nothing is shared between runs.
type Simulation struct {
	cfg      Config
	streams  Streams
	engine   *Engine
	pool     *Pool
	stats    *Collector
	arrivals Distribution
	service  Distribution
	metrics  Metrics
	trace    *trace.SimulationTrace
	nextJob  int64
}

// NewSimulation validates cfg and builds a ready-to-run simulation.
// No state is created when validation fails.
func NewSimulation(cfg Config, streams Streams) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := streams.validate(); err != nil {
		return nil, err
	}
	arrivals, err := NewArrivalDistribution(cfg.Arrival, cfg.ArrivalRate)
	if err != nil {
		return nil, err
	}
	service, err := NewServiceDistribution(cfg.Service, cfg.ServiceRate)
	if err != nil {
		return nil, err
	}

	eng := NewEngine()
	s := &Simulation{
		cfg:      cfg,
		streams:  streams,
		engine:   eng,
		pool:     NewPool(eng, "servers", cfg.Servers, NewAdmissionPolicy(cfg.Admission)),
		stats:    NewCollector(),
		arrivals: arrivals,
		service:  service,
	}
	return s, nil
}

// EnableTrace records every grant at the given level. Call before Run.
func (s *Simulation) EnableTrace(level trace.TraceLevel) {
	if !level.Enabled() {
		return
	}
	s.trace = trace.NewSimulationTrace(level)
	s.pool.SetTrace(s.trace)
}

// Run simulates until horizon and returns the recorded wait samples.
// A Simulation runs once; a second call returns ErrAlreadyRun.
func (s *Simulation) Run(horizon float64) ([]WaitSample, error) {
	if horizon < 0 || math.IsNaN(horizon) || math.IsInf(horizon, 0) {
		return nil, fmt.Errorf("%w: must be finite and non-negative, got %v", ErrInvalidHorizon, horizon)
	}
	if s.engine.ran {
		return nil, ErrAlreadyRun
	}
	logrus.Infof("Simulating %s (%s), λ=%.4f μ=%.4f ρ=%.4f until t=%.2f",
		s.cfg.Kendall(), s.admissionName(), s.cfg.ArrivalRate, s.cfg.ServiceRate, s.cfg.Utilization(), horizon)

	s.engine.Spawn("arrivals", &arrivalGenerator{sim: s})
	if err := s.engine.Run(horizon); err != nil {
		return nil, err
	}

	s.metrics.Horizon = horizon
	s.metrics.Events = s.engine.Executed()
	s.metrics.Utilization = s.pool.Utilization()
	s.metrics.MeanQueueLength = s.pool.MeanQueueLength()
	return s.stats.Samples(), nil
}

func (s *Simulation) spawnJob(eng *Engine) {
	id := s.nextJob
	s.nextJob++
	s.metrics.Arrivals++
	logrus.Debugf("[t=%.4f] job %d arrives", eng.Now(), id)
	eng.Spawn(fmt.Sprintf("job-%d", id), &job{id: id, sim: s})
}

func (s *Simulation) admissionName() string {
	if s.cfg.Admission == "" {
		return PolicyFIFO
	}
	return s.cfg.Admission
}

// Config returns the validated configuration.
func (s *Simulation) Config() Config { return s.cfg }

// Stats returns the run's wait-time collector.
func (s *Simulation) Stats() *Collector { return s.stats }

// Metrics returns a copy of the run counters.
func (s *Simulation) Metrics() Metrics { return s.metrics }

// Trace returns the grant trace, or nil when tracing is disabled.
func (s *Simulation) Trace() *trace.SimulationTrace { return s.trace }

// ServiceDistribution returns the configured service-time distribution.
func (s *Simulation) ServiceDistribution() Distribution { return s.service }
