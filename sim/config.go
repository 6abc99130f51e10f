package sim

import (
	"fmt"
	"math"
)

// Config groups the parameters of one queueing model.
type Config struct {
	Servers     int     `yaml:"servers" json:"servers"`           // number of identical servers (must be > 0)
	Admission   string  `yaml:"admission" json:"admission"`       // "fifo" (default) or "sjf"
	Service     string  `yaml:"service" json:"service"`           // "M", "D" or "C"
	ServiceRate float64 `yaml:"service_rate" json:"service_rate"` // μ, jobs per unit time per server
	Arrival     string  `yaml:"arrival" json:"arrival"`           // "M" (default) or "D"
	ArrivalRate float64 `yaml:"arrival_rate" json:"arrival_rate"` // λ, jobs per unit time
	InitialJobs int     `yaml:"initial_jobs" json:"initial_jobs"` // jobs already present at time zero
}

// DefaultConfig is the M/M/1 FIFO model with ρ = 0.5.
func DefaultConfig() Config {
	return Config{
		Servers:     1,
		Admission:   PolicyFIFO,
		Service:     DistMarkovian,
		ServiceRate: 1.0,
		Arrival:     DistMarkovian,
		ArrivalRate: 0.5,
	}
}

// Validate checks every field. It never mutates the config.
func (c Config) Validate() error {
	if c.Servers <= 0 {
		return fmt.Errorf("%w: servers must be positive, got %d", ErrInvalidCapacity, c.Servers)
	}
	if err := checkRate("service", c.ServiceRate); err != nil {
		return err
	}
	if err := checkRate("arrival", c.ArrivalRate); err != nil {
		return err
	}
	if !IsValidAdmissionPolicy(c.Admission) {
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, c.Admission)
	}
	if !IsValidServiceDistribution(c.Service) {
		return fmt.Errorf("%w: service %q", ErrUnknownDistribution, c.Service)
	}
	if !IsValidArrivalDistribution(c.Arrival) {
		return fmt.Errorf("%w: arrival %q", ErrUnknownDistribution, c.Arrival)
	}
	if c.InitialJobs < 0 {
		return fmt.Errorf("initial_jobs must be non-negative, got %d", c.InitialJobs)
	}
	return nil
}

// Utilization returns ρ = λ / (μ·n) using the service distribution's mean,
// so the fixed-parameter "C" mixture reports its true load.
func (c Config) Utilization() float64 {
	svc, err := NewServiceDistribution(c.Service, c.ServiceRate)
	if err != nil || c.Servers <= 0 {
		return math.NaN()
	}
	return c.ArrivalRate * svc.Mean() / float64(c.Servers)
}

// Kendall returns the model in Kendall notation, e.g. "M/M/1".
func (c Config) Kendall() string {
	arrival := c.Arrival
	if arrival == "" {
		arrival = DistMarkovian
	}
	return fmt.Sprintf("%s/%s/%d", arrival, c.Service, c.Servers)
}
