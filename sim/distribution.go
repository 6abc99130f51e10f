package sim

import (
	"fmt"
	"math"
)

// Distribution draws positive durations (service or inter-arrival times).
type Distribution interface {
	// Sample returns one draw using src.
	Sample(src Source) float64
	// Mean returns E[X].
	Mean() float64
	// SecondMoment returns E[X^2].
	SecondMoment() float64
}

// Exponential is Exp(Rate), the memoryless "M" family.
type Exponential struct {
	Rate float64
}

func (d Exponential) Sample(src Source) float64 { return src.Exponential(d.Rate) }
func (d Exponential) Mean() float64             { return 1 / d.Rate }
func (d Exponential) SecondMoment() float64     { return 2 / (d.Rate * d.Rate) }

// Deterministic always returns Value, the "D" family.
type Deterministic struct {
	Value float64
}

func (d Deterministic) Sample(_ Source) float64 { return d.Value }
func (d Deterministic) Mean() float64           { return d.Value }
func (d Deterministic) SecondMoment() float64   { return d.Value * d.Value }

// HyperExponential draws from Exp(Rates[i]) with probability Weights[i].
// Weights must sum to 1.
type HyperExponential struct {
	Weights []float64
	Rates   []float64
}

// Sample picks a branch with one uniform draw, then draws the branch's
// exponential, so every sample consumes exactly two variates.
func (d HyperExponential) Sample(src Source) float64 {
	u := src.Uniform()
	last := len(d.Weights) - 1
	branch := last
	cum := 0.0
	for i := 0; i < last; i++ {
		cum += d.Weights[i]
		if u < cum {
			branch = i
			break
		}
	}
	return src.Exponential(d.Rates[branch])
}

func (d HyperExponential) Mean() float64 {
	m := 0.0
	for i, w := range d.Weights {
		m += w / d.Rates[i]
	}
	return m
}

func (d HyperExponential) SecondMoment() float64 {
	m := 0.0
	for i, w := range d.Weights {
		m += w * 2 / (d.Rates[i] * d.Rates[i])
	}
	return m
}

// Distribution family names in Kendall notation.
const (
	DistMarkovian     = "M"
	DistDeterministic = "D"
	DistHyperExp      = "C"
)

// BurstyService is the "C" service mixture: 75% Exp(1), 25% Exp(1/5).
// Its parameters are fixed and do not scale with the service rate.
func BurstyService() HyperExponential {
	return HyperExponential{
		Weights: []float64{0.75, 0.25},
		Rates:   []float64{1, 1.0 / 5},
	}
}

// validServiceDistributions is the set of recognized service families.
var validServiceDistributions = map[string]bool{DistMarkovian: true, DistDeterministic: true, DistHyperExp: true}

// validArrivalDistributions is the set of recognized arrival families.
var validArrivalDistributions = map[string]bool{"": true, DistMarkovian: true, DistDeterministic: true}

// IsValidServiceDistribution reports whether kind names a service family.
func IsValidServiceDistribution(kind string) bool { return validServiceDistributions[kind] }

// IsValidArrivalDistribution reports whether kind names an arrival family.
// The empty string defaults to M (Poisson arrivals).
func IsValidArrivalDistribution(kind string) bool { return validArrivalDistributions[kind] }

// NewServiceDistribution builds the service-time distribution for kind
// ("M", "D" or "C") with service rate mu.
func NewServiceDistribution(kind string, mu float64) (Distribution, error) {
	if err := checkRate("service", mu); err != nil {
		return nil, err
	}
	switch kind {
	case DistMarkovian:
		return Exponential{Rate: mu}, nil
	case DistDeterministic:
		return Deterministic{Value: 1 / mu}, nil
	case DistHyperExp:
		return BurstyService(), nil
	default:
		return nil, fmt.Errorf("%w: service %q", ErrUnknownDistribution, kind)
	}
}

// NewArrivalDistribution builds the inter-arrival distribution for kind
// ("M" or "D") with arrival rate lambda.
func NewArrivalDistribution(kind string, lambda float64) (Distribution, error) {
	if err := checkRate("arrival", lambda); err != nil {
		return nil, err
	}
	switch kind {
	case "", DistMarkovian:
		return Exponential{Rate: lambda}, nil
	case DistDeterministic:
		return Deterministic{Value: 1 / lambda}, nil
	default:
		return nil, fmt.Errorf("%w: arrival %q", ErrUnknownDistribution, kind)
	}
}

func checkRate(what string, rate float64) error {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return fmt.Errorf("%w: %s rate must be positive and finite, got %v", ErrInvalidRate, what, rate)
	}
	return nil
}
