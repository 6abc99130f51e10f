// Package theory provides closed-form steady-state results for the queueing
// models the simulator runs. The functions are pure and exist to validate
// simulated averages.
package theory

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnstable is returned when ρ >= 1: no steady state exists.
	ErrUnstable = errors.New("queue is unstable (utilization >= 1)")
	// ErrInvalidParameter is returned for non-positive rates or server counts.
	ErrInvalidParameter = errors.New("invalid queueing parameter")
)

// Utilization returns ρ = λ / (μ·n).
func Utilization(lambda, mu float64, n int) float64 {
	return lambda / (mu * float64(n))
}

func check(lambda, mu float64, n int) (float64, error) {
	if !(lambda > 0) || !(mu > 0) || n <= 0 {
		return 0, fmt.Errorf("%w: λ=%v μ=%v n=%d", ErrInvalidParameter, lambda, mu, n)
	}
	rho := Utilization(lambda, mu, n)
	if rho >= 1 {
		return rho, fmt.Errorf("%w: ρ=%.4f", ErrUnstable, rho)
	}
	return rho, nil
}

// MM1MeanInSystem returns the mean number of jobs in an M/M/1 system, ρ/(1-ρ).
func MM1MeanInSystem(lambda, mu float64) (float64, error) {
	rho, err := check(lambda, mu, 1)
	if err != nil {
		return 0, err
	}
	return rho / (1 - rho), nil
}

// MM1MeanWait returns the mean time in queue of an M/M/1 system, ρ/(μ(1-ρ)).
func MM1MeanWait(lambda, mu float64) (float64, error) {
	rho, err := check(lambda, mu, 1)
	if err != nil {
		return 0, err
	}
	return rho / (mu * (1 - rho)), nil
}

// P0 returns the probability of an empty M/M/n system.
func P0(lambda, mu float64, n int) (float64, error) {
	rho, err := check(lambda, mu, n)
	if err != nil {
		return 0, err
	}
	if n == 1 {
		return 1 - rho, nil
	}
	a := float64(n) * rho // offered load λ/μ
	term := 1.0           // a^i / i!
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += term
		term *= a / float64(i+1)
	}
	// term now holds a^n / n!
	sum += term / (1 - rho)
	return 1 / sum, nil
}

// Pk returns the probability of exactly k jobs in an M/M/n system.
func Pk(lambda, mu float64, k, n int) (float64, error) {
	if k < 0 {
		return 0, fmt.Errorf("%w: k=%d", ErrInvalidParameter, k)
	}
	p0, err := P0(lambda, mu, n)
	if err != nil {
		return 0, err
	}
	rho := Utilization(lambda, mu, n)
	a := float64(n) * rho
	term := 1.0
	for i := 1; i <= min(k, n); i++ {
		term *= a / float64(i)
	}
	if k > n {
		term *= math.Pow(rho, float64(k-n))
	}
	return term * p0, nil
}

// WaitingProbability returns the Erlang C probability that an arriving job
// has to queue in an M/M/n system.
func WaitingProbability(lambda, mu float64, n int) (float64, error) {
	pn, err := Pk(lambda, mu, n, n)
	if err != nil {
		return 0, err
	}
	return pn / (1 - Utilization(lambda, mu, n)), nil
}

// MMnMeanWait returns the mean time in queue of an M/M/n system.
func MMnMeanWait(lambda, mu float64, n int) (float64, error) {
	pw, err := WaitingProbability(lambda, mu, n)
	if err != nil {
		return 0, err
	}
	rho := Utilization(lambda, mu, n)
	return pw / (float64(n) * mu * (1 - rho)), nil
}

// MD1MeanWait returns the mean time in queue of an M/D/1 system with
// service time 1/μ, ρ/(2μ(1-ρ)).
func MD1MeanWait(lambda, mu float64) (float64, error) {
	rho, err := check(lambda, mu, 1)
	if err != nil {
		return 0, err
	}
	return rho / (2 * mu * (1 - rho)), nil
}

// MG1MeanWait returns the Pollaczek–Khinchine mean time in queue of an
// M/G/1 system with service moments E[S] and E[S²]: λE[S²] / (2(1-ρ)).
// It also holds for any non-preemptive order chosen independently of the
// service times.
func MG1MeanWait(lambda, meanService, secondMoment float64) (float64, error) {
	if !(meanService > 0) || !(secondMoment > 0) {
		return 0, fmt.Errorf("%w: E[S]=%v E[S²]=%v", ErrInvalidParameter, meanService, secondMoment)
	}
	if _, err := check(lambda, 1/meanService, 1); err != nil {
		return 0, err
	}
	rho := lambda * meanService
	return lambda * secondMoment / (2 * (1 - rho)), nil
}
