package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim/internal/testutil"
)

func TestHyperExponential_ScriptedBranches(t *testing.T) {
	// GIVEN uniforms selecting the short then the long branch, and unit exponentials
	src := &testutil.ScriptedSource{Exps: []float64{1, 1}, Uniforms: []float64{0.5, 0.9}}
	d := BurstyService()

	// THEN the first draw is Exp(1) scaled to 1.0 and the second Exp(1/5) scaled to 5.0
	assert.InDelta(t, 1.0, d.Sample(src), 1e-12)
	assert.InDelta(t, 5.0, d.Sample(src), 1e-12)
	assert.Equal(t, 2, src.UniformDraws())
	assert.Equal(t, 2, src.ExpDraws())
}

func TestHyperExponential_BranchBoundary(t *testing.T) {
	d := BurstyService()
	// u == 0.75 is outside [0, 0.75) and therefore picks the long branch
	src := &testutil.ScriptedSource{Exps: []float64{2}, Uniforms: []float64{0.75}}
	assert.InDelta(t, 10.0, d.Sample(src), 1e-12)
}

func TestDistributions_Moments(t *testing.T) {
	tests := []struct {
		name string
		d    Distribution
		mean float64
		ex2  float64
	}{
		{"exponential", Exponential{Rate: 2}, 0.5, 0.5},
		{"deterministic", Deterministic{Value: 3}, 3, 9},
		{"bursty", BurstyService(), 2, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.mean, tt.d.Mean(), 1e-12)
			assert.InDelta(t, tt.ex2, tt.d.SecondMoment(), 1e-12)
		})
	}
}

func TestDeterministic_ConsumesNoDraws(t *testing.T) {
	src := testutil.NewScriptedSource()
	d := Deterministic{Value: 0.25}
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.25, d.Sample(src))
	}
	assert.Equal(t, 0, src.ExpDraws())
}

func TestBurstyService_EmpiricalMean(t *testing.T) {
	src := NewSeededSource(2024)
	d := BurstyService()
	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		x := d.Sample(src)
		require.Greater(t, x, 0.0)
		sum += x
	}
	// sd of the mixture is sqrt(14-4) ≈ 3.16, so the standard error is ≈ 0.007
	assert.InDelta(t, 2.0, sum/n, 0.05)
}

func TestNewServiceDistribution(t *testing.T) {
	d, err := NewServiceDistribution(DistMarkovian, 4)
	require.NoError(t, err)
	assert.Equal(t, Exponential{Rate: 4}, d)

	d, err = NewServiceDistribution(DistDeterministic, 4)
	require.NoError(t, err)
	assert.Equal(t, Deterministic{Value: 0.25}, d)

	d, err = NewServiceDistribution(DistHyperExp, 4)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d.Mean(), 1e-12, "C mixture ignores the service rate")

	_, err = NewServiceDistribution("G", 1)
	assert.ErrorIs(t, err, ErrUnknownDistribution)
}

func TestNewDistribution_RejectsBadRates(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewServiceDistribution(DistMarkovian, rate)
		assert.ErrorIs(t, err, ErrInvalidRate, "service rate %v", rate)
		_, err = NewArrivalDistribution(DistMarkovian, rate)
		assert.ErrorIs(t, err, ErrInvalidRate, "arrival rate %v", rate)
	}
}

func TestNewArrivalDistribution(t *testing.T) {
	d, err := NewArrivalDistribution("", 0.5)
	require.NoError(t, err)
	assert.Equal(t, Exponential{Rate: 0.5}, d, "empty kind defaults to Poisson arrivals")

	d, err = NewArrivalDistribution(DistDeterministic, 0.5)
	require.NoError(t, err)
	assert.Equal(t, Deterministic{Value: 2}, d)

	_, err = NewArrivalDistribution(DistHyperExp, 1)
	assert.ErrorIs(t, err, ErrUnknownDistribution)
}
