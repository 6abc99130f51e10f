package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreams_ServiceDrawsDoNotShiftArrivals(t *testing.T) {
	// GIVEN two stream sets from the same seed
	a := NewPartitionedRNG(NewSimulationKey(42)).Streams()
	b := NewPartitionedRNG(NewSimulationKey(42)).Streams()

	// WHEN one set makes many service and priority draws first
	for i := 0; i < 25; i++ {
		a.Service.Exponential(1)
		a.Priority.Exponential(1)
	}

	// THEN both see the same arrival sequence
	for i := 0; i < 10; i++ {
		require.Equal(t, b.Arrival.Exponential(0.5), a.Arrival.Exponential(0.5), "arrival draw %d", i)
	}
}

func TestStreams_AreDistinct(t *testing.T) {
	s := NewPartitionedRNG(NewSimulationKey(7)).Streams()
	arrival, service, priority := s.Arrival.Uniform(), s.Service.Uniform(), s.Priority.Uniform()
	assert.NotEqual(t, arrival, service)
	assert.NotEqual(t, arrival, priority)
	assert.NotEqual(t, service, priority)
}

func TestPartitionedRNG_SubsystemSeedDerivation(t *testing.T) {
	seed := int64(42)
	got := NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemService)
	direct := rand.New(rand.NewSource(seed ^ fnv1a64(SubsystemService)))

	for i := 0; i < 10; i++ {
		assert.Equal(t, direct.Float64(), got.Float64(), "value %d", i)
	}
}

func TestPartitionedRNG_ForReplication_IsStable(t *testing.T) {
	// GIVEN one master asked for the same replication twice
	master := NewPartitionedRNG(NewSimulationKey(7))
	first := master.ForReplication(0)
	again := master.ForReplication(0)

	// THEN the key depends only on (master key, id)
	assert.Equal(t, first.Key(), again.Key())
	assert.Equal(t, first.Key(), NewPartitionedRNG(NewSimulationKey(7)).ForReplication(0).Key())
	assert.Empty(t, master.subsystems, "deriving replications consumes no cached stream")
}

func TestPartitionedRNG_ForReplication_KeysDiffer(t *testing.T) {
	master := NewPartitionedRNG(NewSimulationKey(7))
	seen := map[SimulationKey]int{master.Key(): -1}
	for i := 0; i < 100; i++ {
		k := master.ForReplication(i).Key()
		prev, dup := seen[k]
		require.False(t, dup, "replication %d reuses the key of %d", i, prev)
		seen[k] = i
	}
}

func TestRandSource_ExponentialScalesWithRate(t *testing.T) {
	a := NewSeededSource(3)
	b := NewSeededSource(3)
	for i := 0; i < 5; i++ {
		x1 := a.Exponential(1)
		assert.InDelta(t, x1/4, b.Exponential(4), 1e-12, "draw %d", i)
	}
}

func TestRandSource_UniformInUnitInterval(t *testing.T) {
	src := NewSeededSource(5)
	for i := 0; i < 1000; i++ {
		u := src.Uniform()
		require.True(t, u >= 0 && u < 1, "Uniform() = %v", u)
	}
}

func TestRandSource_ExponentialMean(t *testing.T) {
	src := NewSeededSource(11)
	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += src.Exponential(2)
	}
	assert.InDelta(t, 0.5, sum/n, 0.01)
	assert.False(t, math.IsNaN(sum))
}

func TestNewRandSource_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewRandSource(nil) })
}

func TestStreams_Validate(t *testing.T) {
	assert.NoError(t, SingleStream(NewSeededSource(1)).validate())
	assert.Error(t, Streams{Arrival: NewSeededSource(1)}.validate())
}
