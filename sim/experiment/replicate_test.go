package experiment

import (
	"context"
	"os"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func TestReplicate_MM1ConvergesToClosedForm(t *testing.T) {
	// GIVEN M/M/1 FIFO with μ = 1, λ = 0.5, horizon 900
	cfg := sim.DefaultConfig()

	// WHEN replicated 30 times with independent streams
	rep, err := Replicate(context.Background(), cfg, 900, 42, 30, 0)
	require.NoError(t, err)

	// THEN the across-replication mean is close to ρ/(μ(1-ρ)) = 1
	mean, err := rep.MeanWait()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mean, 0.25)
	assert.Equal(t, 30, rep.Estimate.Runs)
	assert.Greater(t, rep.Estimate.CI95, 0.0)
}

func TestReplicate_IndependentOfWorkerCount(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Servers = 2
	cfg.ArrivalRate = 1.5

	serial, err := Replicate(context.Background(), cfg, 200, 9, 8, 1)
	require.NoError(t, err)
	parallel, err := Replicate(context.Background(), cfg, 200, 9, 8, 4)
	require.NoError(t, err)

	assert.Equal(t, serial.Runs, parallel.Runs)
	assert.Equal(t, serial.Estimate, parallel.Estimate)
}

func TestReplicate_ReplicationsDiffer(t *testing.T) {
	rep, err := Replicate(context.Background(), sim.DefaultConfig(), 200, 1, 3, 1)
	require.NoError(t, err)
	require.Len(t, rep.Runs, 3)

	assert.NotEqual(t, rep.Runs[0].Key, rep.Runs[1].Key)
	assert.NotEqual(t, rep.Runs[0].MeanWait, rep.Runs[1].MeanWait)
	for i, r := range rep.Runs {
		assert.Equal(t, i, r.Replication)
	}
}

func TestReplicate_ZeroHorizonIsEmpty(t *testing.T) {
	rep, err := Replicate(context.Background(), sim.DefaultConfig(), 0, 1, 4, 2)
	require.NoError(t, err)

	for _, r := range rep.Runs {
		assert.True(t, r.Empty)
	}
	_, err = rep.MeanWait()
	assert.ErrorIs(t, err, sim.ErrEmptyStatistics)
}

func TestReplicate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Replicate(ctx, sim.DefaultConfig(), 100, 1, 50, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

// lateCancelContext never closes Done and reports cancellation only after
// Err has been consulted after times, so it is cancelled once every
// replication has already been handed to a worker.
type lateCancelContext struct {
	context.Context
	after int32
	calls atomic.Int32
}

func (c *lateCancelContext) Err() error {
	if c.calls.Add(1) > c.after {
		return context.Canceled
	}
	return nil
}

func TestReplicate_CancelAfterAllFedKeepsResults(t *testing.T) {
	// GIVEN a context cancelled right after the last replication is fed
	const n = 4
	ctx := &lateCancelContext{Context: context.Background(), after: n}

	// WHEN replicating
	rep, err := Replicate(ctx, sim.DefaultConfig(), 100, 3, n, 2)

	// THEN the finished replications are returned, not discarded
	require.NoError(t, err)
	require.Len(t, rep.Runs, n)
	assert.Equal(t, n, rep.Estimate.Runs)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestReplicate_RejectsBadInput(t *testing.T) {
	_, err := Replicate(context.Background(), sim.DefaultConfig(), 100, 1, 0, 1)
	assert.Error(t, err)

	cfg := sim.DefaultConfig()
	cfg.Servers = 0
	_, err = Replicate(context.Background(), cfg, 100, 1, 2, 1)
	assert.ErrorIs(t, err, sim.ErrInvalidCapacity)

	_, err = Replicate(context.Background(), sim.DefaultConfig(), -1, 1, 2, 1)
	assert.ErrorIs(t, err, sim.ErrInvalidHorizon)
}

func TestEstimate_SingleRun(t *testing.T) {
	est := estimate([]RunResult{{MeanWait: 2}, {Empty: true}})
	assert.Equal(t, Estimate{Runs: 1, Mean: 2}, est)
}
