package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_MeanAndStdDev(t *testing.T) {
	c := NewCollector()
	for i, w := range []float64{1, 2, 3, 4} {
		c.Record(int64(i), w)
	}

	mean, err := c.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, mean, 1e-12)

	sd, err := c.StdDev()
	require.NoError(t, err)
	assert.InDelta(t, 1.29099, sd, 1e-5, "sample standard deviation uses n-1")
}

func TestCollector_EmptyStatistics(t *testing.T) {
	c := NewCollector()
	_, err := c.Mean()
	assert.ErrorIs(t, err, ErrEmptyStatistics)
	_, err = c.StdDev()
	assert.ErrorIs(t, err, ErrEmptyStatistics)
	_, err = c.Summarize()
	assert.ErrorIs(t, err, ErrEmptyStatistics)
	assert.Equal(t, 0, c.Len())
}

func TestCollector_SingleSample(t *testing.T) {
	c := NewCollector()
	c.Record(0, 3.5)

	sd, err := c.StdDev()
	require.NoError(t, err)
	assert.Equal(t, 0.0, sd)

	s, err := c.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.CI95)
	assert.Equal(t, 3.5, s.P50)
}

func TestCollector_SamplesIsACopy(t *testing.T) {
	c := NewCollector()
	c.Record(7, 1)
	got := c.Samples()
	got[0].Wait = 99

	assert.Equal(t, []WaitSample{{JobID: 7, Wait: 1}}, c.Samples())
}

func TestCollector_KeepsRecordOrder(t *testing.T) {
	c := NewCollector()
	c.Record(2, 0.5)
	c.Record(0, 0)
	c.Record(1, 2)
	assert.Equal(t, []float64{0.5, 0, 2}, c.Waits())
}

func TestCollector_Summarize(t *testing.T) {
	c := NewCollector()
	for i := 0; i < 101; i++ {
		c.Record(int64(i), float64(100-i))
	}

	s, err := c.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 101, s.Count)
	assert.InDelta(t, 50, s.Mean, 1e-12)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.InDelta(t, 50, s.P50, 1)
	assert.InDelta(t, 95, s.P95, 1)
	assert.LessOrEqual(t, s.P95, s.P99)
	assert.InDelta(t, HalfWidth95(s.StdDev, 101), s.CI95, 1e-12)
}

func TestHalfWidth95(t *testing.T) {
	assert.InDelta(t, 1.96, HalfWidth95(2, 4), 1e-12)
	assert.Equal(t, 0.0, HalfWidth95(5, 1))
	assert.Equal(t, 0.0, HalfWidth95(5, 0))
}
