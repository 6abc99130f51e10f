package sim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WaitSample is one job's arrival-to-service-start latency.
type WaitSample struct {
	JobID int64   `json:"job_id"`
	Wait  float64 `json:"wait"`
}

// Collector is an append-only record of wait samples for one run.
// Single writer, single reader: it is only touched from the engine's
// goroutine while running and by the caller after Run returns.
type Collector struct {
	samples []WaitSample
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{samples: make([]WaitSample, 0)}
}

// Record appends a sample.
func (c *Collector) Record(jobID int64, wait float64) {
	c.samples = append(c.samples, WaitSample{JobID: jobID, Wait: wait})
}

// Len returns the number of samples.
func (c *Collector) Len() int { return len(c.samples) }

// Samples returns a copy of the recorded samples in record order.
func (c *Collector) Samples() []WaitSample {
	out := make([]WaitSample, len(c.samples))
	copy(out, c.samples)
	return out
}

// Waits returns the wait durations in record order.
func (c *Collector) Waits() []float64 {
	out := make([]float64, len(c.samples))
	for i, s := range c.samples {
		out[i] = s.Wait
	}
	return out
}

// Mean returns the arithmetic mean wait.
func (c *Collector) Mean() (float64, error) {
	if len(c.samples) == 0 {
		return 0, ErrEmptyStatistics
	}
	return stat.Mean(c.Waits(), nil), nil
}

// StdDev returns the sample standard deviation (n-1 denominator).
// A single sample has zero deviation.
func (c *Collector) StdDev() (float64, error) {
	switch len(c.samples) {
	case 0:
		return 0, ErrEmptyStatistics
	case 1:
		return 0, nil
	}
	return stat.StdDev(c.Waits(), nil), nil
}

// WaitSummary is the distribution of wait times from one run.
type WaitSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	CI95   float64 `json:"ci95"` // half-width of the normal 95% interval for Mean
	Min    float64 `json:"min"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
	Max    float64 `json:"max"`
}

// Summarize computes a WaitSummary. Returns ErrEmptyStatistics when empty.
func (c *Collector) Summarize() (WaitSummary, error) {
	mean, err := c.Mean()
	if err != nil {
		return WaitSummary{}, err
	}
	sd, _ := c.StdDev()
	sorted := c.Waits()
	sort.Float64s(sorted)
	n := len(sorted)
	return WaitSummary{
		Count:  n,
		Mean:   mean,
		StdDev: sd,
		CI95:   HalfWidth95(sd, n),
		Min:    sorted[0],
		P50:    stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P95:    stat.Quantile(0.95, stat.LinInterp, sorted, nil),
		P99:    stat.Quantile(0.99, stat.LinInterp, sorted, nil),
		Max:    sorted[n-1],
	}, nil
}

// HalfWidth95 returns 1.96·sd/√n, the normal-approximation 95% half-width.
func HalfWidth95(sd float64, n int) float64 {
	if n < 2 {
		return 0
	}
	return 1.96 * sd / math.Sqrt(float64(n))
}
