package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Print_WithWaits(t *testing.T) {
	m := Metrics{Arrivals: 10, Started: 9, Completed: 8, Utilization: 0.75, Horizon: 100, Events: 42}
	var buf bytes.Buffer

	m.Print(&buf, &WaitSummary{Count: 9, Mean: 1.25, CI95: 0.1, P50: 1, P95: 3, P99: 4, Max: 5})

	out := buf.String()
	assert.Contains(t, out, "=== Simulation Metrics ===")
	assert.Contains(t, out, "Arrivals             : 10")
	assert.Contains(t, out, "Server Utilization   : 0.7500")
	assert.Contains(t, out, "Mean Wait            : 1.2500 ± 0.1000")
}

func TestMetrics_Print_NoSamples(t *testing.T) {
	var buf bytes.Buffer
	(&Metrics{}).Print(&buf, nil)
	assert.Contains(t, buf.String(), "Wait Time            : no samples")
	assert.NotContains(t, buf.String(), "Mean Wait")
}
