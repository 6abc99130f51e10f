package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValidMM1(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "M/M/1", cfg.Kendall())
	assert.InDelta(t, 0.5, cfg.Utilization(), 1e-12)
}

func TestConfig_Validate_InitialJobs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialJobs = -1
	assert.Error(t, cfg.Validate())

	cfg.InitialJobs = 0
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_EmptyDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Admission = ""
	cfg.Arrival = ""
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "M/M/1", cfg.Kendall())
}

func TestConfig_Utilization(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want float64
	}{
		{"M/M/2", Config{Servers: 2, Service: DistMarkovian, ServiceRate: 1, ArrivalRate: 1}, 0.5},
		{"M/D/1 fast server", Config{Servers: 1, Service: DistDeterministic, ServiceRate: 4, ArrivalRate: 2}, 0.5},
		{"M/C/1 ignores service rate", Config{Servers: 1, Service: DistHyperExp, ServiceRate: 10, ArrivalRate: 0.25}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.cfg.Utilization(), 1e-12)
		})
	}
}

func TestConfig_Utilization_InvalidIsNaN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Servers = 0
	assert.True(t, math.IsNaN(cfg.Utilization()))
}

func TestConfig_Kendall(t *testing.T) {
	cfg := Config{Arrival: DistDeterministic, Service: DistHyperExp, Servers: 4}
	assert.Equal(t, "D/C/4", cfg.Kendall())
}
