package sim

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim/trace"
)

// Scenario is a complete run description, loadable from a YAML file.
// Fields absent from the file keep DefaultScenario's values.
type Scenario struct {
	Simulation   Config  `yaml:"simulation" json:"simulation"`
	Horizon      float64 `yaml:"horizon" json:"horizon"`
	Seed         int64   `yaml:"seed" json:"seed"`
	Replications int     `yaml:"replications" json:"replications"`
	Trace        string  `yaml:"trace" json:"trace"`
}

// DefaultScenario is the reference M/M/1 experiment: ρ = 0.5, horizon 900.
func DefaultScenario() Scenario {
	return Scenario{
		Simulation:   DefaultConfig(),
		Horizon:      900,
		Seed:         42,
		Replications: 1,
		Trace:        string(trace.TraceLevelNone),
	}
}

// LoadScenario reads and parses a YAML scenario file. Fields absent from the
// file keep DefaultScenario's values.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks the model and the run parameters.
func (sc *Scenario) Validate() error {
	if err := sc.Simulation.Validate(); err != nil {
		return err
	}
	if sc.Horizon < 0 || math.IsNaN(sc.Horizon) || math.IsInf(sc.Horizon, 0) {
		return fmt.Errorf("%w: must be finite and non-negative, got %v", ErrInvalidHorizon, sc.Horizon)
	}
	if sc.Replications <= 0 {
		return fmt.Errorf("replications must be positive, got %d", sc.Replications)
	}
	if !trace.IsValidTraceLevel(sc.Trace) {
		return fmt.Errorf("unknown trace level %q", sc.Trace)
	}
	// Grant traces are recorded for a single run only.
	if trace.TraceLevel(sc.Trace).Enabled() && sc.Replications > 1 {
		return fmt.Errorf("trace level %q requires a single replication, got %d", sc.Trace, sc.Replications)
	}
	return nil
}
