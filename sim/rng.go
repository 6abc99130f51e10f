package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Source is the random-variate generator the engine consumes. The engine
// never seeds anything itself; determinism comes entirely from the Source.
type Source interface {
	// Exponential returns a draw from Exp(rate), mean 1/rate.
	Exponential(rate float64) float64
	// Uniform returns a draw from U[0, 1).
	Uniform() float64
}

// RandSource adapts *rand.Rand to Source.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource wraps rng. Panics if rng is nil.
func NewRandSource(rng *rand.Rand) *RandSource {
	if rng == nil {
		panic("NewRandSource: rng must not be nil")
	}
	return &RandSource{rng: rng}
}

// NewSeededSource creates a RandSource seeded with seed.
func NewSeededSource(seed int64) *RandSource {
	return NewRandSource(rand.New(rand.NewSource(seed)))
}

func (s *RandSource) Exponential(rate float64) float64 {
	return s.rng.ExpFloat64() / rate
}

func (s *RandSource) Uniform() float64 {
	return s.rng.Float64()
}

// Streams groups the variate sources a simulation draws from.
// Separate streams keep arrival times independent of how many service draws
// were made, so two configurations fed the same streams see the same
// arrival and service sequences (common random numbers).
type Streams struct {
	Arrival  Source // inter-arrival delays
	Service  Source // realized service times
	Priority Source // SJF service-time estimates
}

// SingleStream uses src for every draw.
func SingleStream(src Source) Streams {
	return Streams{Arrival: src, Service: src, Priority: src}
}

func (s Streams) validate() error {
	if s.Arrival == nil || s.Service == nil || s.Priority == nil {
		return fmt.Errorf("random streams must all be non-nil")
	}
	return nil
}

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	SubsystemArrival  = "arrival"
	SubsystemService  = "service"
	SubsystemPriority = "priority"
)

// SubsystemReplication returns the subsystem name for replication N.
func SubsystemReplication(id int) string {
	return fmt.Sprintf("replication_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Streams returns arrival, service and priority streams for one run.
func (p *PartitionedRNG) Streams() Streams {
	return Streams{
		Arrival:  NewRandSource(p.ForSubsystem(SubsystemArrival)),
		Service:  NewRandSource(p.ForSubsystem(SubsystemService)),
		Priority: NewRandSource(p.ForSubsystem(SubsystemPriority)),
	}
}

// ForReplication returns a PartitionedRNG for replication id. Its key is a
// pure function of this key and id: repeated calls return the same key and
// leave every cached subsystem untouched. Replications never share a stream.
func (p *PartitionedRNG) ForReplication(id int) *PartitionedRNG {
	derive := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(SubsystemReplication(id))))
	return NewPartitionedRNG(SimulationKey(derive.Int63()))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
