// Package testutil provides shared test infrastructure for the simulator:
// scripted variate sources whose draws are fixed in advance.
package testutil

import "fmt"

// ScriptedSource replays fixed variates. Exponential(rate) returns the next
// scripted value divided by rate, so a script of unit-mean draws behaves like
// Exp(1) scaled to the requested rate. Uniform returns the next uniform value.
// Exhausting either script panics, which keeps tests honest about how many
// draws a scenario makes.
type ScriptedSource struct {
	Exps     []float64
	Uniforms []float64

	expIdx, uniIdx int
}

// NewScriptedSource creates a source that replays exps for Exponential.
func NewScriptedSource(exps ...float64) *ScriptedSource {
	return &ScriptedSource{Exps: exps}
}

func (s *ScriptedSource) Exponential(rate float64) float64 {
	if s.expIdx >= len(s.Exps) {
		panic(fmt.Sprintf("ScriptedSource: exponential script exhausted after %d draws", s.expIdx))
	}
	v := s.Exps[s.expIdx]
	s.expIdx++
	return v / rate
}

func (s *ScriptedSource) Uniform() float64 {
	if s.uniIdx >= len(s.Uniforms) {
		panic(fmt.Sprintf("ScriptedSource: uniform script exhausted after %d draws", s.uniIdx))
	}
	v := s.Uniforms[s.uniIdx]
	s.uniIdx++
	return v
}

// ExpDraws returns how many exponential draws were made.
func (s *ScriptedSource) ExpDraws() int { return s.expIdx }

// UniformDraws returns how many uniform draws were made.
func (s *ScriptedSource) UniformDraws() int { return s.uniIdx }

// ConstantSource returns the same values forever.
type ConstantSource struct {
	Exp float64 // returned by Exponential, divided by rate
	U   float64 // returned by Uniform
}

func (c ConstantSource) Exponential(rate float64) float64 { return c.Exp / rate }
func (c ConstantSource) Uniform() float64                 { return c.U }
