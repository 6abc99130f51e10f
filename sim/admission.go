package sim

import (
	"fmt"
	"math"
)

// AdmissionPolicy chooses which waiting request receives a freed server.
// Select receives the waiters in enqueue order (never empty) and returns the
// index of the one to grant. Implementations MUST NOT modify the slice.
type AdmissionPolicy interface {
	Select(waiters []*Request) int
}

// FIFOPolicy grants the request with the smallest enqueue sequence.
type FIFOPolicy struct{}

func (FIFOPolicy) Select(waiters []*Request) int {
	best := 0
	for i := 1; i < len(waiters); i++ {
		if waiters[i].EnqueueSeq < waiters[best].EnqueueSeq {
			best = i
		}
	}
	return best
}

// SJFPolicy grants the request with the smallest priority key (an estimate of
// its service time), then the smallest enqueue sequence.
// Requests without a key sort after every keyed request.
// Warning: SJF can starve long jobs under sustained load.
type SJFPolicy struct{}

func (SJFPolicy) Select(waiters []*Request) int {
	best := 0
	for i := 1; i < len(waiters); i++ {
		ki, kb := keyOf(waiters[i]), keyOf(waiters[best])
		if ki != kb {
			if ki < kb {
				best = i
			}
			continue
		}
		if waiters[i].EnqueueSeq < waiters[best].EnqueueSeq {
			best = i
		}
	}
	return best
}

func keyOf(r *Request) float64 {
	if r.PriorityKey == nil {
		return math.Inf(1)
	}
	return *r.PriorityKey
}

// Admission policy names accepted by NewAdmissionPolicy.
const (
	PolicyFIFO = "fifo"
	PolicySJF  = "sjf"
)

// validAdmissionPolicies is the set of recognized admission policy names.
// The empty string defaults to fifo (for CLI flag default compatibility).
var validAdmissionPolicies = map[string]bool{"": true, PolicyFIFO: true, PolicySJF: true}

// IsValidAdmissionPolicy reports whether name is a recognized policy.
func IsValidAdmissionPolicy(name string) bool {
	return validAdmissionPolicies[name]
}

// NewAdmissionPolicy creates an admission policy by name.
// Panics on unrecognized names; validate with IsValidAdmissionPolicy first.
func NewAdmissionPolicy(name string) AdmissionPolicy {
	if !IsValidAdmissionPolicy(name) {
		panic(fmt.Sprintf("unknown admission policy %q", name))
	}
	switch name {
	case "", PolicyFIFO:
		return FIFOPolicy{}
	case PolicySJF:
		return SJFPolicy{}
	default:
		panic(fmt.Sprintf("unhandled admission policy %q", name))
	}
}

// usesPriorityKey reports whether jobs need an a-priori service estimate.
func usesPriorityKey(name string) bool {
	return name == PolicySJF
}
