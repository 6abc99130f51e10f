package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim/trace"
)

// Request is a pending or granted request for one unit of pool capacity.
type Request struct {
	PriorityKey *float64 // admission key (SJF estimate); nil under FIFO
	EnqueueSeq  int64    // request order within the pool
	RequestedAt float64  // virtual time of the request

	handle *Handle
	token  *Token
}

// Granted reports whether the request holds a capacity token.
func (r *Request) Granted() bool { return r.token != nil }

// Token returns the granted capacity token, or nil while still waiting.
func (r *Request) Token() *Token { return r.token }

// Token is proof of holding one unit of pool capacity. It must be released
// exactly once.
type Token struct {
	pool     *Pool
	released bool
}

// Pool is a capacity-n pool of interchangeable servers.
// Invariants: 0 <= inUse <= capacity; waiters is non-empty only when
// inUse == capacity.
type Pool struct {
	name     string
	eng      *Engine
	capacity int
	inUse    int
	waiters  []*Request
	policy   AdmissionPolicy
	nextSeq  int64

	// time-weighted accounting
	lastChange float64
	busyArea   float64
	queueArea  float64

	trace *trace.SimulationTrace
}

// NewPool creates a pool bound to eng. A capacity of zero is legal: every
// request then waits forever. Panics on negative capacity or nil policy.
func NewPool(eng *Engine, name string, capacity int, policy AdmissionPolicy) *Pool {
	if capacity < 0 {
		panic(fmt.Sprintf("NewPool: capacity must be non-negative, got %d", capacity))
	}
	if policy == nil {
		panic("NewPool: policy must not be nil")
	}
	return &Pool{
		name:       name,
		eng:        eng,
		capacity:   capacity,
		waiters:    make([]*Request, 0),
		policy:     policy,
		lastChange: eng.Now(),
	}
}

// SetTrace attaches a trace that receives one record per grant.
func (p *Pool) SetTrace(st *trace.SimulationTrace) { p.trace = st }

// Capacity returns the number of servers.
func (p *Pool) Capacity() int { return p.capacity }

// InUse returns the number of granted, unreleased tokens.
func (p *Pool) InUse() int { return p.inUse }

// QueueLen returns the number of waiting requests.
func (p *Pool) QueueLen() int { return len(p.waiters) }

// Request asks for one server on behalf of the running process h.
// When a server is free the request is granted synchronously and h keeps
// running. Otherwise the request joins the waiters and h is suspended until
// a Release selects it; h must then return from Resume and read the token
// when it is resumed.
func (p *Pool) Request(h *Handle, key *float64) *Request {
	if p.inUse >= p.capacity {
		// Only the running process can wait; check before touching pool state.
		p.eng.mustBeRunning(h, "Request")
	}
	now := p.eng.Now()
	p.accumulate(now)
	req := &Request{
		PriorityKey: key,
		EnqueueSeq:  p.nextSeq,
		RequestedAt: now,
		handle:      h,
	}
	p.nextSeq++

	if p.inUse < p.capacity {
		p.grant(req, true)
		p.checkInvariants()
		return req
	}

	p.waiters = append(p.waiters, req)
	p.eng.Passivate(h)
	logrus.Debugf("[t=%.4f] %s: %s waits (queue=%d)", now, p.name, h, len(p.waiters))
	p.checkInvariants()
	return req
}

// Release returns tok's unit to the pool. If requests are waiting, the
// policy's choice is granted and its process is woken with a zero-delay
// event at the current time.
// Panics with ErrDoubleRelease if tok was already released.
func (p *Pool) Release(tok *Token) {
	if tok == nil {
		panic("Release: token must not be nil")
	}
	if tok.pool != p {
		panic(fmt.Errorf("%w: %s", ErrForeignToken, p.name))
	}
	if tok.released {
		panic(fmt.Errorf("%w: %s", ErrDoubleRelease, p.name))
	}
	p.accumulate(p.eng.Now())
	tok.released = true
	p.inUse--

	if len(p.waiters) > 0 {
		idx := p.policy.Select(p.waiters)
		if idx < 0 || idx >= len(p.waiters) {
			panic(fmt.Sprintf("Release: policy %T selected index %d of %d waiters", p.policy, idx, len(p.waiters)))
		}
		next := p.waiters[idx]
		p.waiters = append(p.waiters[:idx], p.waiters[idx+1:]...)
		p.grant(next, false)
		if _, err := p.eng.Schedule(0, next.PriorityKey, next.handle); err != nil {
			panic(err)
		}
	}
	p.checkInvariants()
}

func (p *Pool) grant(req *Request, immediate bool) {
	p.inUse++
	req.token = &Token{pool: p}
	now := p.eng.Now()
	logrus.Debugf("[t=%.4f] %s: grant to %s (waited %.4f, in use %d/%d)",
		now, p.name, req.handle, now-req.RequestedAt, p.inUse, p.capacity)
	if p.trace != nil {
		p.trace.RecordGrant(trace.GrantRecord{
			ProcessID:   req.handle.ID(),
			RequestedAt: req.RequestedAt,
			GrantedAt:   now,
			PriorityKey: req.PriorityKey,
			QueueDepth:  len(p.waiters),
			Immediate:   immediate,
		})
	}
}

// accumulate integrates busy servers and queue length up to now.
func (p *Pool) accumulate(now float64) {
	if dt := now - p.lastChange; dt > 0 {
		p.busyArea += float64(p.inUse) * dt
		p.queueArea += float64(len(p.waiters)) * dt
	}
	p.lastChange = now
}

// Utilization returns the time-averaged fraction of busy servers from time
// zero to the engine's current time. Returns 0 before any time has elapsed
// or for a zero-capacity pool.
func (p *Pool) Utilization() float64 {
	now := p.eng.Now()
	p.accumulate(now)
	if now <= 0 || p.capacity == 0 {
		return 0
	}
	return p.busyArea / (float64(p.capacity) * now)
}

// MeanQueueLength returns the time-averaged number of waiting requests.
func (p *Pool) MeanQueueLength() float64 {
	now := p.eng.Now()
	p.accumulate(now)
	if now <= 0 {
		return 0
	}
	return p.queueArea / now
}

func (p *Pool) checkInvariants() {
	if p.inUse < 0 || p.inUse > p.capacity {
		panic(fmt.Sprintf("%s: in use %d outside [0, %d]", p.name, p.inUse, p.capacity))
	}
	if len(p.waiters) > 0 && p.inUse != p.capacity {
		panic(fmt.Sprintf("%s: %d waiters with %d/%d servers in use", p.name, len(p.waiters), p.inUse, p.capacity))
	}
}
