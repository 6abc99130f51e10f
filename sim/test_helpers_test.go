package sim

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// funcProcess adapts a function to Process.
type funcProcess func(eng *Engine, h *Handle)

func (f funcProcess) Resume(eng *Engine, h *Handle) { f(eng, h) }

// holder requests one server, holds it for hold, then releases it.
// It appends its name to *served when service starts.
type holder struct {
	name   string
	pool   *Pool
	key    *float64
	hold   float64
	served *[]string
	starts map[string]float64

	phase int
	req   *Request
}

func (p *holder) Resume(eng *Engine, h *Handle) {
	switch p.phase {
	case 0:
		p.phase = 1
		p.req = p.pool.Request(h, p.key)
		if !p.req.Granted() {
			return
		}
		p.serve(eng, h)
	case 1:
		p.serve(eng, h)
	case 2:
		p.pool.Release(p.req.Token())
	}
}

func (p *holder) serve(eng *Engine, h *Handle) {
	*p.served = append(*p.served, p.name)
	if p.starts != nil {
		p.starts[p.name] = eng.Now()
	}
	p.phase = 2
	eng.Hold(h, p.hold)
}

func keyPtr(v float64) *float64 { return &v }

// requirePanicIs asserts that f panics with an error matching target.
func requirePanicIs(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	}()
	f()
}

// testHandle returns a handle usable for pool calls outside a running engine.
func testHandle(id int64) *Handle {
	return &Handle{id: id, name: fmt.Sprintf("test-%d", id), state: StateRunning}
}
