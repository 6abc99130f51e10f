package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// arrivalGenerator spawns jobs: InitialJobs at time zero, then one job
// after every inter-arrival delay, until the horizon stops the engine.
type arrivalGenerator struct {
	sim     *Simulation
	started bool
}

func (g *arrivalGenerator) Resume(eng *Engine, h *Handle) {
	if !g.started {
		g.started = true
		for i := 0; i < g.sim.cfg.InitialJobs; i++ {
			g.sim.spawnJob(eng)
		}
	} else {
		g.sim.spawnJob(eng)
	}
	eng.Hold(h, g.sim.arrivals.Sample(g.sim.streams.Arrival))
}

type jobPhase int

const (
	jobArriving jobPhase = iota
	jobQueued
	jobInService
	jobDone
)

// job is one customer's lifecycle: arrive, queue for a server, get served,
// release the server.
type job struct {
	id        int64
	sim       *Simulation
	phase     jobPhase
	arrivedAt float64
	estimate  *float64
	req       *Request
}

func (j *job) Resume(eng *Engine, h *Handle) {
	switch j.phase {
	case jobArriving:
		j.arrivedAt = eng.Now()
		if usesPriorityKey(j.sim.cfg.Admission) {
			// An estimate, drawn independently of the realized service time.
			est := j.sim.service.Sample(j.sim.streams.Priority)
			j.estimate = &est
		}
		j.phase = jobQueued
		j.req = j.sim.pool.Request(h, j.estimate)
		if !j.req.Granted() {
			return
		}
		j.startService(eng, h)
	case jobQueued:
		if !j.req.Granted() {
			panic(fmt.Sprintf("job %d resumed without a grant", j.id))
		}
		j.startService(eng, h)
	case jobInService:
		j.phase = jobDone
		j.sim.pool.Release(j.req.Token())
		j.sim.metrics.Completed++
		logrus.Debugf("[t=%.4f] job %d departs", eng.Now(), j.id)
	default:
		panic(fmt.Sprintf("job %d resumed in phase %d", j.id, j.phase))
	}
}

func (j *job) startService(eng *Engine, h *Handle) {
	j.sim.stats.Record(j.id, eng.Now()-j.arrivedAt)
	j.sim.metrics.Started++
	j.phase = jobInService
	eng.Hold(h, j.sim.service.Sample(j.sim.streams.Service))
}
