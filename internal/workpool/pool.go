// Package workpool tiles every path object in a scene across a fixed
// set of worker goroutines, each borrowing a scratch *tiler.Tiler from
// an internal/tiler.Pool for the duration of its job and returning it
// before picking up the next one. Workers steal queued jobs from each
// other when their own queue runs dry, which balances load when one
// object (a long path) takes much longer to tile than its neighbors.
//
// Each job only touches its own tiler.BuiltObject slot and the shared,
// lock-free internal/zbuffer.Buffer, so no synchronization beyond the
// buffer's own atomics and the tiler pool's own locking is required
// between jobs.
package workpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/vtilecore/vtile/internal/monotone"
	"github.com/vtilecore/vtile/internal/outline"
	"github.com/vtilecore/vtile/internal/tiler"
)

// Job is one path object waiting to be tiled.
type Job struct {
	Outline     *outline.Outline
	ViewBox     tiler.Rect
	ObjectIndex int
	Shader      uint16
	Rule        tiler.WindingRule
}

// Pool runs Jobs against a shared tiler.Pool and zbuffer across a
// fixed number of worker goroutines.
type Pool struct {
	workers int

	queues []chan tiledJob

	done chan struct{}
	wg   sync.WaitGroup

	running atomic.Bool

	tilers *tiler.Pool
	zbuf   tiler.ZBuffer

	results []*tiler.BuiltObject
}

type tiledJob struct {
	Job
	slot int
	wg   *sync.WaitGroup
}

// New creates a pool of the given size (GOMAXPROCS if workers <= 0)
// that tiles objects using tilers borrowed from tilerPool and records
// occlusion into zbuf.
func New(workers int, tilerPool *tiler.Pool, zbuf tiler.ZBuffer) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan tiledJob, workers),
		done:    make(chan struct{}),
		tilers:  tilerPool,
		zbuf:    zbuf,
	}
	for i := range workers {
		p.queues[i] = make(chan tiledJob, queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// TileAll tiles every job concurrently and returns one *tiler.BuiltObject
// per job, indexed the same way as jobs. A no-op (returning nil) if the
// pool is closed.
func (p *Pool) TileAll(jobs []Job) []*tiler.BuiltObject {
	if len(jobs) == 0 || !p.running.Load() {
		return nil
	}

	results := make([]*tiler.BuiltObject, len(jobs))
	p.results = results

	var completion sync.WaitGroup
	completion.Add(len(jobs))

	for i, j := range jobs {
		workerID := i % p.workers
		tj := tiledJob{Job: j, slot: i, wg: &completion}

		select {
		case p.queues[workerID] <- tj:
		case <-p.done:
			completion.Done()
		}
	}

	completion.Wait()
	return results
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case j := <-myQueue:
			p.runJob(j)

		default:
			if j, ok := p.steal(id); ok {
				p.runJob(j)
			} else {
				select {
				case <-p.done:
					p.drainQueue(myQueue)
					return
				case j := <-myQueue:
					p.runJob(j)
				}
			}
		}
	}
}

func (p *Pool) runJob(j tiledJob) {
	defer j.wg.Done()

	ctx := context.Background()
	t, err := p.tilers.Borrow(ctx)
	if err != nil {
		t = tiler.New(p.tilers.Tolerance())
	} else {
		defer p.tilers.Return(ctx, t)
	}

	prepared := monotone.Prepare(j.Outline)
	p.results[j.slot] = t.Run(prepared, j.ViewBox, j.ObjectIndex, j.Shader, j.Rule, p.zbuf)
}

func (p *Pool) drainQueue(queue chan tiledJob) {
	for {
		select {
		case j := <-queue:
			p.runJob(j)
		default:
			return
		}
	}
}

func (p *Pool) steal(myID int) (tiledJob, bool) {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case j := <-p.queues[i]:
			return j, true
		default:
		}
	}
	return tiledJob{}, false
}

// Close gracefully shuts the pool down: stops accepting new jobs,
// drains what is already queued, and waits for every worker to exit.
// Safe to call more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines in the pool.
func (p *Pool) Workers() int {
	return p.workers
}
