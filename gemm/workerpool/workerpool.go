// Copyright 2026 go-gemm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workerpool provides the persistent worker pool that drives a
// GEMM engine's per-thread Execute calls. Workers are spawned once and
// reused, so repeated engine invocations (one per layer, per batch of
// inference, ...) pay no goroutine spawn cost.
//
// The pool owns thread lifecycle and fan-out/join; the engine only ever
// sees its (thread, totalThreads) slot. FanOut runs each slot exactly
// once and joins before returning, which also provides the sequencing
// barrier pretransposed packing relies on: pack before FanOut, compute
// inside it.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
)

// Pool is a persistent worker pool. Create once with New, reuse across
// many operations, and Close when done.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers persistent workers. If
// numWorkers <= 0, GOMAXPROCS is used.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}

	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Pending work completes first. Closing
// more than once is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// FanOut runs fn(thread, total) once for every thread in [0, total),
// each on its own worker, and blocks until all have returned. This is
// the shape a GEMM engine's Execute expects: every slot is invoked
// exactly once, no slot is invoked twice, and the join is a barrier.
//
// The first error (by thread index) is returned; other slots still run
// to completion, because partitioned output regions are independent.
func (p *Pool) FanOut(total int, fn func(thread, total int) error) error {
	if total <= 0 {
		return errors.NotValidf("fan-out width %d", total)
	}

	if total == 1 || p.closed.Load() {
		// Degenerate or closed pool: run the slots inline.
		for thread := 0; thread < total; thread++ {
			if err := fn(thread, total); err != nil {
				return errors.Trace(err)
			}
		}
		return nil
	}

	errs := make([]error, total)
	var wg sync.WaitGroup
	wg.Add(total)

	for thread := 0; thread < total; thread++ {
		thread := thread
		p.workC <- workItem{
			fn: func() {
				errs[thread] = fn(thread, total)
			},
			barrier: &wg,
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// ParallelFor executes fn over [0, n) split into contiguous ranges,
// one range per worker. Blocks until all work completes.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
