// Copyright 2026 The protoCore-sub001 Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package gc implements the tracing mark-and-sweep collector that
// runs against a heap.Space: a stop-the-world pass that walks every
// RootProvider and the two space-wide roots, marks everything
// transitively reachable, and sweeps whatever the mark phase didn't
// reach back onto the free list.
package gc

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/value"
)

// Config tunes a Collector's background loop. A zero Config is valid;
// Run falls back to the owning Space's own GCSleep.
type Config struct {
	// Logf, if non-nil, receives one line per completed cycle plus any
	// diagnostics. It is deliberately printf-shaped, not an io.Writer,
	// to match the rest of the runtime's Logger callback convention.
	Logf func(format string, args ...interface{})
}

func (c Config) logf(format string, args ...interface{}) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// Stats summarizes one completed collection cycle.
type Stats struct {
	Marked   int64
	Freed    int64
	Duration time.Duration
}

// Collector drives the safepoint protocol on a single Space. One
// Collector per Space; Run should only ever be called from one
// goroutine at a time.
type Collector struct {
	space *heap.Space
	cfg   Config

	cycles int64
}

// New returns a Collector for space.
func New(space *heap.Space, cfg Config) *Collector {
	return &Collector{space: space, cfg: cfg}
}

// Cycles reports how many collections this Collector has completed.
func (c *Collector) Cycles() int64 {
	return atomic.LoadInt64(&c.cycles)
}

// Run blocks, triggering a Cycle whenever the Space's configured
// GCSleep elapses or a thread calls into allocation back-pressure,
// until ctx is canceled.
func (c *Collector) Run(ctx context.Context) {
	sleep := c.space.Config().GCSleep()
	if sleep <= 0 {
		sleep = time.Second
	}
	timer := time.NewTimer(sleep)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		case <-c.space.Wake():
		}
		stats := c.Cycle()
		c.cfg.logf("gc: cycle %d marked=%d freed=%d in %s", c.Cycles(), stats.Marked, stats.Freed, stats.Duration)
		if c.space.GCRequested() {
			c.space.ClearGCRequest()
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(sleep)
	}
}

// Cycle runs exactly one stop-the-world mark-and-sweep pass
// synchronously and returns its statistics. Safe to call directly
// (e.g. from tests, or a host-exposed "collect now" hook) without
// going through Run.
func (c *Collector) Cycle() Stats {
	start := time.Now()

	c.space.BeginSafepoint()
	c.space.WaitAllStopped()

	marked := c.mark()
	freed := c.space.Sweep()

	c.space.EndSafepoint()
	atomic.AddInt64(&c.cycles, 1)

	return Stats{Marked: marked, Freed: freed, Duration: time.Since(start)}
}

// mark walks every root and transitively every Referencer reachable
// from it, setting Slot.Marked along the way, and returns how many
// cells it touched. It must only run while the world is stopped.
func (c *Collector) mark() int64 {
	var stack []*heap.Slot
	var marked int64

	visit := func(w value.Word) {
		if !w.IsCell() {
			return
		}
		cell := value.CellOf(w)
		slot, ok := cell.(*heap.Slot)
		if !ok || slot == nil || slot.Marked {
			return
		}
		slot.Marked = true
		marked++
		stack = append(stack, slot)
	}

	if root := c.space.MutableRoot.Load(); !root.IsNone() {
		visit(root)
	}
	if root := c.space.TupleRoot.Load(); !root.IsNone() {
		visit(root)
	}
	c.space.ForEachRootProvider(func(p heap.RootProvider) {
		p.ScanRoots(visit)
	})

	for len(stack) > 0 {
		n := len(stack) - 1
		slot := stack[n]
		stack = stack[:n]
		if slot.Body == nil {
			continue
		}
		slot.Body.ProcessReferences(visit)
	}

	return marked
}

// CollectNow forces a single synchronous cycle, bypassing Run's
// sleep/wake schedule entirely. Intended for hosts that want a
// deterministic "collect now" entry point (tests, a REPL command,
// a before-measurement hook).
func (c *Collector) CollectNow() Stats {
	return c.Cycle()
}
