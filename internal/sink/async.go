package sink

import (
	"golang.org/x/sync/errgroup"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
)

// Async decouples the scheduler from a slow sink. Snapshots are queued
// on a bounded channel and written by a single worker, preserving step
// order. When the buffer fills the producer blocks: trajectory
// continuity is a hard contract, so snapshots are never dropped.
type Async struct {
	inner Sink
	ch    chan core.Snapshot
	g     *errgroup.Group
}

func NewAsync(inner Sink, buffer int) *Async {
	if buffer <= 0 {
		buffer = 64
	}
	a := &Async{
		inner: inner,
		ch:    make(chan core.Snapshot, buffer),
		g:     new(errgroup.Group),
	}
	a.g.Go(func() error {
		for snap := range a.ch {
			if err := a.inner.WriteStep(snap); err != nil {
				// Drain so a blocked producer can finish; the error
				// surfaces on Close.
				for range a.ch {
				}
				return err
			}
		}
		return nil
	})
	return a
}

// WriteSetup passes through synchronously; it happens before the first
// step so ordering is trivially preserved.
func (a *Async) WriteSetup(particles int, l float64, segments []geom.Segment) error {
	return a.inner.WriteSetup(particles, l, segments)
}

// WriteStep enqueues the snapshot. The snapshot's particle list is
// already a deep copy, so the worker cannot observe future mutation.
func (a *Async) WriteStep(snap core.Snapshot) error {
	a.ch <- snap
	return nil
}

// Close flushes the queue, stops the worker and closes the inner sink.
// It reports the first write error the worker hit.
func (a *Async) Close() error {
	close(a.ch)
	werr := a.g.Wait()
	cerr := a.inner.Close()
	if werr != nil {
		return werr
	}
	return cerr
}
