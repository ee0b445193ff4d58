// Package sink publishes engine snapshots. The engine only knows the
// write side; whether steps land on disk, in memory or on a hash is a
// sink concern.
package sink

import (
	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
)

// Sink consumes one setup record and then every snapshot in step order.
type Sink interface {
	WriteSetup(particles int, l float64, segments []geom.Segment) error
	WriteStep(snap core.Snapshot) error
	Close() error
}

// Memory retains every snapshot. Used by tests and metrics passes.
type Memory struct {
	ParticleCount int
	Slit          float64
	Segments      []geom.Segment
	Steps         []core.Snapshot
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) WriteSetup(particles int, l float64, segments []geom.Segment) error {
	m.ParticleCount = particles
	m.Slit = l
	m.Segments = segments
	return nil
}

func (m *Memory) WriteStep(snap core.Snapshot) error {
	m.Steps = append(m.Steps, snap)
	return nil
}

func (m *Memory) Close() error { return nil }

// Multi fans writes out to several sinks in order, stopping at the
// first error.
type Multi []Sink

func (m Multi) WriteSetup(particles int, l float64, segments []geom.Segment) error {
	for _, s := range m {
		if err := s.WriteSetup(particles, l, segments); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) WriteStep(snap core.Snapshot) error {
	for _, s := range m {
		if err := s.WriteStep(snap); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
