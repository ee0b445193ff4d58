// Package metrics computes macroscopic observables from the snapshot
// stream: energy and momentum drift, wall pressure and inter-chamber
// flux.
package metrics

import (
	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
)

// Metric observes snapshots and reduces them to a single number.
type Metric interface {
	Name() string
	Observe(snap core.Snapshot)
	Value() float64
	Reset()
}

// Collector adapts a set of metrics to the sink interface so it can sit
// in the same fan-out as file sinks.
type Collector struct {
	metrics []Metric
}

func NewCollector(ms ...Metric) *Collector {
	return &Collector{metrics: ms}
}

func (c *Collector) WriteSetup(particles int, l float64, segments []geom.Segment) error {
	return nil
}

func (c *Collector) WriteStep(snap core.Snapshot) error {
	for _, m := range c.metrics {
		m.Observe(snap)
	}
	return nil
}

func (c *Collector) Close() error { return nil }

// Values returns the current value of every metric by name.
func (c *Collector) Values() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// KineticEnergy is Σ ½|v|² over a particle set (unit masses).
func KineticEnergy(particles []core.Particle) float64 {
	e := 0.0
	for i := range particles {
		e += 0.5 * particles[i].Velocity.NormSquared()
	}
	return e
}

// TotalMomentum is Σ v over a particle set (unit masses).
func TotalMomentum(particles []core.Particle) geom.Vec {
	var p geom.Vec
	for i := range particles {
		p = p.Add(particles[i].Velocity)
	}
	return p
}
