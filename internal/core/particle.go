package core

import (
	"fmt"

	"github.com/julianBogado1/disksim/internal/geom"
)

// Particle is a hard disk. Position and velocity mutate as the engine
// processes events; Collisions counts every collision the particle has
// participated in and doubles as the invalidation token for queued
// events (see Event).
type Particle struct {
	ID         int
	Position   geom.Vec
	Velocity   geom.Vec
	Radius     float64
	Collisions uint64
}

// Drift advances the particle along a straight line for dt. Between
// events disks move force-free, so this is exact.
func (p *Particle) Drift(dt float64) {
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
}

// Speed2 is the squared speed, twice the per-unit-mass kinetic energy.
func (p *Particle) Speed2() float64 {
	return p.Velocity.NormSquared()
}

func (p *Particle) String() string {
	return fmt.Sprintf("%.14f %.14f %.14f %.14f %.14f",
		p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y, p.Radius)
}

func copyParticles(ps []*Particle) []Particle {
	out := make([]Particle, len(ps))
	for i, p := range ps {
		out[i] = *p
	}
	return out
}
