package core

import "github.com/julianBogado1/disksim/internal/geom"

// Responses mutate the participants' velocities at the moment of
// contact and bump their collision counts, invalidating every queued
// event that involves them.

// bounceParticles applies the equal-mass elastic impulse along the line
// of centers. Momentum and kinetic energy are exchanged exactly.
func bounceParticles(a, b *Particle) {
	dr := b.Position.Sub(a.Position)
	dv := b.Velocity.Sub(a.Velocity)
	sigma := a.Radius + b.Radius

	j := (2 * dv.Dot(dr)) / (2 * sigma)
	impulse := dr.Scale(j / sigma)

	a.Velocity = a.Velocity.Add(impulse)
	b.Velocity = b.Velocity.Sub(impulse)

	a.Collisions++
	b.Collisions++
}

// bounceSegment reflects the velocity component normal to the wall.
func bounceSegment(p *Particle, s geom.Segment) {
	if s.Orientation == geom.Horizontal {
		p.Velocity.Y = -p.Velocity.Y
	} else {
		p.Velocity.X = -p.Velocity.X
	}
	p.Collisions++
}

// bounceVertex mirrors the velocity across the contact normal. The
// corner acts as an immovable partner, so only the normal component
// flips.
func bounceVertex(p *Particle, v geom.Vertex) {
	n := p.Position.Sub(v.Position).Normalize()
	p.Velocity = p.Velocity.Sub(n.Scale(2 * p.Velocity.Dot(n)))
	p.Collisions++
}
