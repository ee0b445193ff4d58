package core

import (
	"math"

	"github.com/julianBogado1/disksim/internal/geom"
)

// guardband rejects contacts already touching at prediction time, so a
// pair that just collided cannot immediately re-collide on roundoff.
const guardband = 1e-14

// TimeToParticle returns the time from now until disks a and b touch,
// or false when they never do. Pure: neither particle is advanced.
func TimeToParticle(a, b *Particle) (float64, bool) {
	dr := b.Position.Sub(a.Position)
	dv := b.Velocity.Sub(a.Velocity)
	sigma := a.Radius + b.Radius

	vr := dv.Dot(dr)
	if vr >= -guardband {
		return 0, false
	}

	vv := dv.NormSquared()
	if vv <= guardband {
		return 0, false
	}

	d := vr*vr - vv*(dr.NormSquared()-sigma*sigma)
	if d < guardband {
		return 0, false
	}

	t := -(vr + math.Sqrt(d)) / vv
	if t < guardband {
		return 0, false
	}
	return t, true
}

// TimeToSegment returns the time until the disk reaches the segment's
// line with its near edge inside the segment's extent, or false. The
// extent check is widened by the disk radius; grazing contacts beyond
// the widened extent are the vertex predictor's problem.
func TimeToSegment(p *Particle, s geom.Segment) (float64, bool) {
	k := s.Fixed()

	var u, vu, w, vw float64
	if s.Orientation == geom.Horizontal {
		u, vu = p.Position.Y, p.Velocity.Y
		w, vw = p.Position.X, p.Velocity.X
	} else {
		u, vu = p.Position.X, p.Velocity.X
		w, vw = p.Position.Y, p.Velocity.Y
	}

	var offset float64
	switch {
	case u < k && vu > 0:
		offset = -p.Radius
	case u > k && vu < 0:
		offset = p.Radius
	default:
		return 0, false
	}

	t := (k + offset - u) / vu
	if t < guardband {
		return 0, false
	}

	lo, hi := s.Extent()
	at := w + vw*t
	if at < lo-p.Radius || at > hi+p.Radius {
		return 0, false
	}
	return t, true
}

// TimeToVertex treats the corner as a frozen disk of radius zero and
// reuses the disk predictor against it.
func TimeToVertex(p *Particle, v geom.Vertex) (float64, bool) {
	ghost := Particle{Position: v.Position}
	return TimeToParticle(p, &ghost)
}
