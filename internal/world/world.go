// Package world builds and validates initial states for the
// two-chamber container: a square left chamber joined to a rectangular
// right chamber through a vertical slit of height L.
package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
)

// Side is the side length of the left chamber; the right chamber spans
// Side..2*Side horizontally.
const Side = 0.09

// overlapEps absorbs floating-point roundoff when checking contact and
// containment.
const overlapEps = 1e-12

// Container returns the walls and concave-corner vertices for a slit of
// height l, centered vertically on the shared side. Walls are listed
// counter-clockwise from the left chamber's bottom edge, matching the
// legacy setup file order.
func Container(l float64) ([]geom.Segment, []geom.Vertex, error) {
	if l <= 0 || l > Side {
		return nil, nil, fmt.Errorf("%w: slit height %g outside (0, %g]", core.ErrInvalidState, l, Side)
	}
	lip := (Side - l) / 2

	// A full-height slit has no lips: the chambers merge into one
	// rectangle with no concave corners.
	var corners [][2]geom.Vec
	if l == Side {
		corners = [][2]geom.Vec{
			{geom.V(0, 0), geom.V(2*Side, 0)},
			{geom.V(2*Side, 0), geom.V(2*Side, Side)},
			{geom.V(2*Side, Side), geom.V(0, Side)},
			{geom.V(0, Side), geom.V(0, 0)},
		}
	} else {
		corners = [][2]geom.Vec{
			{geom.V(0, 0), geom.V(Side, 0)},
			{geom.V(Side, 0), geom.V(Side, lip)},
			{geom.V(Side, lip), geom.V(2*Side, lip)},
			{geom.V(2*Side, lip), geom.V(2*Side, lip+l)},
			{geom.V(2*Side, lip+l), geom.V(Side, lip+l)},
			{geom.V(Side, lip+l), geom.V(Side, Side)},
			{geom.V(Side, Side), geom.V(0, Side)},
			{geom.V(0, Side), geom.V(0, 0)},
		}
	}

	segments := make([]geom.Segment, 0, len(corners))
	for i, c := range corners {
		s, err := geom.NewSegment(i, c[0], c[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", core.ErrInvalidState, err)
		}
		segments = append(segments, s)
	}

	// The slit lips are the only concave corners of the polygon. A full
	// slit (l == Side) leaves none.
	var vertices []geom.Vertex
	if l < Side {
		vertices = []geom.Vertex{
			{ID: 0, Position: geom.V(Side, lip)},
			{ID: 1, Position: geom.V(Side, lip + l)},
		}
	}

	return segments, vertices, nil
}

// Contains reports whether a disk of radius r centered at c lies fully
// inside the container, up to overlapEps. A disk may straddle the slit
// plane only while fully inside the slit's vertical band.
func Contains(c geom.Vec, r, l float64) bool {
	lip := (Side - l) / 2
	eps := overlapEps

	inLeft := c.X-r >= -eps && c.X+r <= Side+eps &&
		c.Y-r >= -eps && c.Y+r <= Side+eps
	inRight := c.X-r >= Side-eps && c.X+r <= 2*Side+eps &&
		c.Y-r >= lip-eps && c.Y+r <= lip+l+eps
	inBand := c.X-r >= -eps && c.X+r <= 2*Side+eps &&
		c.Y-r >= lip-eps && c.Y+r <= lip+l+eps

	return inLeft || inRight || inBand
}

// Validate checks the engine's input contract: positive radii, strict
// containment and pairwise non-overlap.
func Validate(particles []*core.Particle, l float64) error {
	for _, p := range particles {
		if p.Radius <= 0 {
			return fmt.Errorf("%w: particle %d has radius %g", core.ErrInvalidState, p.ID, p.Radius)
		}
		if !p.Position.IsValid() || !p.Velocity.IsValid() {
			return fmt.Errorf("%w: particle %d has non-finite state", core.ErrInvalidState, p.ID)
		}
		if !Contains(p.Position, p.Radius, l) {
			return fmt.Errorf("%w: particle %d at (%g, %g) outside container",
				core.ErrInvalidState, p.ID, p.Position.X, p.Position.Y)
		}
	}

	for i, p := range particles {
		for _, q := range particles[i+1:] {
			gap := p.Position.Sub(q.Position).Norm() - (p.Radius + q.Radius)
			if gap < -overlapEps {
				return fmt.Errorf("%w: particles %d and %d overlap by %g",
					core.ErrInvalidState, p.ID, q.ID, -gap)
			}
		}
	}
	return nil
}

// Place rejection-samples n non-overlapping disks of radius r in the
// left chamber, each with speed v in a uniformly random direction.
func Place(n int, r, v float64, rng *rand.Rand) ([]*core.Particle, error) {
	if r <= 0 {
		return nil, fmt.Errorf("%w: radius %g", core.ErrInvalidState, r)
	}
	if 2*r >= Side {
		return nil, fmt.Errorf("%w: radius %g does not fit the chamber", core.ErrInvalidState, r)
	}

	const maxAttempts = 100_000
	particles := make([]*core.Particle, 0, n)

	for id := 0; id < n; id++ {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			pos := geom.V(
				r+rng.Float64()*(Side-2*r),
				r+rng.Float64()*(Side-2*r),
			)
			if overlapsAny(pos, r, particles) {
				continue
			}
			angle := rng.Float64() * 2 * math.Pi
			particles = append(particles, &core.Particle{
				ID:       id,
				Position: pos,
				Velocity: geom.V(v*math.Cos(angle), v*math.Sin(angle)),
				Radius:   r,
			})
			placed = true
			break
		}
		if !placed {
			return nil, fmt.Errorf("%w: could not place particle %d of %d (density too high)",
				core.ErrInvalidState, id, n)
		}
	}
	return particles, nil
}

func overlapsAny(pos geom.Vec, r float64, particles []*core.Particle) bool {
	for _, q := range particles {
		if pos.Sub(q.Position).Norm() < r+q.Radius+overlapEps {
			return true
		}
	}
	return false
}
