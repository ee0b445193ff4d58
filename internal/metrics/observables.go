package metrics

import (
	"math"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
	"github.com/julianBogado1/disksim/internal/world"
)

// Pressure estimates pressure from the impulse delivered to the walls:
// every wall or vertex event contributes twice the particle's normal
// speed (unit mass), divided by total wall length and elapsed time.
type Pressure struct {
	segments  []geom.Segment
	perimeter float64
	impulse   float64
	lastTime  float64
	samples   int
}

func NewPressure(segments []geom.Segment) *Pressure {
	perimeter := 0.0
	for _, s := range segments {
		lo, hi := s.Extent()
		perimeter += hi - lo
	}
	return &Pressure{segments: segments, perimeter: perimeter}
}

func (p *Pressure) Name() string { return "pressure" }

func (p *Pressure) Observe(snap core.Snapshot) {
	p.lastTime = snap.Time
	p.samples++

	ev := snap.Event
	if ev.Kind == core.KindParticle {
		return
	}
	if ev.Subject >= len(snap.Particles) {
		return
	}
	v := snap.Particles[ev.Subject].Velocity

	switch ev.Kind {
	case core.KindWall:
		// Post-collision velocity; the normal component flipped, so its
		// magnitude equals the incoming one.
		if p.segments[ev.Target].Orientation == geom.Horizontal {
			p.impulse += 2 * math.Abs(v.Y)
		} else {
			p.impulse += 2 * math.Abs(v.X)
		}
	case core.KindVertex:
		// The corner is the wall endpoint one radius from the disk
		// center; only the velocity component along that line flipped.
		pos := snap.Particles[ev.Subject].Position
		var n geom.Vec
		best := math.Inf(1)
		for _, s := range p.segments {
			for _, end := range [2]geom.Vec{s.A, s.B} {
				if d := pos.Sub(end).Norm(); d < best {
					best, n = d, pos.Sub(end)
				}
			}
		}
		p.impulse += 2 * math.Abs(v.Dot(n.Normalize()))
	}
}

func (p *Pressure) Value() float64 {
	if p.lastTime <= 0 || p.perimeter <= 0 {
		return 0
	}
	return p.impulse / (p.perimeter * p.lastTime)
}

func (p *Pressure) Reset() {
	p.impulse = 0
	p.lastTime = 0
	p.samples = 0
}

// Flux counts net particle crossings of the slit plane between the two
// chambers: positive for left-to-right.
type Flux struct {
	prevSide []int
	net      int
}

func NewFlux() *Flux { return &Flux{} }

func (f *Flux) Name() string { return "flux" }

func (f *Flux) Observe(snap core.Snapshot) {
	if f.prevSide == nil {
		f.prevSide = make([]int, len(snap.Particles))
		for i := range snap.Particles {
			f.prevSide[i] = side(snap.Particles[i].Position)
		}
		return
	}
	for i := range snap.Particles {
		s := side(snap.Particles[i].Position)
		if s != f.prevSide[i] {
			f.net += s - f.prevSide[i]
			f.prevSide[i] = s
		}
	}
}

func (f *Flux) Value() float64 { return float64(f.net) }

func (f *Flux) Reset() {
	f.prevSide = nil
	f.net = 0
}

func side(pos geom.Vec) int {
	if pos.X < world.Side {
		return 0
	}
	return 1
}
