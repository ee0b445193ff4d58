package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
	"github.com/julianBogado1/disksim/internal/world"
)

func snapWith(time float64, particles ...core.Particle) core.Snapshot {
	return core.Snapshot{Time: time, Particles: particles}
}

func TestKineticEnergy(t *testing.T) {
	particles := []core.Particle{
		{Velocity: geom.V(3, 4)},  // |v|^2 = 25
		{Velocity: geom.V(0, 2)},  // |v|^2 = 4
	}
	assert.InDelta(t, 14.5, KineticEnergy(particles), 1e-15)
}

func TestEnergyDriftFlatWhenConstant(t *testing.T) {
	m := NewEnergyDrift()
	p := core.Particle{Velocity: geom.V(1, 0)}

	m.Observe(snapWith(0, p))
	m.Observe(snapWith(1, p))
	assert.Zero(t, m.Value())

	// Halving the speed shows up as 75% energy drift.
	p.Velocity = geom.V(0.5, 0)
	m.Observe(snapWith(2, p))
	assert.InDelta(t, 0.75, m.Value(), 1e-12)

	m.Reset()
	assert.Zero(t, m.Value())
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()

	a := core.Particle{Velocity: geom.V(1, 0)}
	b := core.Particle{Velocity: geom.V(-1, 0)}
	m.Observe(snapWith(0, a, b))
	m.Observe(snapWith(1, a, b))
	assert.Zero(t, m.Value())

	// A wall bounce flips one velocity: momentum jumps by 2.
	a.Velocity = geom.V(-1, 0)
	m.Observe(snapWith(2, a, b))
	assert.InDelta(t, 2.0, m.Value(), 1e-12)
}

func TestPressureAccumulatesWallImpulse(t *testing.T) {
	segments, _, err := world.Container(0.05)
	require.NoError(t, err)
	m := NewPressure(segments)

	// Wall 0 is horizontal: impulse is twice |vy| after the bounce.
	snap := core.Snapshot{
		Time:  2.0,
		Event: core.Event{Kind: core.KindWall, Subject: 0, Target: 0},
		Particles: []core.Particle{
			{ID: 0, Velocity: geom.V(0.0, 0.25)},
		},
	}
	m.Observe(snap)

	perimeter := 0.0
	for _, s := range segments {
		lo, hi := s.Extent()
		perimeter += hi - lo
	}
	assert.InDelta(t, 0.5/(perimeter*2.0), m.Value(), 1e-12)
}

func TestPressureIgnoresParticleEvents(t *testing.T) {
	segments, _, err := world.Container(0.05)
	require.NoError(t, err)
	m := NewPressure(segments)

	snap := core.Snapshot{
		Time:      1.0,
		Event:     core.Event{Kind: core.KindParticle, Subject: 0, Target: 1},
		Particles: []core.Particle{{Velocity: geom.V(1, 1)}, {Velocity: geom.V(-1, -1)}},
	}
	m.Observe(snap)
	assert.Zero(t, m.Value())
}

func TestFluxCountsCrossings(t *testing.T) {
	m := NewFlux()

	left := core.Particle{ID: 0, Position: geom.V(0.04, 0.045)}
	right := core.Particle{ID: 0, Position: geom.V(0.13, 0.045)}

	m.Observe(snapWith(0, left))
	assert.Zero(t, m.Value())

	m.Observe(snapWith(1, right))
	assert.Equal(t, 1.0, m.Value())

	m.Observe(snapWith(2, left))
	assert.Zero(t, m.Value())
}

func TestCollectorGathersValues(t *testing.T) {
	c := NewCollector(NewEnergyDrift(), NewFlux())

	require.NoError(t, c.WriteStep(snapWith(0, core.Particle{Velocity: geom.V(1, 0)})))
	require.NoError(t, c.Close())

	values := c.Values()
	assert.Contains(t, values, "energy_drift")
	assert.Contains(t, values, "flux")
}
