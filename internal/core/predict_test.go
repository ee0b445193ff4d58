package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianBogado1/disksim/internal/geom"
)

func TestTimeToParticleHeadOn(t *testing.T) {
	a := &Particle{ID: 0, Position: geom.V(-2, 0), Velocity: geom.V(1, 0), Radius: 1}
	b := &Particle{ID: 1, Position: geom.V(2, 0), Velocity: geom.V(-1, 0), Radius: 1}

	tc, ok := TimeToParticle(a, b)
	require.True(t, ok)
	assert.InDelta(t, 1.0, tc, 1e-12)
}

func TestTimeToParticleReceding(t *testing.T) {
	a := &Particle{ID: 0, Position: geom.V(-2, 0), Velocity: geom.V(-1, 0), Radius: 0.5}
	b := &Particle{ID: 1, Position: geom.V(2, 0), Velocity: geom.V(1, 0), Radius: 0.5}

	_, ok := TimeToParticle(a, b)
	assert.False(t, ok)
}

func TestTimeToParticleParallel(t *testing.T) {
	a := &Particle{ID: 0, Position: geom.V(0, 0), Velocity: geom.V(1, 0), Radius: 0.5}
	b := &Particle{ID: 1, Position: geom.V(3, 0), Velocity: geom.V(1, 0), Radius: 0.5}

	_, ok := TimeToParticle(a, b)
	assert.False(t, ok)
}

func TestTimeToParticleGrazingMiss(t *testing.T) {
	// Vertical offset 1.998, about twice sigma = 1: closest approach misses.
	a := &Particle{ID: 0, Position: geom.V(-2, 0.999), Velocity: geom.V(1, 0), Radius: 0.5}
	b := &Particle{ID: 1, Position: geom.V(2, -0.999), Velocity: geom.V(-1, 0), Radius: 0.5}

	_, ok := TimeToParticle(a, b)
	assert.False(t, ok)
}

func TestTimeToParticleOffsetHit(t *testing.T) {
	a := &Particle{ID: 0, Position: geom.V(-2, 0.5), Velocity: geom.V(1, 0), Radius: 0.5}
	b := &Particle{ID: 1, Position: geom.V(2, -0.25), Velocity: geom.V(-1, 0), Radius: 0.5}

	tc, ok := TimeToParticle(a, b)
	require.True(t, ok)

	// At contact the gap equals the radii sum.
	ca := a.Position.Add(a.Velocity.Scale(tc))
	cb := b.Position.Add(b.Velocity.Scale(tc))
	assert.InDelta(t, 1.0, cb.Sub(ca).Norm(), 1e-12)
}

func TestTimeToSegment(t *testing.T) {
	right, err := geom.NewSegment(0, geom.V(1, 0), geom.V(1, 1))
	require.NoError(t, err)
	top, err := geom.NewSegment(1, geom.V(0, 1), geom.V(1, 1))
	require.NoError(t, err)

	tests := []struct {
		name string
		p    Particle
		seg  geom.Segment
		want float64
		hit  bool
	}{
		{
			name: "approach right wall",
			p:    Particle{Position: geom.V(0.05, 0.5), Velocity: geom.V(1, 0), Radius: 0.1},
			seg:  right,
			want: 0.85,
			hit:  true,
		},
		{
			name: "receding from right wall",
			p:    Particle{Position: geom.V(0.5, 0.5), Velocity: geom.V(-1, 0), Radius: 0.1},
			seg:  right,
			hit:  false,
		},
		{
			name: "no normal velocity",
			p:    Particle{Position: geom.V(0.5, 0.5), Velocity: geom.V(0, 1), Radius: 0.1},
			seg:  right,
			hit:  false,
		},
		{
			name: "approach top wall",
			p:    Particle{Position: geom.V(0.5, 0.2), Velocity: geom.V(0, 2), Radius: 0.1},
			seg:  top,
			want: 0.35,
			hit:  true,
		},
		{
			name: "overshoots extent",
			p:    Particle{Position: geom.V(3, 0.5), Velocity: geom.V(0, 1), Radius: 0.1},
			seg:  top,
			hit:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TimeToSegment(&tt.p, tt.seg)
			if !tt.hit {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestTimeToSegmentApproachFromAbove(t *testing.T) {
	bottom, err := geom.NewSegment(0, geom.V(0, 0), geom.V(1, 0))
	require.NoError(t, err)

	p := Particle{Position: geom.V(0.5, 0.6), Velocity: geom.V(0, -1), Radius: 0.1}
	tc, ok := TimeToSegment(&p, bottom)
	require.True(t, ok)
	assert.InDelta(t, 0.5, tc, 1e-12)
}

func TestTimeToVertex(t *testing.T) {
	v := geom.Vertex{ID: 0, Position: geom.V(1, 0)}
	p := Particle{Position: geom.V(0, 0), Velocity: geom.V(1, 0), Radius: 0.25}

	tc, ok := TimeToVertex(&p, v)
	require.True(t, ok)
	assert.InDelta(t, 0.75, tc, 1e-12)

	// Moving away: never.
	p.Velocity = geom.V(-1, 0)
	_, ok = TimeToVertex(&p, v)
	assert.False(t, ok)
}

func TestTimeToVertexGlancing(t *testing.T) {
	v := geom.Vertex{ID: 0, Position: geom.V(1, 0)}

	// Passes at distance 0.1 above the corner; hits only when the
	// radius covers that offset.
	hit := Particle{Position: geom.V(0, 0.1), Velocity: geom.V(1, 0), Radius: 0.2}
	_, ok := TimeToVertex(&hit, v)
	assert.True(t, ok)

	miss := Particle{Position: geom.V(0, 0.1), Velocity: geom.V(1, 0), Radius: 0.05}
	_, ok = TimeToVertex(&miss, v)
	assert.False(t, ok)
}

func TestPredictorsArePure(t *testing.T) {
	a := &Particle{ID: 0, Position: geom.V(-2, 0), Velocity: geom.V(1, 0), Radius: 0.5}
	b := &Particle{ID: 1, Position: geom.V(2, 0), Velocity: geom.V(-1, 0), Radius: 0.5}
	before := []Particle{*a, *b}

	TimeToParticle(a, b)
	seg, _ := geom.NewSegment(0, geom.V(5, -5), geom.V(5, 5))
	TimeToSegment(a, seg)
	TimeToVertex(a, geom.Vertex{Position: geom.V(5, 0)})

	assert.Equal(t, before[0], *a)
	assert.Equal(t, before[1], *b)
}
