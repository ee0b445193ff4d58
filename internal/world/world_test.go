package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
)

func TestContainerGeometry(t *testing.T) {
	l := 0.05
	segments, vertices, err := Container(l)
	require.NoError(t, err)

	require.Len(t, segments, 8)
	require.Len(t, vertices, 2)

	for i, s := range segments {
		assert.Equal(t, i, s.ID)
	}

	lip := (Side - l) / 2
	assert.Equal(t, geom.V(Side, lip), vertices[0].Position)
	assert.Equal(t, geom.V(Side, lip+l), vertices[1].Position)

	// Walls chain into a closed polygon.
	for i := range segments {
		next := segments[(i+1)%len(segments)]
		assert.Equal(t, segments[i].B, next.A, "wall %d must end where wall %d starts", i, (i+1)%len(segments))
	}
}

func TestContainerFullSlitIsOneRectangle(t *testing.T) {
	segments, vertices, err := Container(Side)
	require.NoError(t, err)

	require.Len(t, segments, 4)
	assert.Empty(t, vertices)

	for i := range segments {
		next := segments[(i+1)%len(segments)]
		assert.Equal(t, segments[i].B, next.A)
	}

	// The merged rectangle spans both chambers.
	assert.True(t, Contains(geom.V(Side, 0.01), 0.002, Side))
}

func TestContainerRejectsBadSlit(t *testing.T) {
	_, _, err := Container(0)
	assert.ErrorIs(t, err, core.ErrInvalidState)
	_, _, err = Container(Side + 0.01)
	assert.ErrorIs(t, err, core.ErrInvalidState)
}

func TestContains(t *testing.T) {
	l := 0.05
	lip := (Side - l) / 2

	tests := []struct {
		name string
		pos  geom.Vec
		r    float64
		want bool
	}{
		{"center of left chamber", geom.V(0.045, 0.045), 0.002, true},
		{"center of right chamber", geom.V(0.135, 0.045), 0.002, true},
		{"straddling the slit", geom.V(Side, 0.045), 0.002, true},
		{"outside left wall", geom.V(-0.01, 0.045), 0.002, false},
		{"poking through bottom", geom.V(0.045, 0.001), 0.002, false},
		{"right chamber above slit band", geom.V(0.135, lip + l + 0.01), 0.002, false},
		{"crossing plane outside band", geom.V(Side, 0.01), 0.002, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.pos, tt.r, l))
		})
	}
}

func TestPlaceProducesValidState(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	particles, err := Place(50, 0.0015, 0.01, rng)
	require.NoError(t, err)
	require.Len(t, particles, 50)

	require.NoError(t, Validate(particles, 0.05))

	for i, p := range particles {
		assert.Equal(t, i, p.ID)
		assert.InDelta(t, 0.01, p.Velocity.Norm(), 1e-12)
		assert.Less(t, p.Position.X, Side, "placement stays in the left chamber")
	}
}

func TestPlaceIsDeterministic(t *testing.T) {
	a, err := Place(20, 0.0015, 0.01, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Place(20, 0.0015, 0.01, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, *a[i], *b[i])
	}
}

func TestPlaceRejectsImpossibleDensity(t *testing.T) {
	_, err := Place(10, 0.05, 0.01, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, core.ErrInvalidState)
}

func TestValidateCatchesOverlap(t *testing.T) {
	particles := []*core.Particle{
		{ID: 0, Position: geom.V(0.04, 0.04), Radius: 0.002},
		{ID: 1, Position: geom.V(0.041, 0.04), Radius: 0.002},
	}
	err := Validate(particles, 0.05)
	assert.ErrorIs(t, err, core.ErrInvalidState)
}

func TestValidateCatchesEscape(t *testing.T) {
	particles := []*core.Particle{
		{ID: 0, Position: geom.V(0.2, 0.04), Radius: 0.002},
	}
	err := Validate(particles, 0.05)
	assert.ErrorIs(t, err, core.ErrInvalidState)
}

func TestValidateCatchesBadRadius(t *testing.T) {
	particles := []*core.Particle{
		{ID: 0, Position: geom.V(0.04, 0.04), Radius: 0},
	}
	err := Validate(particles, 0.05)
	assert.ErrorIs(t, err, core.ErrInvalidState)
}
