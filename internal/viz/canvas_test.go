package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
	"github.com/julianBogado1/disksim/internal/world"
)

func TestCanvasDrawsWallsAndParticles(t *testing.T) {
	segments, _, err := world.Container(0.05)
	require.NoError(t, err)

	c := NewCanvas(40, 12)
	c.DrawWalls(segments)
	c.DrawParticles([]core.Particle{
		{ID: 0, Position: geom.V(0.045, 0.045)},
		{ID: 1, Position: geom.V(0.135, 0.045)},
	})

	out := c.String()
	assert.Contains(t, out, "─")
	assert.Contains(t, out, "│")
	assert.Contains(t, out, "●", "left-chamber disk")
	assert.Contains(t, out, "o", "right-chamber disk")

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 12)
	for _, line := range lines {
		assert.Len(t, []rune(line), 40)
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(10, 4)
	c.DrawParticles([]core.Particle{{Position: geom.V(0.05, 0.05)}})
	require.Contains(t, c.String(), "●")

	c.Clear()
	assert.NotContains(t, c.String(), "●")
}
