package viz

import (
	"strings"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
	"github.com/julianBogado1/disksim/internal/world"
)

// Canvas is a rune grid mapping the container onto terminal cells. The
// container spans 2*Side x Side, so the grid keeps a 2:1 aspect.
type Canvas struct {
	width, height int
	cells         [][]rune
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: width, height: height}
	c.cells = make([][]rune, height)
	for i := range c.cells {
		c.cells[i] = make([]rune, width)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = ' '
		}
	}
}

func (c *Canvas) set(x, y int, r rune) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[c.height-1-y][x] = r
}

// project maps world coordinates to cell coordinates.
func (c *Canvas) project(p geom.Vec) (int, int) {
	x := int(p.X / (2 * world.Side) * float64(c.width-1))
	y := int(p.Y / world.Side * float64(c.height-1))
	return x, y
}

// DrawWalls traces every segment with line runes.
func (c *Canvas) DrawWalls(segments []geom.Segment) {
	for _, s := range segments {
		ax, ay := c.project(s.A)
		bx, by := c.project(s.B)
		if s.Orientation == geom.Horizontal {
			if ax > bx {
				ax, bx = bx, ax
			}
			for x := ax; x <= bx; x++ {
				c.set(x, ay, '─')
			}
		} else {
			if ay > by {
				ay, by = by, ay
			}
			for y := ay; y <= by; y++ {
				c.set(ax, y, '│')
			}
		}
	}
}

// DrawParticles plots every disk, marking right-chamber disks
// differently so the diffusion through the slit is visible.
func (c *Canvas) DrawParticles(particles []core.Particle) {
	for i := range particles {
		p := &particles[i]
		x, y := c.project(p.Position)
		mark := '●'
		if p.Position.X >= world.Side {
			mark = 'o'
		}
		c.set(x, y, mark)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
