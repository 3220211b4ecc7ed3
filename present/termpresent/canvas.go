// Package termpresent draws present.Renderable entities as glyphs on a
// tcell screen.
package termpresent

import (
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/framestep/present"
)

var arrows = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Glyph is a single terminal cell. With Directional set, the rune follows
// the rotation, snapped to one of eight arrows.
type Glyph struct {
	Rune        rune
	Style       tcell.Style
	Directional bool
	Hidden      bool

	x, y     float64
	rotation float64
}

var _ present.Transform = (*Glyph)(nil)

func (g *Glyph) SetPosition(x, y float64) { g.x, g.y = x, y }

func (g *Glyph) SetRotation(radians float64) { g.rotation = radians }

// Cell returns the rune to draw. y grows downward, so positive rotation
// turns clockwise on screen.
func (g *Glyph) Cell() rune {
	if !g.Directional {
		return g.Rune
	}
	octant := int(math.Round(g.rotation/(math.Pi/4))) % len(arrows)
	if octant < 0 {
		octant += len(arrows)
	}
	return arrows[octant]
}

// Canvas maps world units to terminal cells. Scale is cells per world unit.
type Canvas struct {
	screen tcell.Screen
	glyphs []*Glyph
	Scale  float64
}

func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen, Scale: 1}
}

func (c *Canvas) Screen() tcell.Screen {
	return c.screen
}

// Add creates a glyph on top of the canvas and returns it as the handle for
// a present.Renderable.
func (c *Canvas) Add(r rune, style tcell.Style) *Glyph {
	g := &Glyph{Rune: r, Style: style}
	c.glyphs = append(c.glyphs, g)
	return g
}

func (c *Canvas) Remove(g *Glyph) {
	c.glyphs = slices.DeleteFunc(c.glyphs, func(other *Glyph) bool {
		return other == g
	})
}

func (c *Canvas) Len() int {
	return len(c.glyphs)
}

// cell converts a world position to a screen cell.
func (c *Canvas) cell(x, y float64) (int, int) {
	return int(math.Floor(x * c.Scale)), int(math.Floor(y * c.Scale))
}

// Draw clears the screen and paints every visible glyph inside its bounds.
// Later glyphs cover earlier ones in the same cell.
func (c *Canvas) Draw() {
	c.screen.Clear()
	width, height := c.screen.Size()
	for _, g := range c.glyphs {
		if g.Hidden {
			continue
		}
		cx, cy := c.cell(g.x, g.y)
		if cx < 0 || cy < 0 || cx >= width || cy >= height {
			continue
		}
		c.screen.SetContent(cx, cy, g.Cell(), nil, g.Style)
	}
	c.screen.Show()
}
