// Package ebitenpresent draws present.Renderable entities with ebiten.
package ebitenpresent

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/framestep/present"
)

// Sprite is an image placed by its centre. It satisfies present.Transform.
type Sprite struct {
	Image         *ebiten.Image
	Width, Height float64
	Scale         float64
	Hidden        bool

	x, y     float64
	rotation float64
}

var _ present.Transform = (*Sprite)(nil)

// NewSprite sizes the sprite from img's bounds.
func NewSprite(img *ebiten.Image) *Sprite {
	s := &Sprite{Image: img, Scale: 1}
	if img != nil {
		bounds := img.Bounds()
		s.Width = float64(bounds.Dx())
		s.Height = float64(bounds.Dy())
	}
	return s
}

func (s *Sprite) SetPosition(x, y float64) { s.x, s.y = x, y }

func (s *Sprite) SetRotation(radians float64) { s.rotation = radians }

func (s *Sprite) Position() (float64, float64) { return s.x, s.y }

func (s *Sprite) Rotation() float64 { return s.rotation }

// GeoM maps image space to screen space: centre on the origin, scale,
// rotate, then move to the sprite position.
func (s *Sprite) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-s.Width/2, -s.Height/2)
	if s.Scale != 0 && s.Scale != 1 {
		g.Scale(s.Scale, s.Scale)
	}
	g.Rotate(s.rotation)
	g.Translate(s.x, s.y)
	return g
}

// Layer is an ordered set of sprites drawn back to front.
type Layer struct {
	sprites []*Sprite
}

func NewLayer() *Layer {
	return &Layer{}
}

// Add creates a sprite for img on top of the layer and returns it as the
// handle for a present.Renderable.
func (l *Layer) Add(img *ebiten.Image) *Sprite {
	s := NewSprite(img)
	l.sprites = append(l.sprites, s)
	return s
}

func (l *Layer) Remove(s *Sprite) {
	l.sprites = slices.DeleteFunc(l.sprites, func(other *Sprite) bool {
		return other == s
	})
}

func (l *Layer) Len() int {
	return len(l.sprites)
}

func (l *Layer) Draw(screen *ebiten.Image) {
	for _, s := range l.sprites {
		if s.Hidden || s.Image == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM = s.GeoM()
		screen.DrawImage(s.Image, op)
	}
}
