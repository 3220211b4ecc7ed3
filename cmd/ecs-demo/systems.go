package main

import (
	"math"

	"github.com/plus3/framestep/ecs"
	"github.com/plus3/framestep/present"
)

//go:generate go run ../systemgen --output systems_gen.go --var Systems

// MovementSystem integrates velocity.
//
//framestep:system priority=0
type MovementSystem struct {
	Movers *ecs.View[struct {
		*present.Position
		*Velocity
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Movers.Values() {
		m.Position.X += m.Velocity.X * frame.DeltaTime
		m.Position.Y += m.Velocity.Y * frame.DeltaTime
	}
}

// BounceSystem reflects movers off the arena walls.
//
//framestep:system priority=10
type BounceSystem struct {
	Movers *ecs.View[struct {
		*present.Position
		*Velocity
	}]
	Arena ecs.Singleton[Arena]
}

func (s *BounceSystem) Execute(frame *ecs.UpdateFrame) {
	arena := s.Arena.Get()
	for m := range s.Movers.Values() {
		m.Position.X, m.Velocity.X = reflectAxis(m.Position.X, m.Velocity.X, arena.Width)
		m.Position.Y, m.Velocity.Y = reflectAxis(m.Position.Y, m.Velocity.Y, arena.Height)
	}
}

// reflectAxis folds pos back into [0, limit) and flips v when it crossed a wall.
func reflectAxis(pos, v, limit float64) (float64, float64) {
	if limit <= 0 {
		return 0, v
	}
	switch {
	case pos < 0:
		return math.Min(-pos, math.Nextafter(limit, 0)), math.Abs(v)
	case pos >= limit:
		return math.Max(math.Min(2*limit-pos, math.Nextafter(limit, 0)), 0), -math.Abs(v)
	}
	return pos, v
}

// HeadingSystem turns movers to face where they are going.
//
//framestep:system priority=20
type HeadingSystem struct {
	Movers *ecs.View[struct {
		*Velocity
		*present.Rotation
	}]
}

func (s *HeadingSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Movers.Values() {
		if m.Velocity.X == 0 && m.Velocity.Y == 0 {
			continue
		}
		m.Rotation.Radians = math.Atan2(m.Velocity.Y, m.Velocity.X)
	}
}
