package main

import (
	"math"
	"math/rand"

	"github.com/plus3/framestep/ecs"
	"github.com/plus3/framestep/present"
)

type Velocity struct {
	X, Y float64
}

// Arena is the singleton rectangle movers bounce inside, in world units.
type Arena struct {
	Width, Height float64
}

// Flock groups movers; it is shared so every member points at one value.
type Flock struct {
	Name string
}

func registerComponents(registry *ecs.ComponentRegistry) {
	present.RegisterComponents(registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterSharedComponent[Flock](registry)
}

// spawnMovers places n movers at random inside the arena, each heading in a
// random direction at speed world units per second. newHandle supplies the
// platform object for each one.
func spawnMovers(storage *ecs.Storage, r *rand.Rand, n int, speed float64, newHandle func(i int) present.Transform) error {
	arena := ecs.NewSingleton[Arena](storage).Get()
	flocks := []Flock{{Name: "red"}, {Name: "blue"}}

	for i := range n {
		angle := r.Float64() * 2 * math.Pi
		_, err := storage.Spawn(
			present.Position{X: r.Float64() * arena.Width, Y: r.Float64() * arena.Height},
			present.Rotation{Radians: angle},
			Velocity{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			present.Renderable{Handle: newHandle(i)},
			flocks[i%len(flocks)],
		)
		if err != nil {
			return err
		}
	}
	return nil
}
