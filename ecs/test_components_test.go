package ecs_test

import "github.com/plus3/framestep/ecs"

// Component fixtures shared by the external tests.

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

// Non-struct components.
type (
	Score       int32
	Temperature float64
)

// Faction is registered as a shared component.
type Faction struct {
	Name  string
	Color uint32
}

// Components holding references, to check they survive storage moves.
type (
	Inventory struct {
		Items []string
	}
	Inner struct {
		Value int
	}
	Outer struct {
		Data *Inner
		List []*Inner
	}
)

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	for _, register := range []func(*ecs.ComponentRegistry){
		ecs.RegisterComponent[Position],
		ecs.RegisterComponent[Velocity],
		ecs.RegisterComponent[Name],
		ecs.RegisterComponent[Health],
		ecs.RegisterComponent[Score],
		ecs.RegisterComponent[Temperature],
		ecs.RegisterComponent[Inventory],
		ecs.RegisterComponent[Outer],
		ecs.RegisterSharedComponent[Faction],
	} {
		register(registry)
	}
	return registry
}
