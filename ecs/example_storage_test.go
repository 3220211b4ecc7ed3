package ecs_test

import (
	"fmt"

	"github.com/plus3/framestep/ecs"
	"github.com/rotisserie/eris"
)

// ExampleStorage demonstrates the basic API for managing entities and components.
// Storage is the core container for all entities and their component data.
// Each component type lives in its own dense array indexed through the entity slot.
func ExampleStorage() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	player, _ := storage.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
		Health{Current: 100, Max: 100},
	)

	pos := ecs.ReadComponent[Position](storage, player)
	fmt.Printf("Player spawned at (%.0f, %.0f)\n", pos.X, pos.Y)

	pos.X = 15
	pos.Y = 25
	pos = ecs.ReadComponent[Position](storage, player)
	fmt.Printf("Player moved to (%.0f, %.0f)\n", pos.X, pos.Y)

	storage.DestroyEntity(player)
	fmt.Println("Player alive:", storage.IsAlive(player))

	// Output:
	// Player spawned at (10, 20)
	// Player moved to (15, 25)
	// Player alive: false
}

// ExampleStorage_CreateEntity shows default-constructed components and the
// error returned for a component the entity does not own.
func ExampleStorage_CreateEntity() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	entity, err := storage.CreateEntity(ecs.TypeOf[Position](), ecs.TypeOf[Health]())
	if err != nil {
		panic(err)
	}

	health, _ := ecs.GetComponent[Health](storage, entity)
	fmt.Printf("Health: %d/%d\n", health.Current, health.Max)

	_, err = ecs.GetComponent[Velocity](storage, entity)
	fmt.Println("Velocity missing:", eris.Is(err, ecs.ErrComponentNotFound))

	// Output:
	// Health: 0/0
	// Velocity missing: true
}

// ExampleStorage_addRemoveComponents shows how components are attached to
// and detached from a live entity. The entity id never changes.
func ExampleStorage_addRemoveComponents() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	entity, _ := storage.Spawn(Position{X: 0, Y: 0})

	hasVel := storage.HasComponent(entity, ecs.TypeOf[Velocity]())
	fmt.Printf("Has velocity: %v\n", hasVel)

	vel, _ := ecs.AddComponent(storage, entity, Velocity{DX: 5, DY: 3})
	fmt.Printf("Has velocity: %v (%.0f, %.0f)\n", vel != nil, vel.DX, vel.DY)

	health, _ := ecs.AddComponent(storage, entity, Health{Current: 50, Max: 50})
	fmt.Printf("Has health: %v (%d/%d)\n", health != nil, health.Current, health.Max)

	ecs.RemoveComponentOf[Velocity](storage, entity)
	hasVel = storage.HasComponent(entity, ecs.TypeOf[Velocity]())
	fmt.Printf("Has velocity: %v\n", hasVel)

	// Output:
	// Has velocity: false
	// Has velocity: true (5, 3)
	// Has health: true (50/50)
	// Has velocity: false
}
