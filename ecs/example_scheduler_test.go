package ecs_test

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/plus3/framestep/ecs"
	"github.com/rs/zerolog"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Hitpoints struct {
	Current, Max int
}

type PhysicsSystem struct {
	Entities *ecs.View[struct {
		*Transform
		*Speed
	}]
}

func (s *PhysicsSystem) Priority() int { return 0 }

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	for _, entity := range s.Entities.Iter() {
		entity.Transform.X += entity.Speed.DX * float32(frame.DeltaTime)
		entity.Transform.Y += entity.Speed.DY * float32(frame.DeltaTime)
	}
}

type HealingSystem struct {
	RegenRate float32
}

func (s *HealingSystem) Priority() int { return 10 }

func (s *HealingSystem) Requires() []reflect.Type {
	return []reflect.Type{ecs.TypeOf[Hitpoints]()}
}

func (s *HealingSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Entities.ForEach(func(id ecs.EntityId) {
		hp := ecs.ReadComponent[Hitpoints](frame.Storage, id)
		if hp.Current < hp.Max {
			hp.Current += int(s.RegenRate * float32(frame.DeltaTime))
			if hp.Current > hp.Max {
				hp.Current = hp.Max
			}
		}
	})
}

// ExampleScheduler demonstrates building a game loop with multiple systems.
// The Scheduler orders systems by priority, binds View and Singleton fields,
// and flushes command buffers after every frame.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Hitpoints](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(
		Transform{X: 0, Y: 0},
		Speed{DX: 10, DY: 5},
		Hitpoints{Current: 80, Max: 100},
	)
	storage.Spawn(
		Transform{X: 100, Y: 100},
		Speed{DX: -5, DY: -5},
		Hitpoints{Current: 50, Max: 100},
	)

	scheduler := ecs.NewScheduler(storage, zerolog.Nop())
	scheduler.Register(&HealingSystem{RegenRate: 10})
	scheduler.Register(&PhysicsSystem{})
	scheduler.CreateAll()

	scheduler.ForEach(func(inst *ecs.SystemInstance) {
		fmt.Printf("%s (priority %d)\n", inst.Name(), inst.Priority())
	})

	scheduler.Update(1.0)

	view := ecs.NewView[struct {
		*Transform
		*Hitpoints
	}](storage)

	fmt.Println("After one frame:")
	for _, item := range view.Iter() {
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n",
			item.Transform.X, item.Transform.Y,
			item.Hitpoints.Current, item.Hitpoints.Max)
	}

	// Output:
	// PhysicsSystem (priority 0)
	// HealingSystem (priority 10)
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleWorld_Run demonstrates running a continuous game loop.
// Run initializes the world, then blocks and ticks all systems at a fixed
// interval until the context is cancelled.
func ExampleWorld_Run() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)

	world := ecs.NewWorld(registry)
	world.Storage().Spawn(Transform{X: 0, Y: 0}, Speed{DX: 1, DY: 1})
	world.RegisterSystem(&PhysicsSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	world.Run(ctx, 16*time.Millisecond)
	world.Shutdown()

	fmt.Println("World stopped:", world.State())
	// Output:
	// World stopped: unloaded
}

type GameTime struct {
	TotalFrames int
	TotalTime   float64
}

type TimeTracker struct {
	GameTime ecs.Singleton[GameTime]
}

func (s *TimeTracker) Execute(frame *ecs.UpdateFrame) {
	gameTime := s.GameTime.Get()
	gameTime.TotalFrames++
	gameTime.TotalTime += frame.DeltaTime
}

type ScoreTracker struct {
	Points int
}

type ScoreSystem struct {
	Entities *ecs.View[struct{ *Transform }]
	Score    ecs.Singleton[ScoreTracker]
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	count := 0
	for range s.Entities.Values() {
		count++
	}
	s.Score.Get().Points += count * 10
}

// ExampleWorld demonstrates the world lifecycle with singleton components.
// Singleton and View fields are initialized when the system is registered.
func ExampleWorld() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)

	world := ecs.NewWorld(registry)
	storage := world.Storage()

	// Initialize singletons
	ecs.NewSingleton[GameTime](storage, GameTime{TotalFrames: 0, TotalTime: 0})
	ecs.NewSingleton[ScoreTracker](storage, ScoreTracker{Points: 0})

	// Spawn entities
	storage.Spawn(Transform{X: 0, Y: 0})
	storage.Spawn(Transform{X: 10, Y: 10})
	storage.Spawn(Transform{X: 20, Y: 20})

	world.RegisterSystem(&TimeTracker{})
	world.RegisterSystem(&ScoreSystem{})
	world.Initialize()

	// Run for 3 frames
	world.Tick(0.016)
	world.Tick(0.016)
	world.Tick(0.016)

	// Check singleton values
	var gameTime *GameTime
	storage.ReadSingleton(&gameTime)
	fmt.Printf("Frames: %d, Time: %.3f\n", gameTime.TotalFrames, gameTime.TotalTime)

	var score *ScoreTracker
	storage.ReadSingleton(&score)
	fmt.Printf("Score: %d points\n", score.Points)

	world.Shutdown()
	fmt.Println("Storage released:", storage.Released())

	// Output:
	// Frames: 3, Time: 0.048
	// Score: 90 points
	// Storage released: true
}
