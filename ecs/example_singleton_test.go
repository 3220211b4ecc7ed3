package ecs_test

import (
	"fmt"

	"github.com/plus3/framestep/ecs"
)

type MatchClock struct {
	Elapsed float64
	Rounds  int
}

type Difficulty struct {
	Level string
}

// ExampleNewSingleton stores one value per type outside any entity. Every
// accessor for the type shares the same value.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	clock := ecs.NewSingleton[MatchClock](storage, MatchClock{Rounds: 1})
	clock.Get().Elapsed += 2.5

	// the initializer is ignored once the singleton exists
	again := ecs.NewSingleton[MatchClock](storage, MatchClock{Rounds: 99})
	fmt.Printf("round %d, %.1fs\n", again.Get().Rounds, again.Get().Elapsed)

	// Output:
	// round 1, 2.5s
}

// roundTimer has its Singleton field bound by the scheduler on registration.
type roundTimer struct {
	Clock ecs.Singleton[MatchClock]
}

func (r *roundTimer) Execute(frame *ecs.UpdateFrame) {
	clock := r.Clock.Get()
	clock.Elapsed += frame.DeltaTime
	if clock.Elapsed >= 1 {
		clock.Elapsed--
		clock.Rounds++
	}
}

// ExampleSingleton_system reads a singleton from a system field.
func ExampleSingleton_system() {
	world := ecs.NewWorld(ecs.NewComponentRegistry())
	ecs.NewSingleton[MatchClock](world.Storage())

	world.RegisterSystem(&roundTimer{})
	world.Initialize()
	for range 5 {
		world.Tick(0.5)
	}

	var clock *MatchClock
	world.Storage().ReadSingleton(&clock)
	fmt.Printf("rounds: %d\n", clock.Rounds)

	// Output:
	// rounds: 2
}

// ExampleStorage_AddSingleton overwrites an existing singleton in place, so
// pointers taken earlier observe the new value.
func ExampleStorage_AddSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	storage.AddSingleton(Difficulty{Level: "normal"})

	var before *Difficulty
	storage.ReadSingleton(&before)

	storage.AddSingleton(Difficulty{Level: "hard"})
	fmt.Println(before.Level)

	var clock *MatchClock
	fmt.Println(storage.ReadSingleton(&clock))
	fmt.Println(storage.SingletonTypes())

	// Output:
	// hard
	// false
	// [ecs_test.Difficulty]
}
