package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/framestep/ecs"
	"github.com/rs/zerolog"
)

func BenchmarkSpawn(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkSpawnWithMultipleComponents(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(
			Position{X: 1.0, Y: 2.0},
			Velocity{DX: 0.5, DY: 0.5},
			Health{Current: 100, Max: 100},
			Name{Value: "Entity"},
		)
	}
}

func BenchmarkCreateEntity(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)
	types := []reflect.Type{ecs.TypeOf[Position](), ecs.TypeOf[Velocity]()}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.CreateEntity(types...)
	}
}

func BenchmarkDestroy(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i], _ = storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.DestroyEntity(ids[i])
	}
}

func BenchmarkSlotReuse(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id, _ := storage.Spawn(Position{X: 1.0, Y: 2.0})
		storage.DestroyEntity(id)
	}
}

func BenchmarkGetComponent(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	id, _ := storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.ReadComponent[Position](storage, id)
	}
}

func BenchmarkAddComponent(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i], _ = storage.Spawn(Position{X: 1.0, Y: 2.0})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.AddComponent(storage, ids[i], Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkRemoveComponent(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i], _ = storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.RemoveComponent(ids[i], reflect.TypeOf(Velocity{}))
	}
}

func BenchmarkSharedComponent(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Faction{Name: "team", Color: uint32(i % 4)})
	}
}

func BenchmarkViewFill(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	type PosVel struct {
		*Position
		*Velocity
	}

	view := ecs.NewView[PosVel](storage)
	id, _ := storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var pv PosVel
		view.Fill(id, &pv)
	}
}

func BenchmarkViewGet(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	type PosVel struct {
		*Position
		*Velocity
	}

	view := ecs.NewView[PosVel](storage)
	id, _ := storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = view.Get(id)
	}
}

func BenchmarkViewIter(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	type PosVel struct {
		*Position
		*Velocity
	}

	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	view := ecs.NewView[PosVel](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, pv := range view.Iter() {
			_ = pv
		}
	}
}

func BenchmarkViewIterLarge(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	type PosVel struct {
		*Position
		*Velocity
	}

	for i := 0; i < 10000; i++ {
		storage.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	view := ecs.NewView[PosVel](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, pv := range view.Iter() {
			_ = pv
		}
	}
}

func BenchmarkViewSpawn(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	type PosVel struct {
		*Position
		*Velocity
	}

	view := ecs.NewView[PosVel](storage)
	pos := Position{X: 1.0, Y: 2.0}
	vel := Velocity{DX: 0.5, DY: 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view.Spawn(PosVel{Position: &pos, Velocity: &vel})
	}
}

func BenchmarkQueryCompact(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	ids := make([]ecs.EntityId, 0, 1000)
	for i := 0; i < 1000; i++ {
		id, _ := storage.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
		ids = append(ids, id)
		if i%3 == 0 {
			storage.DestroyEntity(id)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query := ecs.NewEntityQuery(storage, ids...)
		query.Compact()
	}
}

func BenchmarkMixedOperations(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	type PosVel struct {
		*Position
		*Velocity
	}

	view := ecs.NewView[PosVel](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id, _ := storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
		_ = ecs.ReadComponent[Position](storage, id)
		ecs.AddComponent(storage, id, Health{Current: 100, Max: 100})
		_ = view.Get(id)
		storage.DestroyEntity(id)
	}
}

func BenchmarkQueryForEach(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	query := ecs.NewEntityQuery(storage)
	for i := 0; i < 1000; i++ {
		id, _ := storage.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
		query.AddEntity(id)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.ForEach(func(id ecs.EntityId) {
			_ = ecs.ReadComponent[Position](storage, id)
		})
	}
}

func BenchmarkLiveQueryForEach(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	for i := 0; i < 10000; i++ {
		storage.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	query := ecs.NewLiveQuery(storage, ecs.TypeOf[Position](), ecs.TypeOf[Velocity]())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.ForEach(func(id ecs.EntityId) {
			_ = ecs.ReadComponent[Position](storage, id)
		})
	}
}

type benchMovementSystem struct {
	Entities *ecs.View[struct {
		*Position
		*Velocity
	}]
}

func (s *benchMovementSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type benchHealthSystem struct{}

func (s *benchHealthSystem) Requires() []reflect.Type {
	return []reflect.Type{ecs.TypeOf[Health]()}
}

func (s *benchHealthSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Entities.ForEach(func(id ecs.EntityId) {
		health := ecs.ReadComponent[Health](frame.Storage, id)
		if health.Current < health.Max {
			health.Current += int(1.0 * float32(frame.DeltaTime))
		}
	})
}

func BenchmarkSchedulerUpdate(b *testing.B) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)

	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	scheduler := ecs.NewScheduler(storage, zerolog.Nop())
	scheduler.Register(&benchMovementSystem{})
	scheduler.CreateAll()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Update(0.016)
	}
}

func BenchmarkWorldTickMultipleSystems(b *testing.B) {
	registry := newTestRegistry()
	world := ecs.NewWorld(registry)

	for i := 0; i < 1000; i++ {
		world.Storage().Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5}, Health{Current: 50, Max: 100})
	}

	world.RegisterSystem(&benchMovementSystem{})
	world.RegisterSystem(&benchHealthSystem{})
	world.Initialize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Tick(0.016)
	}
}
