package main

import (
	"math/rand"
	"reflect"

	"github.com/plus3/framestep/ecs"
)

// driftSystem advances every Field[K] by its step. Its live query tracks
// entities as they are spawned and destroyed.
type driftSystem[K any] struct{}

func (driftSystem[K]) Requires() []reflect.Type {
	return []reflect.Type{ecs.TypeOf[Field[K]]()}
}

func (driftSystem[K]) Execute(frame *ecs.UpdateFrame) {
	frame.Entities.ForEach(func(id ecs.EntityId) {
		if f, ok := ecs.TryGetComponent[Field[K]](frame.Storage, id); ok {
			f.Value += f.Step * frame.DeltaTime
		}
	})
}

// pairSystem reads two component types through a View.
type pairSystem[A, B any] struct {
	Pairs *ecs.View[struct {
		A *Field[A]
		B *Field[B]
	}]
}

func (s *pairSystem[A, B]) Priority() int { return 10 }

func (s *pairSystem[A, B]) Execute(*ecs.UpdateFrame) {
	for item := range s.Pairs.Values() {
		item.A.Value, item.B.Value = item.B.Value, item.A.Value
	}
}

// churnSystem keeps structural changes flowing through the command buffer
// by destroying and respawning a fraction of the population every frame.
type churnSystem struct {
	rate int
	rand *rand.Rand
}

func (s *churnSystem) Priority() int { return 100 }

func (s *churnSystem) Execute(frame *ecs.UpdateFrame) {
	if s.rate <= 0 {
		return
	}
	destroyed := 0
	for id := range frame.Storage.AllEntities() {
		if destroyed == s.rate {
			break
		}
		if s.rand.Intn(8) == 0 {
			frame.Commands.Destroy(id)
			destroyed++
		}
	}
	storage := frame.Storage
	for range destroyed {
		frame.Commands.Defer(func() {
			_, _ = spawnRandomEntity(storage, s.rand, s.rand.Intn(5)+1)
		})
	}
}

var systemKinds = []func() ecs.System{
	func() ecs.System { return driftSystem[k00]{} },
	func() ecs.System { return driftSystem[k01]{} },
	func() ecs.System { return driftSystem[k02]{} },
	func() ecs.System { return driftSystem[k03]{} },
	func() ecs.System { return driftSystem[k04]{} },
	func() ecs.System { return driftSystem[k05]{} },
	func() ecs.System { return driftSystem[k06]{} },
	func() ecs.System { return driftSystem[k07]{} },
	func() ecs.System { return &pairSystem[k00, k01]{} },
	func() ecs.System { return &pairSystem[k02, k03]{} },
	func() ecs.System { return &pairSystem[k04, k05]{} },
	func() ecs.System { return &pairSystem[k06, k07]{} },
}

// registerSystems registers the first n stress systems and a churn system
// that replaces up to churn entities per frame.
func registerSystems(world *ecs.World, r *rand.Rand, n, churn int) int {
	n = min(n, len(systemKinds))
	for _, newSystem := range systemKinds[:n] {
		world.RegisterSystem(newSystem())
	}
	world.RegisterSystem(&churnSystem{rate: churn, rand: r})
	return n + 1
}
