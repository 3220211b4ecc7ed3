package main

import (
	"math/rand"

	"github.com/plus3/framestep/ecs"
)

// Marker types give each Field instantiation its own component type.
type (
	k00 struct{}
	k01 struct{}
	k02 struct{}
	k03 struct{}
	k04 struct{}
	k05 struct{}
	k06 struct{}
	k07 struct{}
	k08 struct{}
	k09 struct{}
	k10 struct{}
	k11 struct{}
	k12 struct{}
	k13 struct{}
	k14 struct{}
	k15 struct{}
)

// Field is the payload every stress component carries.
type Field[K any] struct {
	Value float64
	Step  float64
}

// Team is shared between entities so the pooled store is exercised too.
type Team struct {
	ID uint8
}

type componentKind struct {
	register func(*ecs.ComponentRegistry)
	random   func(*rand.Rand) any
}

func fieldKind[K any]() componentKind {
	return componentKind{
		register: ecs.RegisterComponent[Field[K]],
		random: func(r *rand.Rand) any {
			return Field[K]{Value: r.Float64(), Step: r.Float64()*2 - 1}
		},
	}
}

var componentKinds = []componentKind{
	fieldKind[k00](), fieldKind[k01](), fieldKind[k02](), fieldKind[k03](),
	fieldKind[k04](), fieldKind[k05](), fieldKind[k06](), fieldKind[k07](),
	fieldKind[k08](), fieldKind[k09](), fieldKind[k10](), fieldKind[k11](),
	fieldKind[k12](), fieldKind[k13](), fieldKind[k14](), fieldKind[k15](),
}

// registerComponents registers every Field instantiation plus Team.
func registerComponents(registry *ecs.ComponentRegistry) {
	for _, kind := range componentKinds {
		kind.register(registry)
	}
	ecs.RegisterSharedComponent[Team](registry)
}

// spawnRandomEntity spawns an entity with n distinct random Field
// components and a Team.
func spawnRandomEntity(storage *ecs.Storage, r *rand.Rand, n int) (ecs.EntityId, error) {
	n = min(n, len(componentKinds))
	components := make([]any, 0, n+1)
	for _, i := range r.Perm(len(componentKinds))[:n] {
		components = append(components, componentKinds[i].random(r))
	}
	components = append(components, Team{ID: uint8(r.Intn(4))})
	return storage.Spawn(components...)
}
