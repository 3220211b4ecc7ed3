package ecs

import (
	"github.com/rs/zerolog"
)

// LogWorld emits one event at level describing the world's registered
// component types, systems and entity count.
func LogWorld(logger zerolog.Logger, world *World, level zerolog.Level) {
	event := logger.WithLevel(level)
	if !event.Enabled() {
		return
	}

	components := zerolog.Arr()
	for _, t := range world.registry.Types() {
		kind, _ := world.registry.Kind(t)
		components.Dict(zerolog.Dict().
			Str("name", t.String()).
			Str("kind", kind.String()))
	}

	systems := zerolog.Arr()
	if world.scheduler != nil {
		for _, inst := range world.scheduler.Systems() {
			systems.Dict(zerolog.Dict().
				Str("name", inst.Name()).
				Int("priority", inst.Priority()).
				Str("state", inst.State().String()).
				Int("entities", inst.Query().Len()))
		}
	}

	entityCount := 0
	if world.storage != nil {
		entityCount = world.storage.Len()
	}

	event.
		Str("state", world.State().String()).
		Int("total_components", len(world.registry.Types())).
		Array("components", components).
		Array("systems", systems).
		Int("total_entities", entityCount).
		Msg("world state")
}

// LogEntity emits one event at level listing id's component types.
func LogEntity(logger zerolog.Logger, storage *Storage, id EntityId, level zerolog.Level) {
	event := logger.WithLevel(level)
	if !event.Enabled() {
		return
	}

	names := make([]string, 0, 4)
	for _, t := range storage.ComponentTypes(id) {
		names = append(names, t.String())
	}

	event.
		Stringer("entity", id).
		Bool("alive", storage.IsAlive(id)).
		Strs("components", names).
		Msg("entity")
}
