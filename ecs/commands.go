package ecs

import (
	"errors"
	"reflect"

	"github.com/rotisserie/eris"
)

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	types      []reflect.Type
	components []any
	then       func(EntityId)
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given component values.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnThen queues a spawn and calls then with the new id once it exists.
func (c *Commands) SpawnThen(then func(EntityId), components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components, then: then})
}

// CreateEntity queues creation of an entity with default-constructed components.
func (c *Commands) CreateEntity(types ...reflect.Type) {
	c.spawns = append(c.spawns, spawnCommand{types: types})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending reports the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all commands to the provided storage, resetting the buffer state.
// Order: destroys, removals, additions, spawns, deferred functions.
// Failed operations are skipped and reported together in the returned error.
// Commands queued while flushing stay pending for the next Flush.
func (c *Commands) Flush(storage *Storage) error {
	spawns, deletes, adds, removes, defers := c.spawns, c.deletes, c.adds, c.removes, c.defers
	c.spawns, c.deletes, c.adds, c.removes, c.defers = nil, nil, nil, nil, nil

	var errs []error
	deletedEntities := make(map[EntityId]bool)

	for _, cmd := range deletes {
		storage.DestroyEntity(cmd)
		deletedEntities[cmd] = true
	}

	for _, cmd := range removes {
		if !deletedEntities[cmd.entity] {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range adds {
		if deletedEntities[cmd.entity] {
			continue
		}
		if err := storage.AddComponentValue(cmd.entity, cmd.component); err != nil {
			errs = append(errs, eris.Wrapf(err, "deferred add to entity %s", cmd.entity))
		}
	}

	for _, cmd := range spawns {
		var (
			id  EntityId
			err error
		)
		if cmd.types != nil {
			id, err = storage.CreateEntity(cmd.types...)
		} else {
			id, err = storage.Spawn(cmd.components...)
		}
		if err != nil {
			errs = append(errs, eris.Wrap(err, "deferred spawn"))
			continue
		}
		if cmd.then != nil {
			cmd.then(id)
		}
	}

	for _, df := range defers {
		df.fn()
	}

	return errors.Join(errs...)
}
