package ecs

import (
	"math"
	"reflect"
	"slices"
)

type slotRecord struct {
	generation uint32
	alive      bool
	types      []reflect.Type
}

// EntityRegistry allocates and reclaims entity slots and tracks which
// component types every live entity owns.
//
// A destroyed slot is reused with a bumped generation, so an id held from
// before the destruction never resolves to the new occupant. A slot whose
// generation is exhausted is retired instead of reused.
type EntityRegistry struct {
	slots []slotRecord
	free  []uint32
	live  int
}

func newEntityRegistry(capacity int) *EntityRegistry {
	return &EntityRegistry{
		slots: make([]slotRecord, 0, capacity),
	}
}

func (r *EntityRegistry) allocate() EntityId {
	if n := len(r.free); n > 0 {
		index := r.free[n-1]
		r.free = r.free[:n-1]
		rec := &r.slots[index]
		rec.alive = true
		r.live++
		return NewEntityId(index, rec.generation)
	}

	index := uint32(len(r.slots))
	r.slots = append(r.slots, slotRecord{generation: 1, alive: true})
	r.live++
	return NewEntityId(index, 1)
}

// release frees the slot behind id. Returns the types it owned, or false
// if id was not alive.
func (r *EntityRegistry) release(id EntityId) ([]reflect.Type, bool) {
	if !r.IsAlive(id) {
		return nil, false
	}

	rec := &r.slots[id.Index()]
	types := rec.types
	rec.types = nil
	rec.alive = false
	r.live--

	if rec.generation == math.MaxUint32 {
		return types, true
	}
	rec.generation++
	r.free = append(r.free, id.Index())
	return types, true
}

// IsAlive reports whether id refers to a currently live entity.
func (r *EntityRegistry) IsAlive(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(r.slots) {
		return false
	}
	rec := r.slots[index]
	return rec.alive && rec.generation == id.Generation()
}

func (r *EntityRegistry) owns(id EntityId, t reflect.Type) bool {
	if !r.IsAlive(id) {
		return false
	}
	return slices.Contains(r.slots[id.Index()].types, t)
}

func (r *EntityRegistry) addType(id EntityId, t reflect.Type) {
	rec := &r.slots[id.Index()]
	if !slices.Contains(rec.types, t) {
		rec.types = append(rec.types, t)
	}
}

func (r *EntityRegistry) removeType(id EntityId, t reflect.Type) {
	rec := &r.slots[id.Index()]
	rec.types = slices.DeleteFunc(rec.types, func(owned reflect.Type) bool {
		return owned == t
	})
}

// Types returns a copy of the component types owned by id.
func (r *EntityRegistry) Types(id EntityId) []reflect.Type {
	if !r.IsAlive(id) {
		return nil
	}
	return slices.Clone(r.slots[id.Index()].types)
}

// Len returns the number of live entities.
func (r *EntityRegistry) Len() int {
	return r.live
}

// FreeSlots returns the number of slots waiting to be reused.
func (r *EntityRegistry) FreeSlots() int {
	return len(r.free)
}

// Snapshot returns the ids of all live entities in slot order.
func (r *EntityRegistry) Snapshot() []EntityId {
	ids := make([]EntityId, 0, r.live)
	for index, rec := range r.slots {
		if rec.alive {
			ids = append(ids, NewEntityId(uint32(index), rec.generation))
		}
	}
	return ids
}

// clear releases every live entity. Slots keep their generations so ids
// issued before the clear stay dead.
func (r *EntityRegistry) clear() {
	for index := len(r.slots) - 1; index >= 0; index-- {
		rec := &r.slots[index]
		if !rec.alive {
			continue
		}
		rec.types = nil
		rec.alive = false
		if rec.generation == math.MaxUint32 {
			continue
		}
		rec.generation++
		r.free = append(r.free, uint32(index))
	}
	r.live = 0
}

// successor returns an empty registry that continues r's generations.
func (r *EntityRegistry) successor() *EntityRegistry {
	next := &EntityRegistry{
		slots: make([]slotRecord, len(r.slots)),
		free:  slices.Clone(r.free),
	}
	for index, rec := range r.slots {
		next.slots[index] = slotRecord{generation: rec.generation}
		if rec.alive && rec.generation < math.MaxUint32 {
			next.slots[index].generation++
			next.free = append(next.free, uint32(index))
		}
	}
	return next
}
