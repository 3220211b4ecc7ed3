package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentKind tells whether a component type holds one value per entity
// or a pooled value shared between entities.
type ComponentKind uint8

const (
	PerEntity ComponentKind = iota
	Shared
)

func (k ComponentKind) String() string {
	if k == Shared {
		return "shared"
	}
	return "per-entity"
}

type componentFactory struct {
	kind ComponentKind
	new  func(capacity int) iComponentStorage
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]componentFactory
	order     []reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]componentFactory),
	}
}

// TypeOf returns the type identifier used for T throughout the package.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// RegisterComponent registers a per-entity component type with the given registry.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := TypeOf[T]()
	checkComponentType(t)
	r.add(t, componentFactory{
		kind: PerEntity,
		new: func(capacity int) iComponentStorage {
			return newDenseStorage[T](capacity)
		},
	})
}

// RegisterSharedComponent registers a component type whose values are pooled
// and referenced by many entities. Equal values are stored once.
func RegisterSharedComponent[T comparable](r *ComponentRegistry) {
	t := TypeOf[T]()
	checkComponentType(t)
	r.add(t, componentFactory{
		kind: Shared,
		new: func(capacity int) iComponentStorage {
			return newSharedStorage[T](capacity)
		},
	})
}

func (r *ComponentRegistry) add(t reflect.Type, f componentFactory) {
	if _, exists := r.factories[t]; !exists {
		r.order = append(r.order, t)
	}
	r.factories[t] = f
}

// IsRegistered reports whether t has backing storage.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// Kind returns the kind t was registered with.
func (r *ComponentRegistry) Kind(t reflect.Type) (ComponentKind, bool) {
	f, ok := r.factories[t]
	return f.kind, ok
}

// Types returns registered component types in registration order.
func (r *ComponentRegistry) Types() []reflect.Type {
	out := make([]reflect.Type, len(r.order))
	copy(out, r.order)
	return out
}

// getFactory returns the factory for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func(int) iComponentStorage {
	f, ok := r.factories[t]
	if !ok {
		return nil
	}
	return f.new
}

// Components can be structs or primitives (int, string, etc.)
// but not pointers, maps, channels, or functions.
func checkComponentType(t reflect.Type) {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}
}

// denseStorage keeps every component of type T packed in one slice.
// sparse maps an entity slot to its index in values; removal swaps the
// last element into the hole, so pointers are only valid until the next
// structural change of this type.
type denseStorage[T any] struct {
	values []T
	slots  []uint32
	sparse *intmap.Map[uint32, int]
}

func newDenseStorage[T any](capacity int) *denseStorage[T] {
	return &denseStorage[T]{
		values: make([]T, 0, capacity),
		slots:  make([]uint32, 0, capacity),
		sparse: intmap.New[uint32, int](capacity),
	}
}

func (cs *denseStorage[T]) Type() reflect.Type  { return TypeOf[T]() }
func (cs *denseStorage[T]) Kind() ComponentKind { return PerEntity }

// Add default-constructs a component for slot.
func (cs *denseStorage[T]) Add(slot uint32) any {
	if idx, ok := cs.sparse.Get(slot); ok {
		return &cs.values[idx]
	}
	var zero T
	return cs.insert(slot, zero)
}

func (cs *denseStorage[T]) insert(slot uint32, value T) *T {
	cs.sparse.Put(slot, len(cs.values))
	cs.values = append(cs.values, value)
	cs.slots = append(cs.slots, slot)
	return &cs.values[len(cs.values)-1]
}

// Set stores item for slot, overwriting any previous value.
func (cs *denseStorage[T]) Set(slot uint32, item any) bool {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false
	}

	if idx, ok := cs.sparse.Get(slot); ok {
		cs.values[idx] = concreteItem
		return true
	}
	cs.insert(slot, concreteItem)
	return true
}

// Remove deletes the component for slot by swapping the last element into its place.
func (cs *denseStorage[T]) Remove(slot uint32) bool {
	idx, ok := cs.sparse.Get(slot)
	if !ok {
		return false
	}

	last := len(cs.values) - 1
	if idx != last {
		movedSlot := cs.slots[last]
		cs.values[idx] = cs.values[last]
		cs.slots[idx] = movedSlot
		cs.sparse.Put(movedSlot, idx)
	}

	var zero T
	cs.values[last] = zero // Zero out the value
	cs.values = cs.values[:last]
	cs.slots = cs.slots[:last]
	cs.sparse.Del(slot)
	return true
}

func (cs *denseStorage[T]) Has(slot uint32) bool {
	_, ok := cs.sparse.Get(slot)
	return ok
}

// Get returns a pointer to the component for slot, or nil.
func (cs *denseStorage[T]) Get(slot uint32) any {
	if p := cs.pointer(slot); p != nil {
		return p
	}
	return nil
}

func (cs *denseStorage[T]) pointer(slot uint32) *T {
	idx, ok := cs.sparse.Get(slot)
	if !ok {
		return nil
	}
	return &cs.values[idx]
}

func (cs *denseStorage[T]) Len() int {
	return len(cs.values)
}

func (cs *denseStorage[T]) Clear() {
	clear(cs.values)
	cs.values = cs.values[:0]
	cs.slots = cs.slots[:0]
	cs.sparse.Clear()
}
