package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// ComponentStore owns the backing storage for every registered component type.
// Storages are created on first use from the ComponentRegistry factories.
type ComponentStore struct {
	registry *ComponentRegistry
	storages map[reflect.Type]iComponentStorage
	capacity int
	released bool
}

func newComponentStore(registry *ComponentRegistry, capacity int) *ComponentStore {
	return &ComponentStore{
		registry: registry,
		storages: make(map[reflect.Type]iComponentStorage),
		capacity: capacity,
	}
}

// storage returns the backing storage for t, creating it if t is registered.
func (c *ComponentStore) storage(t reflect.Type) (iComponentStorage, error) {
	if c.released {
		return nil, ErrStorageReleased
	}
	if st, ok := c.storages[t]; ok {
		return st, nil
	}
	factory := c.registry.getFactory(t)
	if factory == nil {
		return nil, eris.Wrapf(ErrUnknownComponentType, "component type %s not registered", typeName(t))
	}
	st := factory(c.capacity)
	c.storages[t] = st
	return st, nil
}

// lookup returns an existing storage without creating one.
func (c *ComponentStore) lookup(t reflect.Type) iComponentStorage {
	return c.storages[t]
}

// Count returns the number of components of type t currently stored.
func (c *ComponentStore) Count(t reflect.Type) int {
	if st, ok := c.storages[t]; ok {
		return st.Len()
	}
	return 0
}

// Released reports whether Release has been called.
func (c *ComponentStore) Released() bool {
	return c.released
}

// Release clears and drops every storage.
func (c *ComponentStore) Release() {
	for _, st := range c.storages {
		st.Clear()
	}
	c.storages = make(map[reflect.Type]iComponentStorage)
	c.released = true
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
