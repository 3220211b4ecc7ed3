package ecs

import "reflect"

// iComponentStorage is an interface for a type-erased component storage keyed by entity slot.
type iComponentStorage interface {
	Type() reflect.Type
	Kind() ComponentKind
	// Add default-constructs a component for slot and returns a pointer to it.
	// If slot already owns one, the existing pointer is returned.
	Add(slot uint32) any
	// Set stores value (T or *T) for slot, adding it if needed.
	Set(slot uint32, value any) bool
	Remove(slot uint32) bool
	Has(slot uint32) bool
	// Get returns a *T for slot or nil.
	Get(slot uint32) any
	Len() int
	Clear()
}

// valueStorage is implemented by both storage kinds for typed, allocation-free access.
type valueStorage[T any] interface {
	pointer(slot uint32) *T
}
