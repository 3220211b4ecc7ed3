package ecs

import (
	"reflect"
	"sort"
)

type singletonEntry struct {
	ptr any // *T
}

// AddSingleton stores value as the singleton of its type. An existing
// singleton is overwritten in place so outstanding pointers see the new value.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if entry, ok := s.singletons[v.Type()]; ok {
		reflect.ValueOf(entry.ptr).Elem().Set(v)
		return
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{ptr: ptr.Interface()}
}

// ReadSingleton points *out at the stored singleton. out must be a **T.
// Returns false if no singleton of type T exists.
func (s *Storage) ReadSingleton(out any) bool {
	outVal := reflect.ValueOf(out)
	if outVal.Kind() != reflect.Ptr || outVal.Elem().Kind() != reflect.Ptr {
		return false
	}
	entry := s.getSingletonEntry(outVal.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	outVal.Elem().Set(reflect.ValueOf(entry.ptr))
	return true
}

// SingletonTypes returns the sorted type names of stored singletons.
func (s *Storage) SingletonTypes() []string {
	names := make([]string, 0, len(s.singletons))
	for t := range s.singletons {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data.
type Singleton[T any] struct {
	storage *Storage
	cached  *T
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If initializer is provided and the singleton doesn't exist in storage,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists in storage after the call.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(TypeOf[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{storage: storage}
	s.updateCache()
	return s
}

// Init initializes the Singleton with a storage reference.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to storage or the
// storage has been released.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil || s.storage.Released() {
		s.cached = nil
		return nil
	}
	if s.cached == nil {
		s.updateCache()
	}
	return s.cached
}

// updateCache refreshes the cached pointer from storage
func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	s.cached = nil
	if entry := s.storage.getSingletonEntry(TypeOf[T]()); entry != nil {
		s.cached, _ = entry.ptr.(*T)
	}
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
