package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

const defaultEntityCapacity = 1024

// Storage is the main ECS storage interface. It ties one EntityRegistry to
// one ComponentStore and holds the singleton components.
type Storage struct {
	registry   *ComponentRegistry
	entities   *EntityRegistry
	components *ComponentStore
	singletons map[reflect.Type]*singletonEntry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return newStorage(registry, defaultEntityCapacity)
}

func newStorage(registry *ComponentRegistry, capacity int) *Storage {
	if capacity <= 0 {
		capacity = defaultEntityCapacity
	}
	return &Storage{
		registry:   registry,
		entities:   newEntityRegistry(capacity),
		components: newComponentStore(registry, capacity),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// rebuild returns a fresh storage whose entity slots continue the
// generations of s, so ids from s never resolve in the new storage.
func (s *Storage) rebuild(capacity int) *Storage {
	next := newStorage(s.registry, capacity)
	next.entities = s.entities.successor()
	return next
}

// Registry returns the component registry this storage was built from.
func (s *Storage) Registry() *ComponentRegistry { return s.registry }

// Entities returns the entity registry.
func (s *Storage) Entities() *EntityRegistry { return s.entities }

// Components returns the component store.
func (s *Storage) Components() *ComponentStore { return s.components }

// CreateEntity allocates an entity and default-constructs each requested component type.
// Every type is validated before anything is allocated, so a failed call leaves no entity behind.
func (s *Storage) CreateEntity(types ...reflect.Type) (EntityId, error) {
	if s.components.Released() {
		return 0, ErrStorageReleased
	}

	unique := make([]reflect.Type, 0, len(types))
	for _, t := range types {
		if !s.registry.IsRegistered(t) {
			return 0, eris.Wrapf(ErrUnknownComponentType, "cannot create entity with %s", typeName(t))
		}
		if !slices.Contains(unique, t) {
			unique = append(unique, t)
		}
	}

	id := s.entities.allocate()
	for _, t := range unique {
		st, err := s.components.storage(t)
		if err != nil {
			s.DestroyEntity(id)
			return 0, err
		}
		st.Add(id.Index())
		s.entities.addType(id, t)
	}
	return id, nil
}

// Spawn creates a new entity holding the provided component values.
func (s *Storage) Spawn(components ...any) (EntityId, error) {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t, err := componentTypeOf(comp)
		if err != nil {
			return 0, err
		}
		types = append(types, t)
	}

	id, err := s.CreateEntity(types...)
	if err != nil {
		return 0, err
	}
	for _, comp := range components {
		if err := s.SetComponentValue(id, comp); err != nil {
			s.DestroyEntity(id)
			return 0, err
		}
	}
	return id, nil
}

// DestroyEntity removes all data related to the entity ID.
// Destroying an id that is not alive is a no-op.
func (s *Storage) DestroyEntity(id EntityId) {
	types, ok := s.entities.release(id)
	if !ok {
		return
	}
	for _, t := range types {
		if st := s.components.lookup(t); st != nil {
			st.Remove(id.Index())
		}
	}
}

// DestroyAll destroys every live entity.
func (s *Storage) DestroyAll() {
	for _, id := range s.entities.Snapshot() {
		s.DestroyEntity(id)
	}
}

// IsAlive reports whether id refers to a live entity.
func (s *Storage) IsAlive(id EntityId) bool {
	return s.entities.IsAlive(id)
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.entities.Len()
}

// AllEntities returns the live entities as of this call. The id list is
// snapshotted up front, so creating or destroying entities while ranging
// over it neither skips nor repeats elements.
func (s *Storage) AllEntities() iter.Seq[EntityId] {
	ids := s.entities.Snapshot()
	return func(yield func(EntityId) bool) {
		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	return s.entities.owns(id, compType)
}

// HasAll reports whether id owns every type in types.
func (s *Storage) HasAll(id EntityId, types []reflect.Type) bool {
	if !s.entities.IsAlive(id) {
		return false
	}
	for _, t := range types {
		if !s.entities.owns(id, t) {
			return false
		}
	}
	return true
}

// ComponentTypes returns the component types owned by id.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	return s.entities.Types(id)
}

// GetComponent returns a pointer to the component for the given entity ID and
// component type, or nil if the entity does not own one.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.entities.owns(id, compType) {
		return nil
	}
	st := s.components.lookup(compType)
	if st == nil {
		return nil
	}
	return st.Get(id.Index())
}

// AddComponentValue attaches value to id unless a component of that type is already owned.
func (s *Storage) AddComponentValue(id EntityId, value any) error {
	t, err := componentTypeOf(value)
	if err != nil {
		return err
	}
	if s.entities.owns(id, t) {
		return nil
	}
	return s.SetComponentValue(id, value)
}

// SetComponentValue attaches value to id, overwriting any existing component of that type.
func (s *Storage) SetComponentValue(id EntityId, value any) error {
	t, err := componentTypeOf(value)
	if err != nil {
		return err
	}
	if !s.entities.IsAlive(id) {
		return eris.Wrapf(ErrEntityNotFound, "set %s on entity %s", typeName(t), id)
	}
	st, err := s.components.storage(t)
	if err != nil {
		return err
	}
	if !st.Set(id.Index(), value) {
		return eris.Wrapf(ErrUnknownComponentType, "value of type %T does not match storage %s", value, typeName(t))
	}
	s.entities.addType(id, t)
	return nil
}

// RemoveComponent detaches the component of type compType from id.
// Returns false if id did not own one.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	if !s.entities.owns(id, compType) {
		return false
	}
	if st := s.components.lookup(compType); st != nil {
		st.Remove(id.Index())
	}
	s.entities.removeType(id, compType)
	return true
}

// Describe renders id and its component type names for logs and debugging.
func (s *Storage) Describe(id EntityId) string {
	var b strings.Builder
	b.WriteString("[ID ")
	b.WriteString(id.String())
	b.WriteString("] Entity")
	if !s.entities.IsAlive(id) {
		b.WriteString(" (destroyed)")
		return b.String()
	}
	b.WriteString(" Components:")
	for _, t := range s.entities.Types(id) {
		b.WriteByte(' ')
		b.WriteString(t.Name())
	}
	return b.String()
}

// Released reports whether the storage has been released.
func (s *Storage) Released() bool {
	return s.components.Released()
}

// Release frees every component and entity. The storage is unusable afterwards.
func (s *Storage) Release() {
	s.components.Release()
	s.entities.clear()
	clear(s.singletons)
}

// componentTypeOf returns the component type of a value, looking through one pointer.
func componentTypeOf(comp any) (reflect.Type, error) {
	compType := reflect.TypeOf(comp)
	if compType == nil {
		return nil, eris.Wrap(ErrUnknownComponentType, "nil component value")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType, nil
}

// GetComponent returns a mutable pointer to id's component of type T.
// The pointer is valid until the next structural change to T's storage;
// do not keep it across frames.
//
// Every failure matches ErrComponentNotFound. A dead id additionally
// matches ErrEntityNotFound.
func GetComponent[T any](s *Storage, id EntityId) (*T, error) {
	t := TypeOf[T]()
	if !s.entities.IsAlive(id) {
		return nil, &deadEntityError{eris.Wrapf(ErrEntityNotFound, "get %s from entity %s", typeName(t), id)}
	}
	if !s.entities.owns(id, t) {
		return nil, eris.Wrapf(ErrComponentNotFound, "entity %s has no %s", id, typeName(t))
	}
	vs, ok := s.components.lookup(t).(valueStorage[T])
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotFound, "entity %s has no %s", id, typeName(t))
	}
	return vs.pointer(id.Index()), nil
}

// TryGetComponent is the non-failing variant of GetComponent.
func TryGetComponent[T any](s *Storage, id EntityId) (*T, bool) {
	t := TypeOf[T]()
	if !s.entities.owns(id, t) {
		return nil, false
	}
	vs, ok := s.components.lookup(t).(valueStorage[T])
	if !ok {
		return nil, false
	}
	p := vs.pointer(id.Index())
	return p, p != nil
}

// AddComponent attaches value to id and returns a pointer to the stored component.
// If id already owns a T, the existing component is returned unchanged.
func AddComponent[T any](s *Storage, id EntityId, value T) (*T, error) {
	if p, ok := TryGetComponent[T](s, id); ok {
		return p, nil
	}
	return SetComponent(s, id, value)
}

// SetComponent attaches value to id, overwriting an existing T.
// For shared types this re-points id at the pooled value equal to value.
func SetComponent[T any](s *Storage, id EntityId, value T) (*T, error) {
	if err := s.SetComponentValue(id, value); err != nil {
		return nil, err
	}
	return GetComponent[T](s, id)
}

// SetSharedComponent points id at the pooled value equal to value. Fails with
// ErrComponentKindMismatch if T was registered as a per-entity component.
func SetSharedComponent[T comparable](s *Storage, id EntityId, value T) (*T, error) {
	t := TypeOf[T]()
	kind, ok := s.registry.Kind(t)
	if !ok {
		return nil, eris.Wrapf(ErrUnknownComponentType, "component type %s not registered", typeName(t))
	}
	if kind != Shared {
		return nil, eris.Wrapf(ErrComponentKindMismatch, "%s is a %s component", typeName(t), kind)
	}
	return SetComponent(s, id, value)
}

// RemoveComponentOf detaches id's T component.
func RemoveComponentOf[T any](s *Storage, id EntityId) bool {
	return s.RemoveComponent(id, TypeOf[T]())
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns id's T component through a ComponentReader, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	p, _ := reader.GetComponent(entityId, TypeOf[T]()).(*T)
	return p
}
