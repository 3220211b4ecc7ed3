package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/rotisserie/eris"
)

// viewField is one pointer field of a view struct.
type viewField struct {
	component reflect.Type
	offset    uintptr
	optional  bool
}

// View reads a fixed set of components for one entity at a time. T is a
// struct whose fields are pointers to component types, for example
//
//	struct {
//		*Position
//		*Velocity
//		Name *Name `ecs:"optional"`
//	}
//
// Embedded fields are required. A named field tagged `ecs:"optional"` is
// left nil when the entity does not own that component.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	required []reflect.Type
}

// NewView parses T and binds the view to storage. It panics if T is not a
// struct of pointer fields or carries an unknown ecs tag.
func NewView[T any](storage *Storage) *View[T] {
	v := &View[T]{}
	v.Init(storage)
	return v
}

// Init binds the view to storage. The scheduler calls it for View fields of
// a system on registration.
func (v *View[T]) Init(storage *Storage) {
	v.storage = storage
	if v.fields == nil {
		v.fields, v.required = parseViewFields(reflect.TypeFor[T]())
	}
}

func parseViewFields(t reflect.Type) ([]viewField, []reflect.Type) {
	if t.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, t.NumField())
	var required []reflect.Type
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		f := viewField{component: sf.Type.Elem(), offset: sf.Offset}
		if tag := sf.Tag.Get("ecs"); tag != "" && !sf.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			f.optional = true
		}
		fields = append(fields, f)
		if !f.optional {
			required = append(required, f.component)
		}
	}
	return fields, required
}

func (f viewField) slot(base unsafe.Pointer) *unsafe.Pointer {
	return (*unsafe.Pointer)(unsafe.Add(base, f.offset))
}

// Fill points the fields of *out at id's components. It reports false, and
// leaves *out partially written, when id is dead or lacks a required type.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	if !v.storage.HasAll(id, v.required) {
		return false
	}

	base := unsafe.Pointer(out)
	for _, f := range v.fields {
		component := v.storage.GetComponent(id, f.component)
		if component == nil {
			if !f.optional {
				return false
			}
			*f.slot(base) = nil
			continue
		}
		// component holds a *C; copy its data word into the field.
		*f.slot(base) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Get returns a filled view of id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var out T
	if !v.Fill(id, &out) {
		return nil
	}
	return &out
}

// Iter yields every matching live entity in slot order. The yielded struct
// is reused between iterations; copy it to keep it.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var out T
		for id := range v.storage.AllEntities() {
			if v.Fill(id, &out) && !yield(id, out) {
				return
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, out := range v.Iter() {
			if !yield(out) {
				return
			}
		}
	}
}

// Query returns a live query over the view's required types.
func (v *View[T]) Query() *EntityQuery {
	return NewLiveQuery(v.storage, v.required...)
}

// Spawn creates an entity holding copies of the components data points at.
// Nil optional fields are skipped; a nil required field is an error.
func (v *View[T]) Spawn(data T) (EntityId, error) {
	base := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		ptr := *f.slot(base)
		if ptr == nil {
			if !f.optional {
				return 0, eris.Wrapf(ErrComponentNotFound, "required view field %s is nil", f.component)
			}
			continue
		}
		components = append(components, reflect.NewAt(f.component, ptr).Elem().Interface())
	}
	return v.storage.Spawn(components...)
}
