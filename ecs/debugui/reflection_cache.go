package debugui

import (
	"reflect"
	"slices"
	"sync"
)

// fieldInfo is one editable leaf of a component struct. Fields of embedded
// value structs are flattened into their parent; Index is the path for
// reflect.Value.FieldByIndex.
type fieldInfo struct {
	Name    string
	Index   []int
	Pointer bool
	Kind    reflect.Kind
}

// fieldCache memoizes struct layouts per type. The inspector redraws every
// frame, so the layout walk would otherwise repeat for every component shown.
type fieldCache struct {
	layouts sync.Map // reflect.Type -> []fieldInfo
}

func (c *fieldCache) fields(t reflect.Type) []fieldInfo {
	if cached, ok := c.layouts.Load(t); ok {
		return cached.([]fieldInfo)
	}
	var out []fieldInfo
	if t.Kind() == reflect.Struct {
		out = appendFields(out, t, nil)
	}
	actual, _ := c.layouts.LoadOrStore(t, out)
	return actual.([]fieldInfo)
}

func appendFields(out []fieldInfo, t reflect.Type, parent []int) []fieldInfo {
	for i := range t.NumField() {
		sf := t.Field(i)
		index := append(slices.Clone(parent), i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			out = appendFields(out, sf.Type, index)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		ft := sf.Type
		pointer := ft.Kind() == reflect.Ptr
		if pointer {
			ft = ft.Elem()
		}
		out = append(out, fieldInfo{
			Name:    sf.Name,
			Index:   index,
			Pointer: pointer,
			Kind:    ft.Kind(),
		})
	}
	return out
}

var layouts fieldCache
