package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/framestep/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render shows every component of the selected entity with editable fields.
// Destroy and remove requests are queued on commands.
func (ci *ComponentInspectorComponent) Render(storage *ecs.Storage, commands *ecs.Commands, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId.IsZero() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !storage.IsAlive(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %s no longer exists", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", ci.selectedEntityId))
	imgui.SameLine()
	if imgui.Button("Destroy") {
		commands.Destroy(ci.selectedEntityId)
	}
	imgui.Separator()

	for _, compType := range sortedTypes(storage.ComponentTypes(ci.selectedEntityId)) {
		component := storage.GetComponent(ci.selectedEntityId, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			if kind, _ := storage.Registry().Kind(compType); kind == ecs.Shared {
				imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "shared value, edits affect every holder")
			}
			ci.renderComponent(component, compType)
			if imgui.Button("Remove##" + compType.String()) {
				commands.RemoveComponent(ci.selectedEntityId, compType)
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorComponent) renderComponent(component any, compType reflect.Type) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if compType.Kind() != reflect.Struct {
		ci.renderValue(compType.Name(), val)
		return
	}

	for _, field := range layouts.fields(compType) {
		fieldVal := val.FieldByIndex(field.Index)
		if field.Pointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderValue(field.Name, fieldVal)
	}
}

// renderValue draws an editor for val and writes edits straight back, since
// val is addressable through the component pointer.
func (ci *ComponentInspectorComponent) renderValue(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	label := fmt.Sprintf("##%s", name)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			setValue(val, reflect.ValueOf(int64(v)))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 {
			setValue(val, reflect.ValueOf(uint64(v)))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) {
			setValue(val, reflect.ValueOf(float64(v)))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			setValue(val, reflect.ValueOf(v))
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			setValue(val, reflect.ValueOf(v))
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range layouts.fields(val.Type()) {
				nestedVal := val.FieldByIndex(nf.Index)
				if nf.Pointer {
					if nestedVal.IsNil() {
						imgui.Text(fmt.Sprintf("%s: nil", nf.Name))
						continue
					}
					nestedVal = nestedVal.Elem()
				}
				ci.renderValue(nf.Name, nestedVal)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// setValue converts v to dst's type and stores it. Unsettable destinations
// and impossible conversions are ignored.
func setValue(dst, v reflect.Value) bool {
	if !dst.CanSet() || !v.Type().ConvertibleTo(dst.Type()) {
		return false
	}
	dst.Set(v.Convert(dst.Type()))
	return true
}

func sortedTypes(types []reflect.Type) []reflect.Type {
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}
