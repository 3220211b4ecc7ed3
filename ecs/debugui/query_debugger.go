package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/framestep/ecs"
)

const queryDebuggerMaxRows = 50

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
	}
}

func (qd *QueryDebuggerComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	typeMap := registeredTypes(storage.Registry())
	for _, typeName := range sortedKeys(typeMap) {
		selected := qd.selectedComponentTypes[typeName]
		if imgui.Checkbox(typeName, &selected) {
			if selected {
				qd.selectedComponentTypes[typeName] = true
			} else {
				delete(qd.selectedComponentTypes, typeName)
			}
		}
	}

	imgui.Separator()

	selectedTypes := qd.selectedTypes(typeMap)
	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := qd.matchingEntities(storage, selectedTypes)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for i, id := range matching {
				if i == queryDebuggerMaxRows {
					break
				}
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(id.String())

				imgui.TableSetColumnIndex(1)
				types := storage.ComponentTypes(id)
				componentNames := make([]string, len(types))
				for i, t := range types {
					componentNames[i] = t.String()
				}
				sort.Strings(componentNames)
				imgui.Text(strings.Join(componentNames, ", "))
			}

			imgui.EndTable()
		}
		if len(matching) > queryDebuggerMaxRows {
			imgui.Text(fmt.Sprintf("... and %d more", len(matching)-queryDebuggerMaxRows))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// selectedTypes resolves the checked names against the registry, in name order.
func (qd *QueryDebuggerComponent) selectedTypes(typeMap map[string]reflect.Type) []reflect.Type {
	selected := make([]reflect.Type, 0, len(qd.selectedComponentTypes))
	for _, typeName := range sortedKeys(typeMap) {
		if qd.selectedComponentTypes[typeName] {
			selected = append(selected, typeMap[typeName])
		}
	}
	return selected
}

func (qd *QueryDebuggerComponent) matchingEntities(storage *ecs.Storage, requiredTypes []reflect.Type) []ecs.EntityId {
	matching := make([]ecs.EntityId, 0)
	ecs.NewLiveQuery(storage, requiredTypes...).ForEach(func(id ecs.EntityId) {
		matching = append(matching, id)
	})
	return matching
}

func registeredTypes(registry *ecs.ComponentRegistry) map[string]reflect.Type {
	typeMap := make(map[string]reflect.Type)
	for _, t := range registry.Types() {
		typeMap[t.String()] = t
	}
	return typeMap
}

func sortedKeys(m map[string]reflect.Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
