package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/framestep/ecs"
)

// StoreViewerCache holds the last component store snapshot and its sort order.
type StoreViewerCache struct {
	stats         ecs.StorageStats
	sortColumn    int
	sortAscending bool
}

func NewStoreViewerComponent() StoreViewerComponent {
	return StoreViewerComponent{
		cache: &StoreViewerCache{
			sortColumn:    3,
			sortAscending: false,
		},
	}
}

// Render draws one row per registered component type and returns the type
// name clicked this frame, or "" if none was.
func (sv *StoreViewerComponent) Render(storage *ecs.Storage) string {
	if !imgui.BeginV("Component Store", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}

	sv.refresh(storage)
	stats := sv.cache.stats

	imgui.Text(fmt.Sprintf("Entities: %d (free slots: %d)", stats.EntityCount, stats.FreeSlots))
	imgui.Text(fmt.Sprintf("Component Types: %d", stats.ComponentTypeCount))
	if stats.SingletonCount > 0 && imgui.TreeNodeStr(fmt.Sprintf("Singletons (%d)", stats.SingletonCount)) {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}
	imgui.Separator()

	maxCount := 0
	for _, cs := range stats.Components {
		maxCount = max(maxCount, cs.Count)
	}

	var clicked string

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StoreTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Distinct")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.cache.sortColumn = int(spec.ColumnIndex())
			sv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortComponents()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, cs := range sv.cache.stats.Components {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedType == cs.Name
			if imgui.SelectableBoolV(cs.Name, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sv.selectedType = cs.Name
				clicked = cs.Name
			}

			imgui.TableNextColumn()
			imgui.Text(cs.Kind.String())

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", cs.Distinct))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", cs.Count))

			if maxCount > 0 {
				barWidth := float32(cs.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (sv *StoreViewerComponent) refresh(storage *ecs.Storage) {
	sv.cache.stats = storage.CollectStats()
	sv.sortComponents()
}

func (sv *StoreViewerComponent) sortComponents() {
	components := sv.cache.stats.Components
	sort.SliceStable(components, func(i, j int) bool {
		a, b := components[i], components[j]
		if !sv.cache.sortAscending {
			a, b = b, a
		}
		var less bool

		switch sv.cache.sortColumn {
		case 0:
			less = a.Name < b.Name
		case 1:
			less = a.Kind < b.Kind
		case 2:
			less = a.Distinct < b.Distinct
		default:
			less = a.Count < b.Count
		}

		return less
	})
}
