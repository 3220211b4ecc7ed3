package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/framestep/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ComponentTypes []string
	ComponentCount int
}

// storeSignature is cheap to compute and changes whenever an entity is
// created or destroyed.
type storeSignature struct {
	live, free int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	signature     storeSignature
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
			signature:     storeSignature{live: -1},
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterType = ""
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.rebuildCache(storage)
	}
	if eb.filterType != "" {
		imgui.Text("Component: " + eb.filterType)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Generation")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := eb.getFilteredEntities()
		startIdx, endIdx := eb.pageBounds(len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID.Index()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ID.Generation()))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	filteredEntities := eb.getFilteredEntities()

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := eb.totalPages(len(filteredEntities))
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

func (eb *EntityBrowserComponent) totalPages(n int) int {
	return (n + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
}

// pageBounds clamps the current page to the filtered entity count.
func (eb *EntityBrowserComponent) pageBounds(n int) (int, int) {
	if pages := eb.totalPages(n); eb.currentPage >= pages {
		eb.currentPage = max(pages-1, 0)
	}
	start := eb.currentPage * eb.maxEntitiesPerPage
	end := min(start+eb.maxEntitiesPerPage, n)
	return start, end
}

func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	current := storeSignature{
		live: storage.Len(),
		free: storage.Entities().FreeSlots(),
	}
	if eb.cache.signature != current {
		eb.cache.entities = nil
		eb.cache.signature = current
	}

	if eb.cache.entities == nil {
		eb.rebuildCache(storage)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(storage *ecs.Storage) {
	eb.cache.entities = make([]EntityInfo, 0, storage.Len())

	for entityId := range storage.AllEntities() {
		types := storage.ComponentTypes(entityId)
		componentTypes := make([]string, len(types))
		for i, t := range types {
			componentTypes[i] = t.String()
		}
		sort.Strings(componentTypes)

		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:             entityId,
			ComponentTypes: componentTypes,
			ComponentCount: len(componentTypes),
		})
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		if !eb.cache.sortAscending {
			a, b = b, a
		}
		var less bool

		switch eb.cache.sortColumn {
		case 0:
			less = a.ID.Index() < b.ID.Index()
		case 1:
			less = a.ID.Generation() < b.ID.Generation()
		case 2:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.ID < b.ID
		}

		return less
	})
}

func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterType == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterType != "" && !containsString(entity.ComponentTypes, eb.filterType) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID.Index())
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// SetTypeFilter restricts the browser to entities holding the named component type.
func (eb *EntityBrowserComponent) SetTypeFilter(typeName string) {
	eb.filterType = typeName
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
