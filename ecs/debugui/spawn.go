package debugui

import "github.com/plus3/framestep/ecs"

// SpawnDebugUI creates one entity per inspector panel. PanelSystem draws them.
func SpawnDebugUI(storage *ecs.Storage) error {
	for _, panel := range []any{
		NewEntityBrowserComponent(100),
		NewComponentInspectorComponent(),
		NewStoreViewerComponent(),
		NewSchedulerViewerComponent(120),
		NewQueryDebuggerComponent(),
	} {
		if _, err := storage.Spawn(panel); err != nil {
			return err
		}
	}
	return nil
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[StoreViewerComponent](registry)
	ecs.RegisterComponent[SchedulerViewerComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
}

// PanelSystem draws the inspector panels spawned by SpawnDebugUI. The entity
// selected in the browser feeds the component inspector, and a type clicked
// in the store viewer filters the browser.
type PanelSystem struct {
	Browsers   *ecs.View[struct{ *EntityBrowserComponent }]
	Inspectors *ecs.View[struct{ *ComponentInspectorComponent }]
	Stores     *ecs.View[struct{ *StoreViewerComponent }]
	Schedulers *ecs.View[struct{ *SchedulerViewerComponent }]
	Queries    *ecs.View[struct{ *QueryDebuggerComponent }]

	scheduler *ecs.Scheduler
	timer     *FrameTimer
}

func NewPanelSystem(scheduler *ecs.Scheduler) *PanelSystem {
	return &PanelSystem{scheduler: scheduler, timer: NewFrameTimer()}
}

func (p *PanelSystem) Priority() int { return 950 }

func (p *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	deltaTime := p.timer.GetDeltaTime()

	var selected ecs.EntityId
	var browser *EntityBrowserComponent
	for item := range p.Browsers.Values() {
		browser = item.EntityBrowserComponent
		browser.Render(frame.Storage)
		selected = browser.GetSelectedEntity()
	}

	for item := range p.Stores.Values() {
		if clicked := item.StoreViewerComponent.Render(frame.Storage); clicked != "" && browser != nil {
			browser.SetTypeFilter(clicked)
		}
	}

	for item := range p.Inspectors.Values() {
		item.ComponentInspectorComponent.Render(frame.Storage, frame.Commands, selected)
	}

	if p.scheduler != nil {
		for item := range p.Schedulers.Values() {
			item.SchedulerViewerComponent.Render(p.scheduler, deltaTime)
		}
	}

	for item := range p.Queries.Values() {
		item.QueryDebuggerComponent.Render(frame.Storage)
	}
}
