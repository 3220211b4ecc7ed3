package debugui

import (
	"github.com/plus3/framestep/ecs"
)

// Panel components. Each lives on its own entity, spawned by SpawnDebugUI,
// and keeps the panel's UI state between frames.

// EntityBrowserComponent lists live entities, paged and filtered.
type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	filterType         string
	maxEntitiesPerPage int
	currentPage        int
}

// ComponentInspectorComponent edits the components of the selected entity.
type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

// StoreViewerComponent shows one row per registered component type.
type StoreViewerComponent struct {
	cache        *StoreViewerCache
	selectedType string
}

// SchedulerViewerComponent keeps a ring buffer of frame times and a
// per-system latency history for the plot.
type SchedulerViewerComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	systemLatency map[string][]float32
}

// QueryDebuggerComponent holds the component types ticked in the panel.
type QueryDebuggerComponent struct {
	selectedComponentTypes map[string]bool
}
