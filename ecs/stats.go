package ecs

import (
	"reflect"
	"sort"
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	EntityCount        int
	FreeSlots          int
	ComponentTypeCount int
	SingletonCount     int
	Components         []ComponentStats
	SingletonTypes     []string
}

// ComponentStats describes one component type's backing storage.
type ComponentStats struct {
	Type  reflect.Type
	Name  string
	Kind  ComponentKind
	Count int
	// Distinct is the number of pooled values for shared types; equal to Count otherwise.
	Distinct int
}

// CollectStats gathers counts for every registered component type.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		EntityCount:    s.entities.Len(),
		FreeSlots:      s.entities.FreeSlots(),
		SingletonCount: len(s.singletons),
		SingletonTypes: s.SingletonTypes(),
	}

	for _, t := range s.registry.Types() {
		kind, _ := s.registry.Kind(t)
		cs := ComponentStats{
			Type: t,
			Name: t.String(),
			Kind: kind,
		}
		if st := s.components.lookup(t); st != nil {
			cs.Count = st.Len()
			cs.Distinct = cs.Count
			if d, ok := st.(interface{ Distinct() int }); ok {
				cs.Distinct = d.Distinct()
			}
		}
		stats.Components = append(stats.Components, cs)
	}
	sort.Slice(stats.Components, func(i, j int) bool {
		return stats.Components[i].Name < stats.Components[j].Name
	})
	stats.ComponentTypeCount = len(stats.Components)

	return stats
}
