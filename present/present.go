// Package present connects ECS state to a platform renderer. Systems move
// entities by writing Position and Rotation components; SyncSystem pushes
// those values onto each entity's Transform handle once per frame.
package present

import (
	"github.com/plus3/framestep/ecs"
)

// Transform is the platform-side object an entity drives. Implementations
// live in ebitenpresent and termpresent.
type Transform interface {
	SetPosition(x, y float64)
	SetRotation(radians float64)
}

type Position struct {
	X, Y float64
}

type Rotation struct {
	Radians float64
}

// Renderable links an entity to its platform handle.
type Renderable struct {
	Handle Transform
}

// SyncPriority runs SyncSystem after every gameplay system.
const SyncPriority = 1000

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Rotation](registry)
	ecs.RegisterComponent[Renderable](registry)
}

// SyncSystem copies Position and, when present, Rotation onto the handle of
// every Renderable entity.
type SyncSystem struct {
	Items *ecs.View[struct {
		*Renderable
		*Position
		Rotation *Rotation `ecs:"optional"`
	}]
}

func (s *SyncSystem) Priority() int { return SyncPriority }

func (s *SyncSystem) Execute(frame *ecs.UpdateFrame) {
	synced := 0
	for item := range s.Items.Values() {
		handle := item.Renderable.Handle
		if handle == nil {
			continue
		}
		handle.SetPosition(item.Position.X, item.Position.Y)
		if item.Rotation != nil {
			handle.SetRotation(item.Rotation.Radians)
		}
		synced++
	}
	frame.Logger.Trace().Int("synced", synced).Msg("transforms synced")
}
