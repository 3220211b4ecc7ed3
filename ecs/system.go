package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// System represents a behavior that operates on entities with specific components.
// Execute runs once per frame while the system is created; frame.Entities is the
// system's own query.
type System interface {
	Execute(frame *UpdateFrame)
}

// Creator is implemented by systems that need setup before their first update.
type Creator interface {
	OnCreate(frame *UpdateFrame)
}

// Destroyer is implemented by systems that release resources on shutdown.
type Destroyer interface {
	OnDestroy(frame *UpdateFrame)
}

// Prioritized systems declare their execution priority. Lower runs first.
type Prioritized interface {
	Priority() int
}

// Requirer systems get a live query over every entity owning the returned types.
type Requirer interface {
	Requires() []reflect.Type
}

// SystemState is the lifecycle position of a registered system.
type SystemState uint8

const (
	Uncreated SystemState = iota
	Created
	Destroyed
)

func (s SystemState) String() string {
	switch s {
	case Created:
		return "created"
	case Destroyed:
		return "destroyed"
	default:
		return "uncreated"
	}
}

// SystemInstance binds one System to its query, priority and lifecycle state.
type SystemInstance struct {
	system     System
	systemType reflect.Type
	name       string
	priority   int
	query      *EntityQuery
	state      SystemState
	registered bool
	stats      *systemStatsInternal
}

// System returns the wrapped system value.
func (si *SystemInstance) System() System { return si.system }

// Type returns the concrete system type the instance is registered under.
func (si *SystemInstance) Type() reflect.Type { return si.systemType }

// Name returns the system type name.
func (si *SystemInstance) Name() string { return si.name }

// Priority returns the fixed execution priority.
func (si *SystemInstance) Priority() int { return si.priority }

// Query returns the system's entity query.
func (si *SystemInstance) Query() *EntityQuery { return si.query }

// State returns the lifecycle state.
func (si *SystemInstance) State() SystemState { return si.state }

// Registered reports whether the instance is still held by a scheduler.
func (si *SystemInstance) Registered() bool { return si.registered }

// Create moves the system from Uncreated to Created, running OnCreate once.
// It is a no-op in any other state.
func (si *SystemInstance) Create(frame *UpdateFrame) {
	if si.state != Uncreated {
		return
	}
	if c, ok := si.system.(Creator); ok {
		c.OnCreate(si.bind(frame))
	}
	si.state = Created
}

// Update runs Execute. Calling it outside the Created state panics.
func (si *SystemInstance) Update(frame *UpdateFrame) {
	if si.state != Created {
		panic(eris.Wrapf(ErrInvalidLifecycleCall, "update of system %s in state %s", si.name, si.state))
	}
	si.system.Execute(si.bind(frame))
}

// Destroy moves the system from Created to Destroyed, running OnDestroy once.
// It is a no-op in any other state.
func (si *SystemInstance) Destroy(frame *UpdateFrame) {
	if si.state != Created {
		return
	}
	if d, ok := si.system.(Destroyer); ok {
		d.OnDestroy(si.bind(frame))
	}
	si.state = Destroyed
}

func (si *SystemInstance) bind(frame *UpdateFrame) *UpdateFrame {
	frame.Entities = si.query
	return frame
}

func systemTypeOf(system System) reflect.Type {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType
}
