package ecs

import "github.com/rs/zerolog"

// UpdateFrame is handed to every system hook. The scheduler re-points
// Entities and Logger at the executing system before each call, so systems
// must not retain the frame past the call.
type UpdateFrame struct {
	DeltaTime float64
	Frame     uint64
	Commands  *Commands
	Storage   *Storage
	Entities  *EntityQuery
	Logger    zerolog.Logger
}

func newUpdateFrame(dt float64, frame uint64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Frame:     frame,
		Commands:  commands,
		Storage:   storage,
		Logger:    zerolog.Nop(),
	}
}
