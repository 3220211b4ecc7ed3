package main

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/framestep/ecs"
	"github.com/plus3/framestep/present"
	"github.com/plus3/framestep/present/termpresent"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransform struct {
	x, y, rotation float64
}

func (r *recordingTransform) SetPosition(x, y float64) { r.x, r.y = x, y }
func (r *recordingTransform) SetRotation(rad float64)  { r.rotation = rad }

func TestReflectAxis(t *testing.T) {
	for _, tc := range []struct {
		name         string
		pos, v       float64
		wantPos      float64
		wantVelocity float64
	}{
		{name: "inside", pos: 5, v: 1, wantPos: 5, wantVelocity: 1},
		{name: "past low wall", pos: -2, v: -3, wantPos: 2, wantVelocity: 3},
		{name: "past high wall", pos: 12, v: 4, wantPos: 8, wantVelocity: -4},
		{name: "on high wall", pos: 10, v: 1, wantPos: math.Nextafter(10, 0), wantVelocity: -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pos, v := reflectAxis(tc.pos, tc.v, 10)
			assert.Equal(t, tc.wantPos, pos)
			assert.Equal(t, tc.wantVelocity, v)
		})
	}
}

func TestDemoWorld(t *testing.T) {
	cfg := ecs.DefaultConfig()
	world := newWorld(cfg, zerolog.Nop())

	handles := map[int]*recordingTransform{}
	opts := options{entities: 20, speed: 50, seed: 3}
	require.NoError(t, populate(world, opts, Arena{Width: 40, Height: 30}, func(i int) present.Transform {
		handles[i] = &recordingTransform{}
		return handles[i]
	}))

	world.Initialize()
	defer world.Shutdown()

	var names []string
	world.Scheduler().ForEach(func(inst *ecs.SystemInstance) {
		names = append(names, inst.Name())
	})
	assert.Equal(t, []string{"MovementSystem", "BounceSystem", "HeadingSystem", "SyncSystem"}, names)

	for range 120 {
		world.Tick(1.0 / 60)
	}

	require.Len(t, handles, 20)
	for _, h := range handles {
		assert.GreaterOrEqual(t, h.x, 0.0)
		assert.Less(t, h.x, 40.0)
		assert.GreaterOrEqual(t, h.y, 0.0)
		assert.Less(t, h.y, 30.0)
	}

	// heading follows velocity
	view := ecs.NewView[struct {
		*Velocity
		*present.Rotation
	}](world.Storage())
	for m := range view.Values() {
		assert.InDelta(t, math.Atan2(m.Velocity.Y, m.Velocity.X), m.Rotation.Radians, 1e-9)
		assert.InDelta(t, 50, math.Hypot(m.Velocity.X, m.Velocity.Y), 1e-9)
	}

	stats := world.Storage().CollectStats()
	for _, c := range stats.Components {
		if c.Kind == ecs.Shared {
			assert.Equal(t, 20, c.Count)
			assert.Equal(t, 2, c.Distinct)
		}
	}
}

func TestTermBackend(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(30, 10)

	canvas := termpresent.NewCanvas(screen)
	world := newWorld(ecs.DefaultConfig(), zerolog.Nop())
	require.NoError(t, setupTerm(world, canvas, options{entities: 8, speed: termSpeed, seed: 1}))
	assert.Equal(t, 8, canvas.Len())

	world.Initialize()
	defer world.Shutdown()
	world.Tick(0.1)
	canvas.Draw()

	drawn := 0
	for y := range 10 {
		for x := range 30 {
			if r, _, _, _ := screen.GetContent(x, y); r != ' ' && r != 0 {
				drawn++
			}
		}
	}
	assert.Greater(t, drawn, 0)
	assert.LessOrEqual(t, drawn, 8)

	assert.True(t, handleTermEvent(world.Storage(), tcell.NewEventResize(50, 20)))
	arena := ecs.NewSingleton[Arena](world.Storage()).Get()
	assert.Equal(t, Arena{Width: 50, Height: 20}, *arena)
}
