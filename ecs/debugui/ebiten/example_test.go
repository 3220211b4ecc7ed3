package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/framestep/ecs"
	"github.com/plus3/framestep/ecs/debugui"
	debugui_ebiten "github.com/plus3/framestep/ecs/debugui/ebiten"
)

func Example() {
	// Create Ebiten window and ImGui backend
	backend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	// Set up ECS component registry
	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)

	world := ecs.NewWorld(registry)
	storage := world.Storage()

	// Spawn entities with ImGui render functions
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	// Inspector panels for the world itself
	if err := debugui.SpawnDebugUI(storage); err != nil {
		panic(err)
	}

	world.RegisterSystem(&debugui.ImguiSystem{})
	world.RegisterSystem(debugui.NewPanelSystem(world.Scheduler()))
	world.Initialize()
	defer world.Shutdown()

	game := &debugui_ebiten.Game{World: world, Backend: backend}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
