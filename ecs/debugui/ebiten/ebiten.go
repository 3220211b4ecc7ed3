// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/framestep/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The ini file is
// disabled so panel layout does not leak between runs.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Game adapts a World to ebiten.Game, ticking it once per Update between
// the ImGui frame boundaries. Render is called before the overlay is drawn.
type Game struct {
	World   *ecs.World
	Backend ImguiBackend
	Render  func(screen *ebiten.Image)
}

func (g *Game) Update() error {
	g.Backend.BeginFrame()
	g.World.Tick(1.0 / float64(ebiten.TPS()))
	g.Backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.Render != nil {
		g.Render(screen)
	}
	g.Backend.EbitenBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
