package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/framestep/ecs"
	"github.com/plus3/framestep/ecs/debugui"
	debugui_ebiten "github.com/plus3/framestep/ecs/debugui/ebiten"
	"github.com/plus3/framestep/present"
	"github.com/plus3/framestep/present/ebitenpresent"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	spriteSize   = 6
	ebitenSpeed  = 120
)

// demoGame quits on Escape and otherwise defers to the debug UI game.
type demoGame struct {
	*debugui_ebiten.Game
}

func (g *demoGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return g.Game.Update()
}

func runEbiten(opts options, cfg ecs.Config, logger zerolog.Logger) error {
	if opts.speed == 0 {
		opts.speed = ebitenSpeed
	}

	backend := debugui_ebiten.NewImguiBackend("framestep demo", windowWidth, windowHeight)
	world := newWorld(cfg, logger, debugui.RegisterDebugUIComponents)

	layer := ebitenpresent.NewLayer()
	images := []*ebiten.Image{
		filledImage(color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}),
		filledImage(color.RGBA{R: 0x40, G: 0x60, B: 0xe0, A: 0xff}),
	}
	err := populate(world, opts, Arena{Width: windowWidth, Height: windowHeight}, func(i int) present.Transform {
		return layer.Add(images[i%len(images)])
	})
	if err != nil {
		return err
	}

	if err := debugui.SpawnDebugUI(world.Storage()); err != nil {
		return eris.Wrap(err, "failed to spawn debug panels")
	}
	world.RegisterSystem(&debugui.ImguiSystem{})
	world.RegisterSystem(debugui.NewPanelSystem(world.Scheduler()))
	world.Initialize()
	defer world.Shutdown()

	game := &demoGame{Game: &debugui_ebiten.Game{
		World:   world,
		Backend: backend,
		Render:  layer.Draw,
	}}
	if err := ebiten.RunGame(game); err != nil {
		return eris.Wrap(err, "game loop failed")
	}
	return nil
}

func filledImage(c color.Color) *ebiten.Image {
	img := ebiten.NewImage(spriteSize, spriteSize)
	img.Fill(c)
	return img
}
