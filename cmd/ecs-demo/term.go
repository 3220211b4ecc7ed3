package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/framestep/ecs"
	"github.com/plus3/framestep/present"
	"github.com/plus3/framestep/present/termpresent"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const termSpeed = 12

func runTerm(opts options, cfg ecs.Config, logger zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return eris.Wrap(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return eris.Wrap(err, "failed to initialize screen")
	}
	defer screen.Fini()

	if opts.speed == 0 {
		opts.speed = termSpeed
	}

	canvas := termpresent.NewCanvas(screen)
	world := newWorld(cfg, logger)
	if err := setupTerm(world, canvas, opts); err != nil {
		return err
	}
	world.Initialize()
	defer world.Shutdown()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			if !handleTermEvent(world.Storage(), ev) {
				return nil
			}
		case now := <-ticker.C:
			world.Tick(now.Sub(last).Seconds())
			last = now
			canvas.Draw()
		}
	}
}

// setupTerm sizes the arena to the screen and spawns one glyph per mover.
// Red and blue flocks alternate, matching spawnMovers.
func setupTerm(world *ecs.World, canvas *termpresent.Canvas, opts options) error {
	width, height := canvas.Screen().Size()
	styles := []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorRed),
		tcell.StyleDefault.Foreground(tcell.ColorBlue),
	}
	return populate(world, opts, Arena{Width: float64(width), Height: float64(height)}, func(i int) present.Transform {
		g := canvas.Add('*', styles[i%len(styles)])
		g.Directional = true
		return g
	})
}

// handleTermEvent reports false when the demo should exit.
func handleTermEvent(storage *ecs.Storage, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventResize:
		width, height := ev.Size()
		if arena := ecs.NewSingleton[Arena](storage).Get(); arena != nil {
			arena.Width, arena.Height = float64(width), float64(height)
		}
	}
	return true
}
