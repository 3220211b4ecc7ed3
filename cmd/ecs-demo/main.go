// Command ecs-demo bounces a flock of movers around an arena. The same
// world runs on either an Ebiten window with the ImGui inspector panels or
// a tcell terminal.
package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/plus3/framestep/ecs"
	"github.com/plus3/framestep/present"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

type options struct {
	backend  string
	entities int
	speed    float64
	seed     int64
}

func main() {
	var opts options
	pflag.StringVarP(&opts.backend, "backend", "b", "term", "Renderer to use: ebiten or term.")
	pflag.IntVarP(&opts.entities, "entities", "n", 200, "Number of movers to spawn.")
	pflag.Float64Var(&opts.speed, "speed", 0, "Mover speed in world units per second. Zero picks a backend default.")
	pflag.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "Seed for initial positions.")
	pflag.Parse()

	stderr := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg, err := ecs.LoadConfig()
	if err != nil {
		stderr.Fatal().Err(err).Msg("invalid configuration")
	}

	// the terminal owns stdout while the demo runs
	logFile, err := os.CreateTemp("", "ecs-demo-*.log")
	if err != nil {
		stderr.Fatal().Err(err).Msg("failed to open log file")
	}
	defer logFile.Close()
	logger := cfg.NewLogger(logFile)

	if err := run(opts, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("demo failed")
		stderr.Fatal().Err(err).Str("log", logFile.Name()).Msg("demo failed")
	}
}

func run(opts options, cfg ecs.Config, logger zerolog.Logger) error {
	switch opts.backend {
	case "ebiten":
		return runEbiten(opts, cfg, logger)
	case "term":
		return runTerm(opts, cfg, logger)
	default:
		return eris.Errorf("unknown backend %q, want ebiten or term", opts.backend)
	}
}

// newWorld builds the world shared by both backends: the generated system
// table plus the transform sync.
func newWorld(cfg ecs.Config, logger zerolog.Logger, register ...func(*ecs.ComponentRegistry)) *ecs.World {
	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	for _, fn := range register {
		fn(registry)
	}

	world := ecs.NewWorld(registry,
		ecs.WithConfig(cfg),
		ecs.WithLogger(logger),
		ecs.WithDescriptors(Systems...),
	)
	world.RegisterSystem(&present.SyncSystem{})
	return world
}

func populate(world *ecs.World, opts options, arena Arena, newHandle func(i int) present.Transform) error {
	storage := world.Storage()
	storage.AddSingleton(arena)
	r := rand.New(rand.NewSource(opts.seed))
	if err := spawnMovers(storage, r, opts.entities, opts.speed, newHandle); err != nil {
		return eris.Wrap(err, "failed to spawn movers")
	}
	return nil
}
