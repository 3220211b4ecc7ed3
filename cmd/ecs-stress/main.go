package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/framestep/ecs"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	duration := pflag.DurationP("duration", "d", 10*time.Second, "The total duration the test should run for.")
	entityCount := pflag.IntP("entities", "n", 10000, "The initial number of entities to create.")
	systemCount := pflag.Int("systems", len(systemKinds), "The number of stress systems to register.")
	churn := pflag.Int("churn", 100, "Entities destroyed and respawned per frame.")
	seed := pflag.Int64("seed", 1, "Seed for the random entity layout.")
	gcPauseMetrics := pflag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := pflag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Fatal().Str("profile", *profileMode).Msg("unknown profile mode, want cpu or mem")
	}

	logger.Info().Msg("Starting ECS stress test...")

	// 1. Setup Registry, World, and systems
	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	cfg := ecs.DefaultConfig()
	cfg.EntityCapacity = *entityCount
	world := ecs.NewWorld(registry, ecs.WithConfig(cfg), ecs.WithLogger(logger.Level(zerolog.WarnLevel)))

	r := rand.New(rand.NewSource(*seed))
	systems := registerSystems(world, r, *systemCount, *churn)

	// 2. Populate Storage with initial entities
	logger.Info().Int("entities", *entityCount).Msg("Populating storage...")
	storage := world.Storage()
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		if _, err := spawnRandomEntity(storage, r, r.Intn(5)+1); err != nil {
			logger.Fatal().Err(err).Msg("Failed to spawn entity")
		}
	}
	logger.Info().Msg("Population complete.")

	world.Initialize()
	defer world.Shutdown()

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     len(componentKinds) + 1,
		Systems:        systems,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", *duration).Msg("Running simulation...")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			world.Tick(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.FinalEntities = storage.Len()
	report.UpdateTime.Finalize()
	report.AddSystems(world.Scheduler().GetStats())
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info().Msg("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("Failed to generate report")
	}
	fmt.Println("--- End of Report ---")

	logger.Info().Msg("Stress test complete.")
}
