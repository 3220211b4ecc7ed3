package ecs

import (
	"context"
	"os"
	"reflect"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// WorldState is the lifecycle position of a World.
type WorldState uint8

const (
	Unloaded WorldState = iota
	Initialized
	ShuttingDown
)

func (s WorldState) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case ShuttingDown:
		return "shutting_down"
	default:
		return "unloaded"
	}
}

// World ties one Storage to one Scheduler and drives them through
// Initialize, Tick and Shutdown. It is not safe for concurrent use.
type World struct {
	registry    *ComponentRegistry
	cfg         Config
	logger      zerolog.Logger
	descriptors []SystemDescriptor
	storage     *Storage
	scheduler   *Scheduler
	state       WorldState
}

// Option configures a World.
type Option func(*worldOptions)

type worldOptions struct {
	cfg         Config
	logger      *zerolog.Logger
	buildLogger bool
	descriptors []SystemDescriptor
}

// WithLogger sets the world logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *worldOptions) {
		o.logger = &logger
	}
}

// WithConfig replaces the world configuration.
func WithConfig(cfg Config) Option {
	return func(o *worldOptions) {
		o.cfg = cfg
	}
}

// WithDescriptors adds rows of the static system table. Each one is
// registered with an empty entity set when the scheduler is constructed.
func WithDescriptors(descriptors ...SystemDescriptor) Option {
	return func(o *worldOptions) {
		o.descriptors = append(o.descriptors, descriptors...)
	}
}

// WithPrettyLog switches the configured logger to console output on stderr.
func WithPrettyLog() Option {
	return func(o *worldOptions) {
		o.cfg.PrettyLog = true
		o.buildLogger = true
	}
}

// NewWorld creates an Unloaded world over registry. Without WithLogger the
// world logs nothing.
func NewWorld(registry *ComponentRegistry, opts ...Option) *World {
	return newWorld(registry, worldOptions{cfg: DefaultConfig()}, opts)
}

// NewWorldFromEnv creates a world configured from FRAMESTEP_* environment
// variables, logging to stderr at the configured level.
func NewWorldFromEnv(registry *ComponentRegistry, opts ...Option) (*World, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return newWorld(registry, worldOptions{cfg: cfg, buildLogger: true}, opts), nil
}

func newWorld(registry *ComponentRegistry, o worldOptions, opts []Option) *World {
	for _, opt := range opts {
		opt(&o)
	}

	logger := zerolog.Nop()
	switch {
	case o.logger != nil:
		logger = *o.logger
	case o.buildLogger:
		logger = o.cfg.NewLogger(os.Stderr)
	}

	return &World{
		registry:    registry,
		cfg:         o.cfg,
		logger:      logger.With().Str("component", "world").Logger(),
		descriptors: o.descriptors,
		storage:     newStorage(registry, o.cfg.EntityCapacity),
	}
}

// State returns the lifecycle state.
func (w *World) State() WorldState { return w.state }

// Config returns the world configuration.
func (w *World) Config() Config { return w.cfg }

// Logger returns the world logger.
func (w *World) Logger() zerolog.Logger { return w.logger }

// Registry returns the component registry.
func (w *World) Registry() *ComponentRegistry { return w.registry }

// Storage returns the entity and component storage. After Shutdown a fresh
// storage replaces the released one.
func (w *World) Storage() *Storage {
	w.ensureStorage()
	return w.storage
}

func (w *World) ensureStorage() {
	if w.state != ShuttingDown && w.storage.Released() {
		w.storage = w.storage.rebuild(w.cfg.EntityCapacity)
		w.logger.Debug().Msg("storage rebuilt")
	}
}

// Scheduler returns the system scheduler, constructing it on first use.
func (w *World) Scheduler() *Scheduler {
	if w.scheduler == nil {
		w.ensureStorage()
		w.scheduler = NewScheduler(w.storage, w.logger, w.descriptors...)
	}
	return w.scheduler
}

// Initialize constructs the scheduler and creates every registered system.
// Calling it on an initialized world does nothing.
func (w *World) Initialize() {
	switch w.state {
	case Initialized:
		return
	case ShuttingDown:
		w.lifecycleError("initialize during shutdown")
		return
	}

	scheduler := w.Scheduler()
	scheduler.CreateAll()
	w.state = Initialized

	w.logger.Debug().Int("systems", scheduler.Len()).Msg("world initialized")
}

// RegisterSystem registers system bound to entities. On an initialized
// world the new instance is created immediately.
func (w *World) RegisterSystem(system System, entities ...EntityId) *SystemInstance {
	scheduler := w.Scheduler()
	inst := scheduler.Register(system, entities...)
	if w.state == Initialized {
		scheduler.create(inst, scheduler.newFrame(0))
		scheduler.flush()
	}
	return inst
}

// RegisterSystemType registers a zero value of the system type t.
// See Scheduler.RegisterType.
func (w *World) RegisterSystemType(t reflect.Type, entities ...EntityId) *SystemInstance {
	scheduler := w.Scheduler()
	inst := scheduler.RegisterType(t, entities...)
	if w.state == Initialized {
		scheduler.create(inst, scheduler.newFrame(0))
		scheduler.flush()
	}
	return inst
}

// Tick updates every system once in priority order. Calling Tick on a world
// that is not initialized panics with ErrInvalidLifecycleCall unless the
// config disables strict lifecycle checks.
func (w *World) Tick(dt float64) {
	if w.state != Initialized {
		w.lifecycleError("tick on " + w.state.String() + " world")
		return
	}
	w.scheduler.Update(dt)
}

// Shutdown destroys then unregisters every system, and finally releases
// the storage. The world returns to Unloaded and may be initialized again.
func (w *World) Shutdown() {
	if w.state != Initialized {
		w.logger.Debug().Str("state", w.state.String()).Msg("shutdown skipped")
		return
	}
	w.state = ShuttingDown

	scheduler := w.scheduler
	frame := scheduler.newFrame(0)
	scheduler.ForEach(func(inst *SystemInstance) {
		scheduler.destroy(inst, frame)
		scheduler.Unregister(inst.Type())
	})
	scheduler.flush()

	w.storage.Release()
	w.logger.Debug().Msg("storage released")
	w.scheduler = nil
	w.state = Unloaded

	w.logger.Debug().Msg("world shut down")
}

// Run ticks the world at interval until ctx is cancelled. A non-positive
// interval uses the configured tick rate. The world is initialized first
// if needed.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = w.cfg.TickInterval()
	}
	w.Initialize()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			w.Tick(dt)
		}
	}
}

func (w *World) lifecycleError(msg string) {
	err := eris.Wrap(ErrInvalidLifecycleCall, msg)
	if w.cfg.StrictLifecycle {
		panic(err)
	}
	w.logger.Error().Err(err).Msg("lifecycle call skipped")
}
