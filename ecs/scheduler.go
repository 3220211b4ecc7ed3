package ecs

import (
	"cmp"
	"reflect"
	"slices"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frame           uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Priority       int
	State          SystemState
	EntityCount    int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (st *systemStatsInternal) record(d time.Duration) {
	st.executionCount++
	st.lastDuration = d
	st.totalDuration += d
	if d < st.minDuration {
		st.minDuration = d
	}
	if d > st.maxDuration {
		st.maxDuration = d
	}
}

// SystemDescriptor is one row of the static system table produced by
// cmd/systemgen. New must return a fresh system value.
type SystemDescriptor struct {
	Name     string
	Priority int
	New      func() System
}

// Scheduler owns every registered system, keyed by concrete type, and runs
// them in ascending priority order.
type Scheduler struct {
	storage  *Storage
	logger   zerolog.Logger
	systems  []*SystemInstance
	byType   map[reflect.Type]*SystemInstance
	commands *Commands
	frame    uint64
	updating bool
}

// NewScheduler creates a new scheduler for the given storage and registers
// one instance per descriptor with an empty entity set.
func NewScheduler(storage *Storage, logger zerolog.Logger, descriptors ...SystemDescriptor) *Scheduler {
	s := &Scheduler{
		storage:  storage,
		logger:   logger,
		byType:   make(map[reflect.Type]*SystemInstance),
		commands: newCommands(),
	}
	for _, d := range descriptors {
		s.RegisterDescriptor(d)
	}
	return s
}

// Register adds system to the scheduler bound to a query over entities.
// If a system of the same concrete type is already registered, entities are
// merged into its query and the existing instance is returned.
func (s *Scheduler) Register(system System, entities ...EntityId) *SystemInstance {
	priority := 0
	if p, ok := system.(Prioritized); ok {
		priority = p.Priority()
	}
	return s.register(system, priority, entities)
}

// RegisterDescriptor registers d.New() with the descriptor's priority.
func (s *Scheduler) RegisterDescriptor(d SystemDescriptor, entities ...EntityId) *SystemInstance {
	if d.New == nil {
		panic(eris.Wrapf(ErrNotASystemType, "descriptor %q has no constructor", d.Name))
	}
	system := d.New()
	if system == nil {
		panic(eris.Wrapf(ErrNotASystemType, "descriptor %q returned nil", d.Name))
	}
	return s.register(system, d.Priority, entities)
}

// RegisterType constructs a zero value of t and registers it. Panics with
// ErrNotASystemType if neither *t nor t implements System.
func (s *Scheduler) RegisterType(t reflect.Type, entities ...EntityId) *SystemInstance {
	if t == nil {
		panic(eris.Wrap(ErrNotASystemType, "nil type"))
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if existing, ok := s.byType[t]; ok {
		return s.merge(existing, entities)
	}

	ptr := reflect.New(t)
	if system, ok := ptr.Interface().(System); ok {
		return s.Register(system, entities...)
	}
	if system, ok := ptr.Elem().Interface().(System); ok {
		return s.Register(system, entities...)
	}
	panic(eris.Wrapf(ErrNotASystemType, "%s does not implement ecs.System", t))
}

func (s *Scheduler) register(system System, priority int, entities []EntityId) *SystemInstance {
	systemType := systemTypeOf(system)
	if existing, ok := s.byType[systemType]; ok {
		return s.merge(existing, entities)
	}

	s.initializeFields(system)

	var query *EntityQuery
	if r, ok := system.(Requirer); ok {
		query = NewLiveQuery(s.storage, r.Requires()...)
		query.AddEntity(entities...)
	} else {
		query = NewEntityQuery(s.storage, entities...)
	}

	inst := &SystemInstance{
		system:     system,
		systemType: systemType,
		name:       systemType.Name(),
		priority:   priority,
		query:      query,
		registered: true,
		stats:      &systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	s.byType[systemType] = inst
	s.systems = append(s.systems, inst)
	slices.SortStableFunc(s.systems, func(a, b *SystemInstance) int {
		return cmp.Compare(a.priority, b.priority)
	})

	s.logger.Debug().
		Str("system", inst.name).
		Int("priority", priority).
		Int("entities", query.Len()).
		Msg("system registered")
	return inst
}

func (s *Scheduler) merge(inst *SystemInstance, entities []EntityId) *SystemInstance {
	inst.query.AddEntity(entities...)
	s.logger.Debug().
		Str("system", inst.name).
		Int("added", len(entities)).
		Int("entities", inst.query.Len()).
		Msg("system registration merged")
	return inst
}

// initializeFields points Singleton[T] and View[T] fields of a struct system
// at the scheduler's storage.
func (s *Scheduler) initializeFields(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Ptr {
		return
	}
	systemValue = systemValue.Elem()
	if systemValue.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() {
			continue
		}
		switch {
		case field.Kind() == reflect.Struct:
			if binder, ok := field.Addr().Interface().(storageBinder); ok {
				binder.Init(s.storage)
			}
		case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
			if _, ok := field.Interface().(storageBinder); !ok {
				continue
			}
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			field.Interface().(storageBinder).Init(s.storage)
		}
	}
}

// storageBinder is satisfied by *Singleton[T] and *View[T].
type storageBinder interface {
	Init(storage *Storage)
}

// Unregister removes the system of type t. It does not destroy the system.
func (s *Scheduler) Unregister(t reflect.Type) {
	if t == nil {
		return
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	inst, ok := s.byType[t]
	if !ok {
		return
	}
	delete(s.byType, t)
	s.systems = slices.DeleteFunc(s.systems, func(si *SystemInstance) bool { return si == inst })
	inst.registered = false
	s.logger.Debug().Str("system", inst.name).Str("state", inst.state.String()).Msg("system unregistered")
}

// UnregisterSystem removes the system of system's concrete type.
func (s *Scheduler) UnregisterSystem(system System) {
	s.Unregister(systemTypeOf(system))
}

// Get returns the instance registered for t.
func (s *Scheduler) Get(t reflect.Type) (*SystemInstance, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	inst, ok := s.byType[t]
	return inst, ok
}

// GetSystem returns the registered system of type T.
func GetSystem[T System](s *Scheduler) (T, bool) {
	var zero T
	inst, ok := s.Get(reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	system, ok := inst.system.(T)
	return system, ok
}

// ForEach calls fn for each system in priority order. The sequence is
// snapshotted first; systems unregistered by fn before their turn are skipped.
func (s *Scheduler) ForEach(fn func(*SystemInstance)) {
	for _, inst := range slices.Clone(s.systems) {
		if !inst.registered {
			continue
		}
		fn(inst)
	}
}

// ForEachOf calls fn for the registered system of concrete type T, if any.
func ForEachOf[T System](s *Scheduler, fn func(T)) {
	s.ForEach(func(inst *SystemInstance) {
		if system, ok := inst.system.(T); ok {
			fn(system)
		}
	})
}

// Systems returns the registered instances in priority order.
func (s *Scheduler) Systems() []*SystemInstance {
	return slices.Clone(s.systems)
}

// Len returns the number of registered systems.
func (s *Scheduler) Len() int {
	return len(s.systems)
}

// Frame returns the number of frames run so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Commands returns the deferred command buffer shared by all systems.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

func (s *Scheduler) newFrame(dt float64) *UpdateFrame {
	return newUpdateFrame(dt, s.frame, s.storage, s.commands)
}

// CreateAll creates every registered system that is still Uncreated.
func (s *Scheduler) CreateAll() {
	frame := s.newFrame(0)
	s.ForEach(func(inst *SystemInstance) {
		s.create(inst, frame)
	})
	s.flush()
}

func (s *Scheduler) create(inst *SystemInstance, frame *UpdateFrame) {
	if inst.state != Uncreated {
		return
	}
	frame.Logger = s.systemLogger(inst)
	inst.Create(frame)
	s.logger.Debug().Str("system", inst.name).Msg("system created")
}

// DestroyAll destroys every Created system.
func (s *Scheduler) DestroyAll() {
	frame := s.newFrame(0)
	s.ForEach(func(inst *SystemInstance) {
		s.destroy(inst, frame)
	})
	s.flush()
}

func (s *Scheduler) destroy(inst *SystemInstance, frame *UpdateFrame) {
	if inst.state != Created {
		return
	}
	frame.Logger = s.systemLogger(inst)
	inst.Destroy(frame)
	s.logger.Debug().Str("system", inst.name).Msg("system destroyed")
}

// Update executes all registered systems once with the given delta time,
// then applies the commands they queued. A system that is not Created
// panics with ErrInvalidLifecycleCall.
func (s *Scheduler) Update(dt float64) {
	s.frame++
	s.execute(s.newFrame(dt))
	s.flush()
}

func (s *Scheduler) execute(frame *UpdateFrame) {
	s.updating = true
	defer func() { s.updating = false }()

	s.ForEach(func(inst *SystemInstance) {
		frame.Logger = s.systemLogger(inst)
		start := time.Now()
		inst.Update(frame)
		inst.stats.record(time.Since(start))
	})
}

// flush applies queued commands. It waits for the end of the pass when
// called while systems are executing.
func (s *Scheduler) flush() {
	if s.updating || s.commands.Pending() == 0 {
		return
	}
	if err := s.commands.Flush(s.storage); err != nil {
		s.logger.Error().Err(err).Uint64("frame", s.frame).Msg("deferred commands failed")
	}
}

func (s *Scheduler) systemLogger(inst *SystemInstance) zerolog.Logger {
	return s.logger.With().Str("system", inst.name).Logger()
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frame:       s.frame,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, inst := range s.systems {
		internal := inst.stats
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           inst.name,
			Priority:       inst.priority,
			State:          inst.state,
			EntityCount:    inst.query.Count(),
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
