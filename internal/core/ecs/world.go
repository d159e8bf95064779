package ecs

import (
	"fmt"
	"reflect"

	"github.com/chemwar/game/internal/core/event"
	"go.uber.org/zap"
)

// System is the signature every system implements. All structural changes go
// through cmd; q and res observe the World as it was when the tick started.
type System func(cmd *Commands, q Querier, res Resources, ev *event.Events)

type resourceInfo struct {
	value any // *T
}

// World is the top-level ECS container. It owns component storage, entity
// records, resources, the registered systems and the event staging channel.
//
// World is not safe for concurrent use. It is mutated only while command
// buffers are executed, after every system of the pass has returned.
type World struct {
	log *zap.Logger

	componentTypes *TypeIndexer
	resourceTypes  *TypeIndexer

	components []*componentInfo // by ComponentID; nil until first spawn
	entities   map[Entity]map[ComponentID]any
	resources  map[ResourceID]*resourceInfo

	startups []System
	updates  []System
	started  bool

	events *event.Events
	ids    EntityGenerator
	tick   uint64
}

// Option configures a World at construction.
type Option func(*World)

// WithEntityCapacity presizes the entity record map.
func WithEntityCapacity(n int) Option {
	return func(w *World) {
		w.entities = make(map[Entity]map[ComponentID]any, n)
	}
}

func NewWorld(log *zap.Logger, opts ...Option) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		log:            log,
		componentTypes: NewTypeIndexer(CategoryComponent),
		resourceTypes:  NewTypeIndexer(CategoryResource),
		components:     make([]*componentInfo, 0, 16),
		entities:       make(map[Entity]map[ComponentID]any, 256),
		resources:      make(map[ResourceID]*resourceInfo, 16),
		events:         event.New(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// RegisterComponent assigns T its component id now rather than on first use.
// Registering every type at startup in a fixed order keeps ids reproducible.
func RegisterComponent[T any](w *World) ComponentID {
	return w.componentID(typeOf[T]())
}

// RegisterResource assigns T its resource id now rather than on first use.
func RegisterResource[T any](w *World) ResourceID {
	return w.resourceID(typeOf[T]())
}

// SetResource installs v immediately. It is meant for setup code and for the
// runner between ticks; systems use Commands.SetResource instead.
func SetResource[T any](w *World, v T) {
	w.setResource(w.resourceID(typeOf[T]()), &v)
}

func (w *World) AddStartupSystem(sys System) *World {
	w.startups = append(w.startups, sys)
	return w
}

func (w *World) AddSystem(sys System) *World {
	w.updates = append(w.updates, sys)
	return w
}

// Startup runs every startup system once, then executes their buffers in
// registration order. Later calls are ignored.
func (w *World) Startup() {
	if w.started {
		w.log.Warn("ecs startup called twice")
		return
	}
	w.started = true
	w.flush(w.runSystems(w.startups))
}

// Update runs every update system against the same pre-tick state, rotates
// the event channel, then executes the buffers in registration order.
func (w *World) Update() {
	buffers := w.runSystems(w.updates)
	w.events.Rotate()
	w.flush(buffers)
	w.tick++
}

// Shutdown releases every live component and resource and drops all storage
// and systems.
func (w *World) Shutdown() {
	released := 0
	for _, info := range w.components {
		if info == nil {
			continue
		}
		released += info.pool.Len()
		info.pool.Clear()
		info.set.Clear()
	}
	for id, res := range w.resources {
		releaseBlock(res.value)
		delete(w.resources, id)
	}
	clear(w.entities)
	w.components = w.components[:0]
	w.startups = nil
	w.updates = nil
	w.events.Reset()
	w.log.Debug("ecs world shut down",
		zap.Uint64("tick", w.tick),
		zap.Int("components_released", released),
	)
}

// NewCommands returns an empty buffer bound to w. The caller must Execute it.
func (w *World) NewCommands() *Commands { return newCommands(w) }

func (w *World) Querier() Querier { return Querier{w: w} }

func (w *World) Resources() Resources { return Resources{w: w} }

func (w *World) Events() *event.Events { return w.events }

// Tick is the number of completed Update passes.
func (w *World) Tick() uint64 { return w.tick }

// Len is the number of live entities.
func (w *World) Len() int { return len(w.entities) }

func (w *World) Alive(e Entity) bool {
	_, ok := w.entities[e]
	return ok
}

// ComponentStats reports live and cached storage blocks and constructor calls
// for T. All zero if T was never spawned.
func ComponentStats[T any](w *World) (live, cached, allocated int) {
	info := w.lookupComponent(typeOf[T]())
	if info == nil {
		return 0, 0, 0
	}
	return info.pool.Len(), info.pool.Cached(), info.pool.Allocated()
}

func (w *World) runSystems(systems []System) []*Commands {
	buffers := make([]*Commands, 0, len(systems))
	q, res := w.Querier(), w.Resources()
	for _, sys := range systems {
		cmd := newCommands(w)
		sys(cmd, q, res, w.events)
		buffers = append(buffers, cmd)
	}
	return buffers
}

func (w *World) flush(buffers []*Commands) {
	ops := 0
	for _, cmd := range buffers {
		ops += cmd.Len()
		cmd.Execute()
	}
	if ops > 0 {
		w.log.Debug("ecs flush",
			zap.Uint64("tick", w.tick),
			zap.Int("buffers", len(buffers)),
			zap.Int("ops", ops),
			zap.Int("entities", len(w.entities)),
		)
	}
}

func (w *World) componentID(t reflect.Type) ComponentID {
	return ComponentID(w.componentTypes.Index(t))
}

func (w *World) resourceID(t reflect.Type) ResourceID {
	return ResourceID(w.resourceTypes.Index(t))
}

// lookupComponent returns the storage for t without registering anything.
func (w *World) lookupComponent(t reflect.Type) *componentInfo {
	id, ok := w.componentTypes.Lookup(t)
	if !ok || int(id) >= len(w.components) {
		return nil
	}
	return w.components[id]
}

func (w *World) ensureComponent(id ComponentID) *componentInfo {
	for int(id) >= len(w.components) {
		w.components = append(w.components, nil)
	}
	info := w.components[id]
	if info == nil {
		info = newComponentInfo(w.componentTypes.Type(uint32(id)))
		w.components[id] = info
	}
	return info
}

func (w *World) spawnEntity(e Entity, spawns []componentSpawn) {
	if _, exists := w.entities[e]; exists {
		panic(fmt.Sprintf("ecs: %s spawned twice", e))
	}
	container := make(map[ComponentID]any, len(spawns))
	for _, cs := range spawns {
		info := w.ensureComponent(cs.id)
		block := info.add(e)
		cs.assign(block)
		container[cs.id] = block
	}
	w.entities[e] = container
}

func (w *World) destroyEntity(e Entity) {
	container, ok := w.entities[e]
	if !ok {
		return
	}
	for id, block := range container {
		w.components[id].remove(e, block)
	}
	delete(w.entities, e)
}

func (w *World) setResource(id ResourceID, value any) {
	if old, ok := w.resources[id]; ok {
		releaseBlock(old.value)
		old.value = value
		return
	}
	w.resources[id] = &resourceInfo{value: value}
}

func (w *World) removeResource(id ResourceID) {
	res, ok := w.resources[id]
	if !ok {
		return
	}
	releaseBlock(res.value)
	delete(w.resources, id)
}
