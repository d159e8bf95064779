package ecs

import (
	"fmt"
	"reflect"
)

type opKind uint8

const (
	opSpawnEntity opKind = iota
	opDestroyEntity
	opSetResource
	opRemoveResource
)

func (k opKind) String() string {
	switch k {
	case opSpawnEntity:
		return "spawn"
	case opDestroyEntity:
		return "destroy"
	case opSetResource:
		return "set_resource"
	case opRemoveResource:
		return "remove_resource"
	default:
		return fmt.Sprintf("op(%d)", uint8(k))
	}
}

// componentSpawn carries everything needed to materialise one component at
// flush time: the type's id (its pool knows how to construct and release
// blocks) and a closure copying the staged value into a fresh block.
type componentSpawn struct {
	id     ComponentID
	assign func(block any)
}

type op struct {
	kind       opKind
	entity     Entity
	components []componentSpawn
	resource   ResourceID
	value      any // *T for opSetResource
}

// Commands is a write-only staging area for one system invocation. Nothing
// touches the World until Execute, which applies the recorded operations in a
// fixed order: resource removals, resource sets, entity destructions, entity
// spawns.
type Commands struct {
	world    *World
	ops      []op
	executed bool
}

func newCommands(w *World) *Commands {
	return &Commands{world: w}
}

// Spawn reserves an entity id immediately and records its components for
// creation at flush time. Components are passed by value and copied; if the
// same type appears twice the later value wins.
func (c *Commands) Spawn(components ...any) Entity {
	c.mustRecord(opSpawnEntity)
	e := c.world.ids.Generate()
	spawns := make([]componentSpawn, 0, len(components))
	for _, comp := range components {
		if comp == nil {
			panic("ecs: cannot spawn a nil component")
		}
		v := reflect.ValueOf(comp)
		cs := componentSpawn{
			id:     c.world.componentID(v.Type()),
			assign: assignTo(v),
		}
		replaced := false
		for i := range spawns {
			if spawns[i].id == cs.id {
				spawns[i] = cs
				replaced = true
				break
			}
		}
		if !replaced {
			spawns = append(spawns, cs)
		}
	}
	c.ops = append(c.ops, op{kind: opSpawnEntity, entity: e, components: spawns})
	return e
}

// Destroy records e for destruction. Destroying an entity that is gone by
// flush time is a no-op, so repeated calls are harmless. Destructions run
// before spawns, so destroying an entity spawned by this same buffer has no
// effect.
func (c *Commands) Destroy(e Entity) {
	c.mustRecord(opDestroyEntity)
	c.ops = append(c.ops, op{kind: opDestroyEntity, entity: e})
}

// SetResource records v as the resource of its dynamic type, replacing any
// existing value at flush time.
func (c *Commands) SetResource(v any) {
	c.mustRecord(opSetResource)
	if v == nil {
		panic("ecs: cannot set a nil resource")
	}
	src := reflect.ValueOf(v)
	dst := reflect.New(src.Type())
	dst.Elem().Set(src)
	c.ops = append(c.ops, op{
		kind:     opSetResource,
		resource: c.world.resourceID(src.Type()),
		value:    dst.Interface(),
	})
}

// RemoveResource records removal of the T resource. Removing a resource that
// does not exist at flush time is a no-op.
func RemoveResource[T any](c *Commands) {
	c.mustRecord(opRemoveResource)
	c.ops = append(c.ops, op{
		kind:     opRemoveResource,
		resource: c.world.resourceID(typeOf[T]()),
	})
}

// mustRecord panics when an operation is recorded into a buffer that has
// already executed, since it would never be applied.
func (c *Commands) mustRecord(k opKind) {
	if c.executed {
		panic(fmt.Sprintf("ecs: %s recorded into an executed command buffer", k))
	}
}

// Len is the number of recorded operations not yet executed.
func (c *Commands) Len() int { return len(c.ops) }

// Execute applies the recorded operations to the World. A buffer executes at
// most once; later calls do nothing and recording into it panics.
func (c *Commands) Execute() {
	if c.executed {
		return
	}
	c.executed = true
	w := c.world
	for _, o := range c.ops {
		if o.kind == opRemoveResource {
			w.removeResource(o.resource)
		}
	}
	for _, o := range c.ops {
		if o.kind == opSetResource {
			w.setResource(o.resource, o.value)
		}
	}
	for _, o := range c.ops {
		if o.kind == opDestroyEntity {
			w.destroyEntity(o.entity)
		}
	}
	for _, o := range c.ops {
		if o.kind == opSpawnEntity {
			w.spawnEntity(o.entity, o.components)
		}
	}
	c.ops = nil
}
