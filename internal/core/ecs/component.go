package ecs

import "reflect"

// ComponentID is the dense index of a component type within one World.
type ComponentID uint32

// ResourceID is the dense index of a resource type within one World.
// Resource and component ids are numbered independently.
type ResourceID uint32

// Releaser is implemented by component or resource values that own something
// outside the Go heap (textures, handles). Release runs exactly once per live
// value: when its entity is destroyed, its resource is replaced or removed, or
// the World shuts down.
type Releaser interface {
	Release()
}

// componentInfo pairs the membership set and storage pool of one component
// type.
type componentInfo struct {
	typ  reflect.Type
	set  *SparseSet
	pool *Pool
}

func newComponentInfo(t reflect.Type) *componentInfo {
	return &componentInfo{
		typ:  t,
		set:  NewSparseSet(),
		pool: NewPool(constructorFor(t), releaseBlock),
	}
}

func (c *componentInfo) add(e Entity) any {
	block := c.pool.Create()
	c.set.Add(e)
	return block
}

func (c *componentInfo) remove(e Entity, block any) {
	c.pool.Destroy(block)
	c.set.Remove(e)
}

// constructorFor returns a function allocating a zeroed *T for t.
func constructorFor(t reflect.Type) func() any {
	return func() any { return reflect.New(t).Interface() }
}

// releaseBlock runs the value's Release hook, if any, and zeroes the block so a
// cached block holds no references.
func releaseBlock(block any) {
	if r, ok := block.(Releaser); ok {
		r.Release()
	}
	v := reflect.ValueOf(block).Elem()
	v.SetZero()
}

// assignTo returns a closure copying value into a *T block.
func assignTo(value reflect.Value) func(block any) {
	return func(block any) {
		reflect.ValueOf(block).Elem().Set(value)
	}
}
