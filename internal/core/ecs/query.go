package ecs

import (
	"fmt"
	"reflect"
)

// Querier is a read-only view of a World. Pointers it returns may be used to
// change the fields of an existing component in place; adding or removing
// components and entities must go through Commands.
type Querier struct {
	w *World
}

// Query returns every entity that has A.
func Query[A any](q Querier) []Entity {
	return q.query(typeOf[A]())
}

// Query2 returns every entity that has both A and B.
func Query2[A, B any](q Querier) []Entity {
	return q.query(typeOf[A](), typeOf[B]())
}

// Query3 returns every entity that has A, B and C.
func Query3[A, B, C any](q Querier) []Entity {
	return q.query(typeOf[A](), typeOf[B](), typeOf[C]())
}

// Query4 returns every entity that has A, B, C and D.
func Query4[A, B, C, D any](q Querier) []Entity {
	return q.query(typeOf[A](), typeOf[B](), typeOf[C](), typeOf[D]())
}

// Each calls fn for every entity with A.
func Each[A any](q Querier, fn func(Entity, *A)) {
	for _, e := range Query[A](q) {
		fn(e, Get[A](q, e))
	}
}

// Each2 calls fn for every entity with both A and B.
func Each2[A, B any](q Querier, fn func(Entity, *A, *B)) {
	for _, e := range Query2[A, B](q) {
		fn(e, Get[A](q, e), Get[B](q, e))
	}
}

// Each3 calls fn for every entity with A, B and C.
func Each3[A, B, C any](q Querier, fn func(Entity, *A, *B, *C)) {
	for _, e := range Query3[A, B, C](q) {
		fn(e, Get[A](q, e), Get[B](q, e), Get[C](q, e))
	}
}

// Has reports whether e is alive and has a T component.
func Has[T any](q Querier, e Entity) bool {
	_, ok := TryGet[T](q, e)
	return ok
}

// Get returns e's T component. It panics if e has none.
func Get[T any](q Querier, e Entity) *T {
	c, ok := TryGet[T](q, e)
	if !ok {
		panic(fmt.Sprintf("ecs: %s has no %s component", e, typeOf[T]()))
	}
	return c
}

// TryGet returns e's T component, if present.
func TryGet[T any](q Querier, e Entity) (*T, bool) {
	id, ok := q.w.componentTypes.Lookup(typeOf[T]())
	if !ok {
		return nil, false
	}
	block, ok := q.w.entities[e][ComponentID(id)]
	if !ok {
		return nil, false
	}
	return block.(*T), true
}

func (q Querier) Alive(e Entity) bool { return q.w.Alive(e) }

// Len is the number of live entities.
func (q Querier) Len() int { return q.w.Len() }

// Count returns how many entities have T without building a slice.
func Count[T any](q Querier) int {
	info := q.w.lookupComponent(typeOf[T]())
	if info == nil {
		return 0
	}
	return info.set.Len()
}

// query walks the first type's sparse set and keeps entities whose component
// map holds every other type, stopping at the first missing one. The result
// order follows the first set's dense order.
func (q Querier) query(types ...reflect.Type) []Entity {
	first := q.w.lookupComponent(types[0])
	if first == nil || first.set.Len() == 0 {
		return nil
	}
	rest := make([]ComponentID, 0, len(types)-1)
	for _, t := range types[1:] {
		id, ok := q.w.componentTypes.Lookup(t)
		if !ok {
			return nil
		}
		rest = append(rest, ComponentID(id))
	}

	out := make([]Entity, 0, first.set.Len())
	for _, e := range first.set.Entities() {
		container := q.w.entities[e]
		matched := true
		for _, id := range rest {
			if _, ok := container[id]; !ok {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}
