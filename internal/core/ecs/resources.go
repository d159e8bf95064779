package ecs

import "fmt"

// Resources gives systems access to the World's singletons. Values returned
// by GetResource may be modified in place; installing or removing a resource
// goes through Commands.
type Resources struct {
	w *World
}

// HasResource reports whether a T resource exists.
func HasResource[T any](r Resources) bool {
	_, ok := TryResource[T](r)
	return ok
}

// GetResource returns the T resource. It panics if none is set.
func GetResource[T any](r Resources) *T {
	v, ok := TryResource[T](r)
	if !ok {
		panic(fmt.Sprintf("ecs: no %s resource", typeOf[T]()))
	}
	return v
}

// TryResource returns the T resource, if set.
func TryResource[T any](r Resources) (*T, bool) {
	id, ok := r.w.resourceTypes.Lookup(typeOf[T]())
	if !ok {
		return nil, false
	}
	res, ok := r.w.resources[ResourceID(id)]
	if !ok {
		return nil, false
	}
	return res.value.(*T), true
}

// Len is the number of resources currently set.
func (r Resources) Len() int { return len(r.w.resources) }
