package event

import (
	"fmt"
	"reflect"
)

// Events is a per-type single-slot staging channel. A value written during
// tick N becomes readable after Rotate ends tick N, stays readable for all of
// tick N+1, and is cleared by the Rotate that ends tick N+1 just before that
// tick's own writes are staged.
//
// Only the most recent write of a type within one tick survives; aggregate
// into a slice-valued event type when several occurrences matter.
type Events struct {
	slots map[reflect.Type]any

	sets      []func()
	clears    []func()
	oldClears []func()
}

func New() *Events {
	return &Events{
		slots: make(map[reflect.Type]any, 8),
	}
}

// Write stages v to be published at the end of the current tick.
func Write[T any](e *Events, v T) {
	t := reflect.TypeFor[T]()
	e.sets = append(e.sets, func() { e.slots[t] = v })
	e.clears = append(e.clears, func() { delete(e.slots, t) })
}

// Has reports whether a published value of type T is visible this tick.
func Has[T any](e *Events) bool {
	_, ok := e.slots[reflect.TypeFor[T]()]
	return ok
}

// Read returns the published value of type T, if any.
func Read[T any](e *Events) (T, bool) {
	v, ok := e.slots[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Rotate runs the clears staged one tick ago, then publishes this tick's
// writes. The World calls it once per Update after every system has run.
func (e *Events) Rotate() {
	for _, fn := range e.oldClears {
		fn()
	}
	e.oldClears, e.clears = e.clears, e.oldClears[:0]
	for _, fn := range e.sets {
		fn()
	}
	clear(e.sets)
	e.sets = e.sets[:0]
}

// Pending is the number of writes staged for the next Rotate.
func (e *Events) Pending() int { return len(e.sets) }

// Visible is the number of event types readable right now.
func (e *Events) Visible() int { return len(e.slots) }

// Reset drops every published and staged value.
func (e *Events) Reset() {
	clear(e.slots)
	e.sets = e.sets[:0]
	e.clears = e.clears[:0]
	e.oldClears = e.oldClears[:0]
}

// Writer is a typed handle for producing one event type.
type Writer[T any] struct {
	e *Events
}

func NewWriter[T any](e *Events) Writer[T] { return Writer[T]{e: e} }

func (w Writer[T]) Write(v T) { Write(w.e, v) }

// Reader is a typed handle for consuming one event type.
type Reader[T any] struct {
	e *Events
}

func NewReader[T any](e *Events) Reader[T] { return Reader[T]{e: e} }

func (r Reader[T]) Has() bool { return Has[T](r.e) }

// Read returns the visible value and panics when there is none; check Has first.
func (r Reader[T]) Read() T {
	v, ok := Read[T](r.e)
	if !ok {
		panic(fmt.Sprintf("event: no %s event visible", reflect.TypeFor[T]()))
	}
	return v
}
