package ecs

import (
	"fmt"
	"reflect"
)

// Category scopes a TypeIndexer. Components and resources are numbered
// independently of each other.
type Category int

const (
	CategoryComponent Category = iota
	CategoryResource
)

func (c Category) String() string {
	switch c {
	case CategoryComponent:
		return "component"
	case CategoryResource:
		return "resource"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// TypeIndexer assigns a small dense id to each distinct Go type the first time
// it is referenced. Ids are stable for the life of the indexer, so registering
// types up front in a fixed order yields reproducible ids across runs.
type TypeIndexer struct {
	category Category
	ids      map[reflect.Type]uint32
	types    []reflect.Type
}

func NewTypeIndexer(category Category) *TypeIndexer {
	return &TypeIndexer{
		category: category,
		ids:      make(map[reflect.Type]uint32, 16),
		types:    make([]reflect.Type, 0, 16),
	}
}

// Index returns the id for t, assigning the next free one if t is new.
func (x *TypeIndexer) Index(t reflect.Type) uint32 {
	if id, ok := x.ids[t]; ok {
		return id
	}
	id := uint32(len(x.types))
	x.ids[t] = id
	x.types = append(x.types, t)
	return id
}

// Lookup returns the id for t without assigning one.
func (x *TypeIndexer) Lookup(t reflect.Type) (uint32, bool) {
	id, ok := x.ids[t]
	return id, ok
}

// Type returns the Go type registered under id.
func (x *TypeIndexer) Type(id uint32) reflect.Type {
	if int(id) >= len(x.types) {
		panic(fmt.Sprintf("ecs: unknown %s id %d", x.category, id))
	}
	return x.types[id]
}

func (x *TypeIndexer) Len() int { return len(x.types) }

func (x *TypeIndexer) Category() Category { return x.category }

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
