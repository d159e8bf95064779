package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorIsMonotonic(t *testing.T) {
	var g EntityGenerator
	assert.Equal(t, Entity(0), g.Generate())
	assert.Equal(t, Entity(1), g.Generate())
	assert.Equal(t, uint32(2), g.Issued())
}

func TestGeneratorNeverIssuesNull(t *testing.T) {
	g := EntityGenerator{next: uint32(Null) - 1}
	assert.Equal(t, Null-1, g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestEntityString(t *testing.T) {
	assert.Equal(t, "entity(3)", Entity(3).String())
	assert.Equal(t, "entity(null)", Null.String())
	assert.True(t, Null.IsNull())
}

func TestTypeIndexerPerCategory(t *testing.T) {
	type a struct{}
	type b struct{}
	comps := NewTypeIndexer(CategoryComponent)
	res := NewTypeIndexer(CategoryResource)

	assert.Equal(t, uint32(0), comps.Index(typeOf[a]()))
	assert.Equal(t, uint32(1), comps.Index(typeOf[b]()))
	assert.Equal(t, uint32(0), res.Index(typeOf[b]()))
	assert.Equal(t, uint32(0), comps.Index(typeOf[a]()))

	_, ok := res.Lookup(typeOf[a]())
	assert.False(t, ok)
	assert.Equal(t, typeOf[b](), comps.Type(1))
	assert.Panics(t, func() { comps.Type(5) })
	assert.Equal(t, "resource", res.Category().String())
}
