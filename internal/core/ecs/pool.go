package ecs

import "fmt"

// Pool is a free list of storage blocks for one component type. Blocks are
// opaque to the pool; it only knows how to construct and release them.
// A block handed out by Create is in instances until Destroy moves it to cache.
type Pool struct {
	construct func() any
	release   func(any)

	instances []any
	cache     []any
	positions map[any]int
	refs      map[any]int

	allocated int
}

func NewPool(construct func() any, release func(any)) *Pool {
	if construct == nil {
		panic("ecs: pool constructor must not be nil")
	}
	return &Pool{
		construct: construct,
		release:   release,
		instances: make([]any, 0, 64),
		cache:     make([]any, 0, 16),
		positions: make(map[any]int, 64),
		refs:      make(map[any]int, 64),
	}
}

// Create returns a recycled block when one is cached, otherwise a fresh one.
func (p *Pool) Create() any {
	var block any
	if n := len(p.cache); n > 0 {
		block = p.cache[n-1]
		p.cache[n-1] = nil
		p.cache = p.cache[:n-1]
	} else {
		block = p.construct()
		p.allocated++
	}
	p.positions[block] = len(p.instances)
	p.refs[block]++
	p.instances = append(p.instances, block)
	return block
}

// Destroy releases a live block and parks it in the cache for reuse.
func (p *Pool) Destroy(block any) {
	idx, ok := p.positions[block]
	if !ok {
		panic(fmt.Sprintf("ecs: block %p is not live in pool", block))
	}
	last := len(p.instances) - 1
	moved := p.instances[last]
	p.instances[idx] = moved
	p.instances[last] = nil
	p.instances = p.instances[:last]

	if n := p.refs[block] - 1; n > 0 {
		// Only zero-size types hand out the same block twice, and then every
		// slot holds that one pointer.
		p.refs[block] = n
		p.positions[block] = last - 1
	} else {
		delete(p.refs, block)
		delete(p.positions, block)
		if moved != block {
			p.positions[moved] = idx
		}
	}

	if p.release != nil {
		p.release(block)
	}
	p.cache = append(p.cache, block)
}

// Live reports whether block is currently handed out.
func (p *Pool) Live(block any) bool {
	_, ok := p.positions[block]
	return ok
}

func (p *Pool) Len() int { return len(p.instances) }

func (p *Pool) Cached() int { return len(p.cache) }

// Allocated is the number of times the constructor ran.
func (p *Pool) Allocated() int { return p.allocated }

// Clear releases every live block and drops both lists.
func (p *Pool) Clear() {
	if p.release != nil {
		for _, block := range p.instances {
			p.release(block)
		}
	}
	p.instances = p.instances[:0]
	p.cache = p.cache[:0]
	clear(p.positions)
	clear(p.refs)
}
