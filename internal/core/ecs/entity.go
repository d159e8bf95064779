package ecs

import (
	"fmt"
	"math"
)

// Entity is an opaque 32-bit handle. Handles are issued monotonically and are
// never reused within one World, so a stale handle can only ever miss.
type Entity uint32

// Null denotes "no entity". It is never issued by a generator.
const Null Entity = math.MaxUint32

func (e Entity) IsNull() bool { return e == Null }

func (e Entity) String() string {
	if e == Null {
		return "entity(null)"
	}
	return fmt.Sprintf("entity(%d)", uint32(e))
}

// EntityGenerator hands out entity ids in increasing order starting at zero.
// There is no free list: destroyed ids stay retired for the life of the World.
type EntityGenerator struct {
	next uint32
}

func (g *EntityGenerator) Generate() Entity {
	if g.next == uint32(Null) {
		panic("ecs: entity id space exhausted")
	}
	id := Entity(g.next)
	g.next++
	return id
}

// Issued reports how many ids have been generated so far.
func (g *EntityGenerator) Issued() uint32 { return g.next }
