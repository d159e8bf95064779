package ecs_test

import (
	"testing"

	"github.com/chemwar/game/internal/core/ecs"
	"github.com/chemwar/game/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type position struct{ X, Y float64 }

type velocity struct{ X, Y float64 }

type name struct{ Value string }

type marker struct{}

type gravity struct{ G float64 }

type handle struct{ released *int }

func (h *handle) Release() { *h.released++ }

func newTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	return ecs.NewWorld(zaptest.NewLogger(t))
}

func spawnNow(w *ecs.World, components ...any) ecs.Entity {
	cmd := w.NewCommands()
	e := cmd.Spawn(components...)
	cmd.Execute()
	return e
}

func destroyNow(w *ecs.World, e ecs.Entity) {
	cmd := w.NewCommands()
	cmd.Destroy(e)
	cmd.Execute()
}

func TestSpawnQueryRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	e := spawnNow(w, position{1, 2}, velocity{3, 4}, name{"crate"})

	q := w.Querier()
	require.True(t, ecs.Has[position](q, e))
	require.True(t, ecs.Has[velocity](q, e))
	require.True(t, ecs.Has[name](q, e))
	assert.Equal(t, position{1, 2}, *ecs.Get[position](q, e))
	assert.Equal(t, velocity{3, 4}, *ecs.Get[velocity](q, e))
	assert.Equal(t, name{"crate"}, *ecs.Get[name](q, e))
	assert.False(t, ecs.Has[marker](q, e))
}

func TestSpawnIsDeferredUntilExecute(t *testing.T) {
	w := newTestWorld(t)
	cmd := w.NewCommands()
	e := cmd.Spawn(position{})

	assert.NotEqual(t, ecs.Null, e)
	assert.False(t, w.Alive(e))
	assert.Empty(t, ecs.Query[position](w.Querier()))
	assert.Equal(t, 1, cmd.Len())

	cmd.Execute()
	assert.True(t, w.Alive(e))
	assert.Equal(t, []ecs.Entity{e}, ecs.Query[position](w.Querier()))
}

func TestSpawnCopiesValue(t *testing.T) {
	w := newTestWorld(t)
	p := position{1, 1}
	cmd := w.NewCommands()
	e := cmd.Spawn(p)
	p.X = 99
	cmd.Execute()

	assert.Equal(t, 1.0, ecs.Get[position](w.Querier(), e).X)
}

func TestSpawnDuplicateTypeLastWins(t *testing.T) {
	w := newTestWorld(t)
	e := spawnNow(w, name{"first"}, name{"second"})

	assert.Equal(t, "second", ecs.Get[name](w.Querier(), e).Value)
	assert.Equal(t, 1, ecs.Count[name](w.Querier()))
}

func TestGetMissingPanics(t *testing.T) {
	w := newTestWorld(t)
	e := spawnNow(w, position{})
	assert.Panics(t, func() { ecs.Get[velocity](w.Querier(), e) })
	assert.Panics(t, func() { ecs.Get[position](w.Querier(), e+1) })

	_, ok := ecs.TryGet[velocity](w.Querier(), e)
	assert.False(t, ok)
}

func TestGetAllowsInPlaceMutation(t *testing.T) {
	w := newTestWorld(t)
	e := spawnNow(w, position{})
	ecs.Get[position](w.Querier(), e).X = 5
	assert.Equal(t, 5.0, ecs.Get[position](w.Querier(), e).X)
}

func TestDestroyCompleteness(t *testing.T) {
	w := newTestWorld(t)
	e := spawnNow(w, position{}, velocity{}, marker{})
	other := spawnNow(w, position{}, velocity{})

	destroyNow(w, e)

	q := w.Querier()
	assert.False(t, w.Alive(e))
	assert.False(t, ecs.Has[position](q, e))
	assert.False(t, ecs.Has[velocity](q, e))
	assert.False(t, ecs.Has[marker](q, e))
	assert.NotContains(t, ecs.Query[position](q), e)
	assert.NotContains(t, ecs.Query2[position, velocity](q), e)
	assert.Empty(t, ecs.Query[marker](q))
	assert.Equal(t, []ecs.Entity{other}, ecs.Query2[velocity, position](q))
}

func TestDestroyMissingIsNoop(t *testing.T) {
	w := newTestWorld(t)
	e := spawnNow(w, position{})

	cmd := w.NewCommands()
	cmd.Destroy(e)
	cmd.Destroy(e)
	cmd.Destroy(e + 100)
	assert.NotPanics(t, cmd.Execute)
	assert.Equal(t, 0, w.Len())

	assert.NotPanics(t, func() { destroyNow(w, e) })
}

func TestExecuteOnlyOnce(t *testing.T) {
	w := newTestWorld(t)
	cmd := w.NewCommands()
	cmd.Spawn(position{})
	cmd.Execute()
	assert.NotPanics(t, cmd.Execute)
	assert.Equal(t, 1, w.Len())
}

func TestRecordingAfterExecutePanics(t *testing.T) {
	w := newTestWorld(t)
	cmd := w.NewCommands()
	first := cmd.Spawn(position{})
	cmd.Execute()

	assert.PanicsWithValue(t, "ecs: spawn recorded into an executed command buffer", func() {
		cmd.Spawn(position{})
	})
	assert.Panics(t, func() { cmd.Destroy(first) })
	assert.Panics(t, func() { cmd.SetResource(gravity{G: 9.8}) })
	assert.Panics(t, func() { ecs.RemoveResource[gravity](cmd) })

	assert.Zero(t, cmd.Len())
	assert.True(t, w.Alive(first))
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, first+1, spawnNow(w, position{}), "no id consumed by the rejected spawn")
}

func TestDestroyRunsBeforeSpawnWithinBuffer(t *testing.T) {
	w := newTestWorld(t)
	cmd := w.NewCommands()
	e := cmd.Spawn(position{})
	cmd.Destroy(e)
	cmd.Execute()

	// Destructions are applied first, so the entity spawned by the same
	// buffer survives.
	assert.True(t, w.Alive(e))
}

func TestQueryIntersection(t *testing.T) {
	w := newTestWorld(t)
	a := spawnNow(w, position{}, velocity{})
	b := spawnNow(w, position{})
	c := spawnNow(w, velocity{}, name{"c"})
	d := spawnNow(w, position{}, velocity{}, name{"d"})

	q := w.Querier()
	assert.ElementsMatch(t, []ecs.Entity{a, b, d}, ecs.Query[position](q))
	assert.ElementsMatch(t, []ecs.Entity{a, d}, ecs.Query2[position, velocity](q))
	assert.ElementsMatch(t, []ecs.Entity{c, d}, ecs.Query2[velocity, name](q))
	assert.ElementsMatch(t, []ecs.Entity{d}, ecs.Query3[position, velocity, name](q))
	assert.Empty(t, ecs.Query4[position, velocity, name, marker](q))
	assert.Empty(t, ecs.Query[gravity](q))
}

func TestEachYieldsTypedPointers(t *testing.T) {
	w := newTestWorld(t)
	spawnNow(w, position{0, 0}, velocity{1, 2})
	spawnNow(w, position{10, 10}, velocity{-1, 0})
	spawnNow(w, position{5, 5})

	q := w.Querier()
	ecs.Each2(q, func(_ ecs.Entity, p *position, v *velocity) {
		p.X += v.X
		p.Y += v.Y
	})

	var got []position
	ecs.Each(q, func(_ ecs.Entity, p *position) { got = append(got, *p) })
	assert.ElementsMatch(t, []position{{1, 2}, {9, 10}, {5, 5}}, got)

	count := 0
	ecs.Each3(q, func(ecs.Entity, *position, *velocity, *name) { count++ })
	assert.Zero(t, count)
}

func TestPoolReuseAcrossEntities(t *testing.T) {
	w := newTestWorld(t)
	first := spawnNow(w, position{1, 1})
	_, _, allocated := ecs.ComponentStats[position](w)
	require.Equal(t, 1, allocated)

	destroyNow(w, first)
	live, cached, allocated := ecs.ComponentStats[position](w)
	require.Equal(t, 0, live)
	require.Equal(t, 1, cached)
	require.Equal(t, 1, allocated)

	second := spawnNow(w, position{2, 2})
	live, cached, allocated = ecs.ComponentStats[position](w)
	assert.Equal(t, 1, live)
	assert.Equal(t, 0, cached)
	assert.Equal(t, 1, allocated, "spawn must draw from the cache")
	assert.Equal(t, position{2, 2}, *ecs.Get[position](w.Querier(), second))
}

func TestEntityIdsAreMonotonic(t *testing.T) {
	w := newTestWorld(t)
	a := spawnNow(w, marker{})
	destroyNow(w, a)
	b := spawnNow(w, marker{})
	assert.Greater(t, b, a)
	assert.False(t, w.Alive(a))
}

func TestResourceRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	cmd := w.NewCommands()
	cmd.SetResource(gravity{9.8})
	cmd.Execute()

	r := w.Resources()
	require.True(t, ecs.HasResource[gravity](r))
	assert.Equal(t, gravity{9.8}, *ecs.GetResource[gravity](r))

	cmd = w.NewCommands()
	ecs.RemoveResource[gravity](cmd)
	cmd.Execute()
	assert.False(t, ecs.HasResource[gravity](r))
	assert.Panics(t, func() { ecs.GetResource[gravity](r) })
}

func TestResourceOverwrite(t *testing.T) {
	w := newTestWorld(t)
	ecs.SetResource(w, gravity{1})

	cmd := w.NewCommands()
	cmd.SetResource(gravity{2})
	cmd.Execute()
	assert.Equal(t, 2.0, ecs.GetResource[gravity](w.Resources()).G)
	assert.Equal(t, 1, w.Resources().Len())
}

func TestRemoveMissingResourceIsNoop(t *testing.T) {
	w := newTestWorld(t)
	cmd := w.NewCommands()
	ecs.RemoveResource[gravity](cmd)
	assert.NotPanics(t, cmd.Execute)
}

func TestResourceRemovalRunsBeforeSet(t *testing.T) {
	w := newTestWorld(t)
	cmd := w.NewCommands()
	cmd.SetResource(gravity{3})
	ecs.RemoveResource[gravity](cmd)
	cmd.Execute()
	assert.True(t, ecs.HasResource[gravity](w.Resources()))
}

func TestResourceAndComponentIdsAreIndependent(t *testing.T) {
	w := newTestWorld(t)
	assert.Equal(t, ecs.ComponentID(0), ecs.RegisterComponent[position](w))
	assert.Equal(t, ecs.ComponentID(1), ecs.RegisterComponent[velocity](w))
	assert.Equal(t, ecs.ResourceID(0), ecs.RegisterResource[gravity](w))
	assert.Equal(t, ecs.ComponentID(0), ecs.RegisterComponent[position](w))
}

func TestReleaseHooks(t *testing.T) {
	w := newTestWorld(t)
	var released int

	e := spawnNow(w, handle{released: &released})
	spawnNow(w, handle{released: &released})
	destroyNow(w, e)
	assert.Equal(t, 1, released)

	ecs.SetResource(w, handle{released: &released})
	ecs.SetResource(w, handle{released: &released})
	assert.Equal(t, 2, released, "replaced resource is released")

	w.Shutdown()
	assert.Equal(t, 4, released, "shutdown releases live components and resources once")
	assert.Equal(t, 0, w.Len())
}

func TestStartupRunsOnce(t *testing.T) {
	w := newTestWorld(t)
	runs := 0
	w.AddStartupSystem(func(cmd *ecs.Commands, _ ecs.Querier, _ ecs.Resources, _ *event.Events) {
		runs++
		cmd.Spawn(marker{})
	})
	w.Startup()
	w.Startup()
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, w.Len())
}

func TestSystemsSeePreTickSnapshot(t *testing.T) {
	w := newTestWorld(t)
	var seenBySecond []int

	w.AddSystem(func(cmd *ecs.Commands, q ecs.Querier, _ ecs.Resources, _ *event.Events) {
		cmd.Spawn(marker{})
	}).AddSystem(func(cmd *ecs.Commands, q ecs.Querier, _ ecs.Resources, _ *event.Events) {
		seenBySecond = append(seenBySecond, len(ecs.Query[marker](q)))
	})

	w.Update()
	w.Update()
	w.Update()
	assert.Equal(t, []int{0, 1, 2}, seenBySecond)
	assert.Equal(t, uint64(3), w.Tick())
}

func TestTwoSystemsSpawnDistinctEntities(t *testing.T) {
	w := newTestWorld(t)
	var spawned []ecs.Entity
	spawner := func(cmd *ecs.Commands, _ ecs.Querier, _ ecs.Resources, _ *event.Events) {
		spawned = append(spawned, cmd.Spawn(name{"x"}))
	}
	w.AddSystem(spawner).AddSystem(spawner)
	w.Update()

	require.Len(t, spawned, 2)
	assert.NotEqual(t, spawned[0], spawned[1])
	assert.True(t, w.Alive(spawned[0]))
	assert.True(t, w.Alive(spawned[1]))
	assert.ElementsMatch(t, spawned, ecs.Query[name](w.Querier()))
}

func TestBuffersExecuteInRegistrationOrder(t *testing.T) {
	w := newTestWorld(t)
	w.AddSystem(func(cmd *ecs.Commands, _ ecs.Querier, _ ecs.Resources, _ *event.Events) {
		cmd.SetResource(gravity{1})
	}).AddSystem(func(cmd *ecs.Commands, _ ecs.Querier, _ ecs.Resources, _ *event.Events) {
		cmd.SetResource(gravity{2})
	})
	w.Update()
	assert.Equal(t, 2.0, ecs.GetResource[gravity](w.Resources()).G)
}

func TestEventOneTickDelay(t *testing.T) {
	type ping struct{ N int }
	w := newTestWorld(t)

	var visible []bool
	var payload []int
	w.AddSystem(func(_ *ecs.Commands, _ ecs.Querier, _ ecs.Resources, ev *event.Events) {
		if w.Tick() == 0 {
			event.NewWriter[ping](ev).Write(ping{7})
		}
	}).AddSystem(func(_ *ecs.Commands, _ ecs.Querier, _ ecs.Resources, ev *event.Events) {
		r := event.NewReader[ping](ev)
		visible = append(visible, r.Has())
		if r.Has() {
			payload = append(payload, r.Read().N)
		}
	})

	for i := 0; i < 4; i++ {
		w.Update()
	}
	assert.Equal(t, []bool{false, true, false, false}, visible)
	assert.Equal(t, []int{7}, payload)
}

func TestShutdownDropsEverything(t *testing.T) {
	w := newTestWorld(t)
	e := spawnNow(w, position{}, velocity{})
	ecs.SetResource(w, gravity{1})
	w.AddSystem(func(*ecs.Commands, ecs.Querier, ecs.Resources, *event.Events) {})

	w.Shutdown()
	assert.False(t, w.Alive(e))
	assert.Empty(t, ecs.Query[position](w.Querier()))
	assert.False(t, ecs.HasResource[gravity](w.Resources()))
	live, _, _ := ecs.ComponentStats[position](w)
	assert.Zero(t, live)
}
