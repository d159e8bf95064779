package system

import (
	"context"
	"sort"
	"time"

	"github.com/chemwar/game/internal/core/ecs"
	"go.uber.org/zap"
)

type entry struct {
	phase Phase
	name  string
	sys   ecs.System
}

// Runner installs systems into a World in phase order and drives its ticks.
type Runner struct {
	world *ecs.World
	log   *zap.Logger

	startups  []entry
	systems   []entry
	installed bool

	elapsed float64
	budget  time.Duration
}

func NewRunner(world *ecs.World, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		world:   world,
		log:     log,
		systems: make([]entry, 0, 16),
	}
}

// SetBudget sets the wall-clock time above which a tick is logged as slow.
// Zero disables the check.
func (r *Runner) SetBudget(d time.Duration) { r.budget = d }

// RegisterStartup adds a system that runs once before the first tick.
func (r *Runner) RegisterStartup(name string, sys ecs.System) {
	if r.installed {
		r.log.Warn("startup system registered after start, ignored", zap.String("system", name))
		return
	}
	r.startups = append(r.startups, entry{name: name, sys: sys})
}

// Register adds a per-tick system to phase.
func (r *Runner) Register(phase Phase, name string, sys ecs.System) {
	e := entry{phase: phase, name: name, sys: sys}
	if r.installed {
		r.log.Warn("system registered after start, appended last",
			zap.String("system", name), zap.Stringer("phase", phase))
		r.world.AddSystem(sys)
		r.systems = append(r.systems, e)
		return
	}
	r.systems = append(r.systems, e)
}

// Systems returns registered per-tick system names in execution order.
func (r *Runner) Systems() []string {
	r.sortSystems()
	names := make([]string, len(r.systems))
	for i, e := range r.systems {
		names[i] = e.name
	}
	return names
}

func (r *Runner) sortSystems() {
	if r.installed {
		return
	}
	sort.SliceStable(r.systems, func(i, j int) bool {
		return r.systems[i].phase < r.systems[j].phase
	})
}

// Start installs every registered system into the World and runs the startup
// pass. Tick calls it implicitly.
func (r *Runner) Start() {
	if r.installed {
		return
	}
	r.sortSystems()
	for _, e := range r.startups {
		r.world.AddStartupSystem(e.sys)
	}
	for _, e := range r.systems {
		r.world.AddSystem(e.sys)
	}
	r.installed = true

	ecs.SetResource(r.world, Time{})
	r.world.Startup()
	r.log.Info("runner started",
		zap.Int("startup_systems", len(r.startups)),
		zap.Int("systems", len(r.systems)),
		zap.Int("entities", r.world.Len()),
	)
}

// Tick publishes Time and runs one World update.
func (r *Runner) Tick(dt time.Duration) {
	r.Start()
	r.elapsed += dt.Seconds()
	ecs.SetResource(r.world, Time{
		Delta:   dt.Seconds(),
		Elapsed: r.elapsed,
		Tick:    r.world.Tick(),
	})

	start := time.Now()
	r.world.Update()
	if took := time.Since(start); r.budget > 0 && took > r.budget {
		r.log.Warn("slow tick",
			zap.Uint64("tick", r.world.Tick()-1),
			zap.Duration("took", took),
			zap.Duration("budget", r.budget),
			zap.Int("entities", r.world.Len()),
		)
	}
}

// Halted returns the pending halt request, if any system set one.
func (r *Runner) Halted() (Halt, bool) {
	h, ok := ecs.TryResource[Halt](r.world.Resources())
	if !ok {
		return Halt{}, false
	}
	return *h, true
}

// Run ticks the World every tickRate until ctx is done, a system sets Halt,
// or maxTicks ticks have run (0 means unbounded). It returns ctx.Err() when
// stopped by the context and nil otherwise.
func (r *Runner) Run(ctx context.Context, tickRate time.Duration, maxTicks uint64) error {
	r.Start()
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Tick(tickRate)
			if h, ok := r.Halted(); ok {
				r.log.Info("runner halted",
					zap.String("reason", h.Reason),
					zap.Uint64("tick", r.world.Tick()),
				)
				return nil
			}
			if maxTicks > 0 && r.world.Tick() >= maxTicks {
				r.log.Info("runner reached tick limit", zap.Uint64("ticks", maxTicks))
				return nil
			}
		}
	}
}
