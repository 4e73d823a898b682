package system

import (
	"slices"
	"time"
)

// Runner executes systems phase by phase each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	byPhase map[Phase][]System
	phases  []Phase // ascending, rebuilt on Register
	ticks   uint64
}

func NewRunner() *Runner {
	return &Runner{byPhase: make(map[Phase][]System, 4)}
}

func (r *Runner) Register(systems ...System) {
	for _, s := range systems {
		p := s.Phase()
		if _, ok := r.byPhase[p]; !ok {
			r.phases = append(r.phases, p)
			slices.Sort(r.phases)
		}
		r.byPhase[p] = append(r.byPhase[p], s)
	}
}

// Tick runs every phase once.
func (r *Runner) Tick(dt time.Duration) {
	for _, p := range r.phases {
		r.runPhase(p, dt)
	}
	r.ticks++
}

// TickPhase runs only the systems of one phase. It does not count as a tick.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.runPhase(phase, dt)
}

func (r *Runner) runPhase(p Phase, dt time.Duration) {
	for _, s := range r.byPhase[p] {
		s.Update(dt)
	}
}

// Ticks returns the number of completed Tick calls.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	n := 0
	for _, ss := range r.byPhase {
		n += len(ss)
	}
	return n
}

// Phases lists the phases that have at least one system, in run order.
func (r *Runner) Phases() []Phase { return slices.Clone(r.phases) }
