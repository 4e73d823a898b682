package ecs

import "sync"

// Guarded serialises access to a World that is ticked on one goroutine and
// observed from others. Writers hold the lock exclusively for one call;
// readers share it and may only iterate and read.
type Guarded struct {
	mu sync.RWMutex
	w  *World
}

func NewGuarded(w *World) *Guarded {
	return &Guarded{w: w}
}

// Update runs fn with exclusive access to the world.
func (g *Guarded) Update(fn func(*World) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.w)
}

// Read runs fn with shared access. fn must not mutate the world.
func (g *Guarded) Read(fn func(*World)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn(g.w)
}
