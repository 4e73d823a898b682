package component

import "time"

// Lifetime counts down each tick. LifetimeSystem queues the entity for
// destruction once Remaining reaches zero.
type Lifetime struct {
	Remaining time.Duration `yaml:"remaining"`
}

// Label names an entity for logs and scene tooling.
type Label struct {
	Name  string `yaml:"name"`
	Group string `yaml:"group"`
}
