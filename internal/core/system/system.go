package system

import "time"

// Phase orders systems within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // dispatch last tick's events
	PhaseUpdate                  // simulation
	PhasePostUpdate              // expiry, stats
	PhaseCleanup                 // flush queued destruction
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
