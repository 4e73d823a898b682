package component

import (
	"fmt"

	"github.com/cubos/engine/internal/core/ecs"
)

// Register binds every component of this package in a fixed order, so a
// fresh registry always assigns the same ids. Types already reserved by a
// catalog keep their catalog ids.
func Register(r *ecs.Registry) error {
	for _, reg := range []func(*ecs.Registry) (ecs.ComponentTypeID, error){
		ecs.TypeOf[Position],
		ecs.TypeOf[Velocity],
		ecs.TypeOf[Lifetime],
		ecs.TypeOf[Label],
	} {
		if _, err := reg(r); err != nil {
			return fmt.Errorf("register components: %w", err)
		}
	}
	return nil
}
