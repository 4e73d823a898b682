package ecs

import "errors"

var (
	// ErrEntityNotFound is returned for dead, stale or never-created entity ids.
	ErrEntityNotFound = errors.New("ecs: entity not found")

	// ErrCapacityExceeded is returned when registering one more component type
	// would exceed the presence mask width.
	ErrCapacityExceeded = errors.New("ecs: component type capacity exceeded")

	// ErrComponentNotPresent is returned by data accessors when the entity does
	// not hold the requested component.
	ErrComponentNotPresent = errors.New("ecs: component not present")

	// ErrCatalogConflict is returned when a reserved type name disagrees with
	// ids already handed out.
	ErrCatalogConflict = errors.New("ecs: component catalog conflict")

	// ErrWorldLocked is the panic value raised when the world is structurally
	// mutated while one of its views is being iterated.
	ErrWorldLocked = errors.New("ecs: world mutated during iteration")
)
