package ecs

import "fmt"

// EntityID encodes a 32-bit row index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
type EntityID uint64

// InvalidEntity never refers to a live row.
const InvalidEntity = ^EntityID(0)

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	if id == InvalidEntity {
		return "entity(invalid)"
	}
	return fmt.Sprintf("entity(%d#%d)", id.Index(), id.Generation())
}
