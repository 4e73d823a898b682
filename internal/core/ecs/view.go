package ecs

import (
	"fmt"
	"iter"
)

// View selects the entities whose presence row contains a fixed query mask.
//
// A View is not a snapshot: every iteration walks the live table from row 0
// up to its current Next(), so entities created between two iterations show
// up in the second one. A View borrows its World and must not outlive it.
type View struct {
	world *World
	mask  Mask
}

// NewView builds a view over the given component types. No types matches
// every live entity. Type ids outside the world's mask width are fatal.
func NewView(w *World, types ...ComponentTypeID) View {
	m := newMask(w.table.Words())
	for _, c := range types {
		if int(c) >= len(m)*bitsPerWord {
			panic(fmt.Errorf("%w: component id %d outside %d-bit mask", ErrCapacityExceeded, c, len(m)*bitsPerWord))
		}
		m.Set(c)
	}
	return View{world: w, mask: m}
}

func mustType[T any](w *World) ComponentTypeID {
	id, err := ComponentTypeOf[T](w)
	if err != nil {
		panic(err)
	}
	return id
}

func Query1[A any](w *World) View {
	return NewView(w, mustType[A](w))
}

func Query2[A, B any](w *World) View {
	return NewView(w, mustType[A](w), mustType[B](w))
}

func Query3[A, B, C any](w *World) View {
	return NewView(w, mustType[A](w), mustType[B](w), mustType[C](w))
}

func Query4[A, B, C, D any](w *World) View {
	return NewView(w, mustType[A](w), mustType[B](w), mustType[C](w), mustType[D](w))
}

func (v View) World() *World { return v.world }

// Mask returns a copy of the query mask.
func (v View) Mask() Mask { return v.mask.Clone() }

// scan returns the first matching row index at or after from, or the table's
// current Next() when there is none.
func (v View) scan(from uint32) uint32 {
	t := v.world.table
	for from < t.Next() && !t.matchesAt(from, v.mask) {
		from++
	}
	return from
}

// Entities yields matching entities in strictly increasing index order.
// The world is locked against structural mutation for the duration of the
// range loop, including early exit.
func (v View) Entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		w := v.world
		w.acquire()
		defer w.release()
		for i := v.scan(0); i != w.table.Next(); i = v.scan(i + 1) {
			if !yield(w.table.entityAt(i)) {
				return
			}
		}
	}
}

func (v View) Each(fn func(EntityID)) {
	for id := range v.Entities() {
		fn(id)
	}
}

func (v View) Count() int {
	n := 0
	for range v.Entities() {
		n++
	}
	return n
}

func (v View) ToSlice() []EntityID {
	var out []EntityID
	for id := range v.Entities() {
		out = append(out, id)
	}
	return out
}

// First returns the lowest-index matching entity.
func (v View) First() (EntityID, bool) {
	for id := range v.Entities() {
		return id, true
	}
	return InvalidEntity, false
}

// Contains reports whether id is alive and matches the view.
func (v View) Contains(id EntityID) bool {
	ok, err := v.world.table.TestMask(id, v.mask)
	return err == nil && ok
}
