package ecs

import (
	"fmt"
	"math"
)

// Row header layout: generation in the upper 32 bits, alive flag in bit 0.
const aliveBit = 1

// EntityTable owns the flat presence buffer and entity id allocation.
//
// Every row is one header word followed by words presence words, so row i
// starts at rows[i*stride] and its mask occupies rows[i*stride+1:(i+1)*stride].
// Indices are handed out densely up to next; destroyed indices go on a free
// list and come back with the generation bumped at destroy time.
type EntityTable struct {
	words  int
	stride int
	rows   []uint64
	next   uint32
	free   []uint32
	live   int
}

// NewEntityTable creates a table with words presence words per row and room
// for initial rows before the buffer grows.
func NewEntityTable(words, initial int) *EntityTable {
	if words <= 0 {
		words = 1
	}
	if initial < 0 {
		initial = 0
	}
	stride := words + 1
	return &EntityTable{
		words:  words,
		stride: stride,
		rows:   make([]uint64, 0, initial*stride),
		free:   make([]uint32, 0, 64),
	}
}

func (t *EntityTable) Words() int { return t.words }

// Next is the index one past the highest row ever allocated. It is the
// iteration sentinel for views.
func (t *EntityTable) Next() uint32 { return t.next }

// Len returns the number of live entities.
func (t *EntityTable) Len() int { return t.live }

// Free returns the number of recyclable rows.
func (t *EntityTable) Free() int { return len(t.free) }

// Create returns a live entity with an empty presence mask. Growing the buffer
// never invalidates previously issued ids.
func (t *EntityTable) Create() EntityID {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		base := int(idx) * t.stride
		gen := uint32(t.rows[base] >> 32)
		t.rows[base] = uint64(gen)<<32 | aliveBit
		clear(t.rows[base+1 : base+t.stride])
		t.live++
		return NewEntityID(idx, gen)
	}
	if t.next == math.MaxUint32 {
		panic("ecs: entity index space exhausted")
	}
	idx := t.next
	base := len(t.rows)
	need := base + t.stride
	if need > cap(t.rows) {
		grown := make([]uint64, base, max(need, 2*cap(t.rows)))
		copy(grown, t.rows)
		t.rows = grown
	}
	t.rows = t.rows[:need]
	t.rows[base] = aliveBit
	clear(t.rows[base+1 : need])
	t.next++
	t.live++
	return NewEntityID(idx, 0)
}

// resolve returns the header offset of a live id.
func (t *EntityTable) resolve(id EntityID) (int, error) {
	idx := id.Index()
	if idx >= t.next {
		return 0, fmt.Errorf("%w: %v out of range (next %d)", ErrEntityNotFound, id, t.next)
	}
	base := int(idx) * t.stride
	h := t.rows[base]
	if h&aliveBit == 0 || uint32(h>>32) != id.Generation() {
		return 0, fmt.Errorf("%w: %v", ErrEntityNotFound, id)
	}
	return base, nil
}

// Alive reports whether id refers to a live row of the current generation.
func (t *EntityTable) Alive(id EntityID) bool {
	_, err := t.resolve(id)
	return err == nil
}

// Destroy clears the row, bumps its generation and recycles the index.
func (t *EntityTable) Destroy(id EntityID) error {
	base, err := t.resolve(id)
	if err != nil {
		return err
	}
	gen := uint32(t.rows[base]>>32) + 1
	t.rows[base] = uint64(gen) << 32
	clear(t.rows[base+1 : base+t.stride])
	t.free = append(t.free, id.Index())
	t.live--
	return nil
}

func (t *EntityTable) bitAddr(base int, c ComponentTypeID) (int, uint64, error) {
	if int(c) >= t.words*bitsPerWord {
		return 0, 0, fmt.Errorf("%w: component id %d outside %d-bit row", ErrCapacityExceeded, c, t.words*bitsPerWord)
	}
	return base + 1 + int(c)/bitsPerWord, 1 << (uint(c) % bitsPerWord), nil
}

// SetBit marks component c present on id.
func (t *EntityTable) SetBit(id EntityID, c ComponentTypeID) error {
	base, err := t.resolve(id)
	if err != nil {
		return err
	}
	at, bit, err := t.bitAddr(base, c)
	if err != nil {
		return err
	}
	t.rows[at] |= bit
	return nil
}

// ClearBit marks component c absent on id.
func (t *EntityTable) ClearBit(id EntityID, c ComponentTypeID) error {
	base, err := t.resolve(id)
	if err != nil {
		return err
	}
	at, bit, err := t.bitAddr(base, c)
	if err != nil {
		return err
	}
	t.rows[at] &^= bit
	return nil
}

func (t *EntityTable) HasBit(id EntityID, c ComponentTypeID) (bool, error) {
	base, err := t.resolve(id)
	if err != nil {
		return false, err
	}
	if int(c) >= t.words*bitsPerWord {
		return false, nil
	}
	at, bit, _ := t.bitAddr(base, c)
	return t.rows[at]&bit != 0, nil
}

// TestMask reports whether the row of id is a bit-superset of mask.
func (t *EntityTable) TestMask(id EntityID, mask Mask) (bool, error) {
	if _, err := t.resolve(id); err != nil {
		return false, err
	}
	if len(mask) > t.words {
		if !mask[t.words:].IsZero() {
			return false, nil
		}
		mask = mask[:t.words]
	}
	return t.matchesAt(id.Index(), mask), nil
}

// Row returns a copy of the presence mask of id.
func (t *EntityTable) Row(id EntityID) (Mask, error) {
	base, err := t.resolve(id)
	if err != nil {
		return nil, err
	}
	return Mask(t.rows[base+1 : base+t.stride]).Clone(), nil
}

// matchesAt is the view predicate: the row is alive and contains mask.
// index must be below next.
func (t *EntityTable) matchesAt(index uint32, mask Mask) bool {
	base := int(index) * t.stride
	if t.rows[base]&aliveBit == 0 {
		return false
	}
	row := t.rows[base+1 : base+t.stride]
	for i, want := range mask {
		if row[i]&want != want {
			return false
		}
	}
	return true
}

func (t *EntityTable) entityAt(index uint32) EntityID {
	return NewEntityID(index, uint32(t.rows[int(index)*t.stride]>>32))
}
