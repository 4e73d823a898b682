package ecs

import "math/bits"

const bitsPerWord = 64

// Mask is a presence bit-vector with one bit per ComponentTypeID.
// Its length is the number of 64-bit words per entity row.
type Mask []uint64

func newMask(words int) Mask {
	return make(Mask, words)
}

// wordsFor rounds a component type capacity up to whole words.
func wordsFor(capacity int) int {
	if capacity <= 0 {
		return 1
	}
	return (capacity + bitsPerWord - 1) / bitsPerWord
}

func (m Mask) Set(id ComponentTypeID) {
	m[int(id)/bitsPerWord] |= 1 << (uint(id) % bitsPerWord)
}

func (m Mask) Clear(id ComponentTypeID) {
	m[int(id)/bitsPerWord] &^= 1 << (uint(id) % bitsPerWord)
}

func (m Mask) Has(id ComponentTypeID) bool {
	w := int(id) / bitsPerWord
	if w >= len(m) {
		return false
	}
	return m[w]&(1<<(uint(id)%bitsPerWord)) != 0
}

// ContainsAll reports whether every bit set in sub is also set in m.
// Words missing from m are treated as zero.
func (m Mask) ContainsAll(sub Mask) bool {
	for i, want := range sub {
		var have uint64
		if i < len(m) {
			have = m[i]
		}
		if have&want != want {
			return false
		}
	}
	return true
}

func (m Mask) IsZero() bool {
	for _, w := range m {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

// ForEach calls fn for every set bit in ascending id order.
func (m Mask) ForEach(fn func(ComponentTypeID)) {
	for wi, word := range m {
		for word != 0 {
			pos := bits.TrailingZeros64(word)
			fn(ComponentTypeID(wi*bitsPerWord + pos))
			word &= word - 1
		}
	}
}

// IDs returns the set bits as a slice.
func (m Mask) IDs() []ComponentTypeID {
	ids := make([]ComponentTypeID, 0, m.Count())
	m.ForEach(func(id ComponentTypeID) { ids = append(ids, id) })
	return ids
}

func (m Mask) Clone() Mask {
	out := make(Mask, len(m))
	copy(out, m)
	return out
}

func (m Mask) Equal(other Mask) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}
