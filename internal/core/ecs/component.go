package ecs

// storage is implemented by all component stores so the World can release an
// entity's data by ComponentTypeID without knowing the payload type.
type storage interface {
	remove(index uint32)
	Has(index uint32) bool
	Len() int
	value(index uint32) (any, bool)
}

// Store is a dense per-type component column keyed by entity row index.
// Values live contiguously in dense; sparse maps a row index to its slot + 1
// (0 means absent). Removal swaps the last value into the hole.
//
// Only the World adds or removes values, keeping them in step with the
// presence bits. Callers may read and modify values in place. Pointers
// returned by Get stay valid until the next structural change of the world.
type Store[T any] struct {
	sparse []uint32
	dense  []T
	owners []uint32
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		dense:  make([]T, 0, 64),
		owners: make([]uint32, 0, 64),
	}
}

func (s *Store[T]) slot(index uint32) (int, bool) {
	if int(index) >= len(s.sparse) {
		return 0, false
	}
	v := s.sparse[index]
	return int(v) - 1, v != 0
}

// set stores c for index, overwriting any previous value.
func (s *Store[T]) set(index uint32, c T) {
	if i, ok := s.slot(index); ok {
		s.dense[i] = c
		return
	}
	if int(index) >= len(s.sparse) {
		s.sparse = append(s.sparse, make([]uint32, int(index)+1-len(s.sparse))...)
	}
	s.dense = append(s.dense, c)
	s.owners = append(s.owners, index)
	s.sparse[index] = uint32(len(s.dense))
}

func (s *Store[T]) Get(index uint32) (*T, bool) {
	i, ok := s.slot(index)
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

func (s *Store[T]) remove(index uint32) {
	i, ok := s.slot(index)
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		moved := s.owners[last]
		s.owners[i] = moved
		s.sparse[moved] = uint32(i + 1)
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.sparse[index] = 0
}

func (s *Store[T]) Has(index uint32) bool {
	_, ok := s.slot(index)
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Each visits every stored value in dense order.
func (s *Store[T]) Each(fn func(index uint32, c *T)) {
	for i := range s.dense {
		fn(s.owners[i], &s.dense[i])
	}
}

func (s *Store[T]) value(index uint32) (any, bool) {
	i, ok := s.slot(index)
	if !ok {
		return nil, false
	}
	return s.dense[i], true
}
