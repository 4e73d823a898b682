package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s := NewStore[int]()
	s.set(4, 40)
	s.set(1, 10)
	s.set(9, 90)
	require.Equal(t, 3, s.Len())

	v, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, 10, *v)

	s.set(1, 11)
	v, _ = s.Get(1)
	require.Equal(t, 11, *v, "set overwrites")
	require.Equal(t, 3, s.Len())

	*v = 12
	v, _ = s.Get(1)
	require.Equal(t, 12, *v, "Get returns a pointer into the store")

	s.remove(4)
	require.False(t, s.Has(4))
	require.Equal(t, 2, s.Len())
	v, ok = s.Get(9)
	require.True(t, ok, "swap-remove keeps the moved value reachable")
	require.Equal(t, 90, *v)

	s.remove(4)
	s.remove(1000)
	require.Equal(t, 2, s.Len())

	seen := map[uint32]int{}
	s.Each(func(index uint32, c *int) { seen[index] = *c })
	require.Equal(t, map[uint32]int{1: 12, 9: 90}, seen)

	got, ok := s.value(9)
	require.True(t, ok)
	require.Equal(t, 90, got)
	_, ok = s.value(4)
	require.False(t, ok)
}
