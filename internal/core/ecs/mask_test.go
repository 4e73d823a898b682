package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordsFor(t *testing.T) {
	cases := []struct {
		capacity int
		words    int
	}{
		{0, 1},
		{1, 1},
		{64, 1},
		{65, 2},
		{256, 4},
		{257, 5},
	}
	for _, tc := range cases {
		require.Equal(t, tc.words, wordsFor(tc.capacity), "capacity %d", tc.capacity)
	}
}

func TestMask(t *testing.T) {
	t.Run("Set Clear Has across words", func(t *testing.T) {
		m := newMask(4)
		m.Set(0)
		m.Set(63)
		m.Set(64)
		m.Set(255)

		require.True(t, m.Has(0))
		require.True(t, m.Has(63))
		require.True(t, m.Has(64))
		require.True(t, m.Has(255))
		require.False(t, m.Has(1))
		require.False(t, m.Has(300), "ids past the mask width are never set")
		require.Equal(t, 4, m.Count())

		m.Clear(63)
		require.False(t, m.Has(63))
		require.Equal(t, 3, m.Count())
	})

	t.Run("ContainsAll", func(t *testing.T) {
		row := newMask(2)
		row.Set(1)
		row.Set(70)

		sub := newMask(2)
		require.True(t, row.ContainsAll(sub), "empty mask is a subset of everything")

		sub.Set(70)
		require.True(t, row.ContainsAll(sub))

		sub.Set(2)
		require.False(t, row.ContainsAll(sub))

		longer := newMask(3)
		longer.Set(130)
		require.False(t, row.ContainsAll(longer))
	})

	t.Run("ForEach ascending", func(t *testing.T) {
		m := newMask(3)
		for _, id := range []ComponentTypeID{129, 5, 64, 0} {
			m.Set(id)
		}
		require.Equal(t, []ComponentTypeID{0, 5, 64, 129}, m.IDs())
	})

	t.Run("Clone is independent", func(t *testing.T) {
		m := newMask(1)
		m.Set(3)
		c := m.Clone()
		c.Set(4)
		require.False(t, m.Has(4))
		require.True(t, c.Has(3))
		require.False(t, m.Equal(c))
		m.Set(4)
		require.True(t, m.Equal(c))
	})

	t.Run("IsZero", func(t *testing.T) {
		m := newMask(2)
		require.True(t, m.IsZero())
		m.Set(100)
		require.False(t, m.IsZero())
	})
}
